package frame

import "gonum.org/v1/gonum/spatial/r3"

// Matrix is a precomputed rotation for hot paths that apply the same
// orientation many times. Rows are stored so Apply is three dot products.
type Matrix struct {
	rows [3]r3.Vec
}

// ForwardMatrix returns the matrix equivalent of Forward(·, a).
func ForwardMatrix(a Angles) Matrix {
	return columns(Forward(AxisX, a), Forward(AxisY, a), Forward(AxisZ, a))
}

// InverseMatrix returns the matrix equivalent of Inverse(·, a).
func InverseMatrix(a Angles) Matrix {
	return ForwardMatrix(a).Transpose()
}

func columns(cx, cy, cz r3.Vec) Matrix {
	return Matrix{rows: [3]r3.Vec{
		{X: cx.X, Y: cy.X, Z: cz.X},
		{X: cx.Y, Y: cy.Y, Z: cz.Y},
		{X: cx.Z, Y: cy.Z, Z: cz.Z},
	}}
}

// Apply returns m·v.
func (m Matrix) Apply(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: r3.Dot(m.rows[0], v),
		Y: r3.Dot(m.rows[1], v),
		Z: r3.Dot(m.rows[2], v),
	}
}

// Transpose returns the inverse rotation.
func (m Matrix) Transpose() Matrix {
	r := m.rows
	return Matrix{rows: [3]r3.Vec{
		{X: r[0].X, Y: r[1].X, Z: r[2].X},
		{X: r[0].Y, Y: r[1].Y, Z: r[2].Y},
		{X: r[0].Z, Y: r[1].Z, Z: r[2].Z},
	}}
}
