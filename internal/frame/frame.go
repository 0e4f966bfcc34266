// Package frame rotates vectors between the shooter, world and sight frames.
//
// Axes: X points down-range, Y points up and Z points to the shooter's
// right. Pitch turns about Z (positive raises the muzzle), roll turns about
// X and yaw turns about Y.
//
// Yaw is clockwise-positive seen from above, matching compass bearings and
// wind directions: a positive yaw swings X toward +Z. A right-hand rotation
// about +Y does the opposite, so yaw angles are negated here and nowhere else.
package frame

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// AxisX is the down-range axis.
	AxisX = r3.Vec{X: 1}
	// AxisY is the vertical axis.
	AxisY = r3.Vec{Y: 1}
	// AxisZ is the lateral axis.
	AxisZ = r3.Vec{Z: 1}
)

// Angles is an orientation in radians.
type Angles struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// Add returns the component-wise sum of two orientations.
func (a Angles) Add(b Angles) Angles {
	return Angles{Pitch: a.Pitch + b.Pitch, Yaw: a.Yaw + b.Yaw, Roll: a.Roll + b.Roll}
}

// RotateX turns v by angle radians about the X axis (right-hand rule).
func RotateX(v r3.Vec, angle float64) r3.Vec {
	if angle == 0 {
		return v
	}
	return r3.NewRotation(angle, AxisX).Rotate(v)
}

// RotateY turns v by angle radians about the Y axis (right-hand rule).
func RotateY(v r3.Vec, angle float64) r3.Vec {
	if angle == 0 {
		return v
	}
	return r3.NewRotation(angle, AxisY).Rotate(v)
}

// RotateZ turns v by angle radians about the Z axis (right-hand rule).
func RotateZ(v r3.Vec, angle float64) r3.Vec {
	if angle == 0 {
		return v
	}
	return r3.NewRotation(angle, AxisZ).Rotate(v)
}

// Forward rotates v out of the frame described by a: roll first, then
// pitch, then yaw.
func Forward(v r3.Vec, a Angles) r3.Vec {
	v = RotateX(v, a.Roll)
	v = RotateZ(v, a.Pitch)
	return RotateY(v, -a.Yaw)
}

// Inverse undoes Forward: yaw first, then pitch, then roll, each negated.
func Inverse(v r3.Vec, a Angles) r3.Vec {
	v = RotateY(v, a.Yaw)
	v = RotateZ(v, -a.Pitch)
	return RotateX(v, -a.Roll)
}

// Direction returns the unit vector that Forward maps the down-range axis to.
func Direction(a Angles) r3.Vec {
	return Forward(AxisX, a)
}

// Elevation returns the angle of v's X-Y projection above the X axis.
func Elevation(v r3.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Azimuth returns the clockwise angle of v's X-Z projection from the X axis.
func Azimuth(v r3.Vec) float64 {
	return math.Atan2(v.Z, v.X)
}
