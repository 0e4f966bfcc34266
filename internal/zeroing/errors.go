package zeroing

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrAngleNotChanging means a correction left both angles unchanged, so
	// further iterations cannot make progress.
	ErrAngleNotChanging = errors.New("zero angle is not changing")
	// ErrAngleRange means the pitch left [-90°, 45°] or the yaw left
	// [-90°, 90°].
	ErrAngleRange = errors.New("zero angle out of range")
	// ErrTerminalVelocity means no packet reached the target distance.
	ErrTerminalVelocity = errors.New("projectile never reached the target distance")
	// ErrIterationLimit means the solver gave up after MaxIterations.
	ErrIterationLimit = errors.New("zeroing did not converge")
	// ErrInvalidTarget is returned for a target that cannot be solved for.
	ErrInvalidTarget = errors.New("invalid zero target")
)

// Error reports a failed zeroing attempt together with where it stopped.
// Err is one of the package's sentinel errors.
type Error struct {
	Err       error
	Iteration int
	Pitch     float64 // rad
	Yaw       float64 // rad
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at iteration %d (pitch %.4f°, yaw %.4f°)",
		e.Err, e.Iteration, e.Pitch*180/math.Pi, e.Yaw*180/math.Pi)
}

func (e *Error) Unwrap() error { return e.Err }
