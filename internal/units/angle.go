package units

import "math"

// Angle unit constants
const (
	Radian = "rad"
	Degree = "deg"
	MOA    = "moa"
	Mil    = "mil"
)

// RadiansPerMOA is one minute of angle (1/60 degree) in radians.
const RadiansPerMOA = math.Pi / (180 * 60)

// ValidAngleUnits contains all valid angle unit values
var ValidAngleUnits = []string{Radian, Degree, MOA, Mil}

// IsValidAngle checks if the given unit is a known angle unit
func IsValidAngle(unit string) bool {
	return contains(ValidAngleUnits, unit)
}

// ConvertAngle converts an angle in radians to the target units.
func ConvertAngle(rad float64, targetUnits string) float64 {
	switch targetUnits {
	case Degree:
		return rad * 180 / math.Pi
	case MOA:
		return rad / RadiansPerMOA
	case Mil:
		return rad * 1000
	default:
		return rad
	}
}

// ConvertToRadians converts an angle in the given units to radians.
func ConvertToRadians(angle float64, fromUnits string) float64 {
	switch fromUnits {
	case Degree:
		return angle * math.Pi / 180
	case MOA:
		return angle * RadiansPerMOA
	case Mil:
		return angle / 1000
	default:
		return angle
	}
}
