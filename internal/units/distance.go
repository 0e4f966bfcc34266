package units

// Distance unit constants
const (
	Meter      = "m"
	Centimeter = "cm"
	Millimeter = "mm"
	Inch       = "in"
	Foot       = "ft"
	Yard       = "yd"
)

const (
	metersPerInch = 0.0254
	metersPerFoot = 0.3048
	metersPerYard = 0.9144
)

// ValidDistanceUnits contains all valid distance unit values
var ValidDistanceUnits = []string{Meter, Centimeter, Millimeter, Inch, Foot, Yard}

// IsValidDistance checks if the given unit is a known distance unit
func IsValidDistance(unit string) bool {
	return contains(ValidDistanceUnits, unit)
}

// ConvertDistance converts a distance in meters to the target units.
// Unknown units fall back to meters.
func ConvertDistance(meters float64, targetUnits string) float64 {
	switch targetUnits {
	case Centimeter:
		return meters * 100
	case Millimeter:
		return meters * 1000
	case Inch:
		return meters / metersPerInch
	case Foot:
		return meters / metersPerFoot
	case Yard:
		return meters / metersPerYard
	default:
		return meters
	}
}

// ConvertToMeters converts a distance in the given units to meters.
func ConvertToMeters(distance float64, fromUnits string) float64 {
	switch fromUnits {
	case Centimeter:
		return distance / 100
	case Millimeter:
		return distance / 1000
	case Inch:
		return distance * metersPerInch
	case Foot:
		return distance * metersPerFoot
	case Yard:
		return distance * metersPerYard
	default:
		return distance
	}
}
