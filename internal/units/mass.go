package units

// Mass unit constants
const (
	Kilogram = "kg"
	Gram     = "g"
	Grain    = "gr"
	Pound    = "lb"
)

// Energy unit constants
const (
	Joule     = "J"
	FootPound = "ftlb"
)

const (
	kilogramsPerGrain = 6.479891e-5
	kilogramsPerPound = 0.45359237
	joulesPerFootLb   = 1.3558179483314004
)

// ValidMassUnits contains all valid mass unit values
var ValidMassUnits = []string{Kilogram, Gram, Grain, Pound}

// IsValidMass checks if the given unit is a known mass unit
func IsValidMass(unit string) bool {
	return contains(ValidMassUnits, unit)
}

// ConvertMass converts a mass in kilograms to the target units.
func ConvertMass(kg float64, targetUnits string) float64 {
	switch targetUnits {
	case Gram:
		return kg * 1000
	case Grain:
		return kg / kilogramsPerGrain
	case Pound:
		return kg / kilogramsPerPound
	default:
		return kg
	}
}

// ConvertToKilograms converts a mass in the given units to kilograms.
func ConvertToKilograms(mass float64, fromUnits string) float64 {
	switch fromUnits {
	case Gram:
		return mass / 1000
	case Grain:
		return mass * kilogramsPerGrain
	case Pound:
		return mass * kilogramsPerPound
	default:
		return mass
	}
}

// ConvertEnergy converts an energy in joules to the target units.
func ConvertEnergy(joules float64, targetUnits string) float64 {
	if targetUnits == FootPound {
		return joules / joulesPerFootLb
	}
	return joules
}
