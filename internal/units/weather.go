package units

// Temperature unit constants
const (
	Kelvin     = "K"
	Celsius    = "C"
	Fahrenheit = "F"
)

// Pressure unit constants
const (
	Pascal            = "Pa"
	Hectopascal       = "hPa"
	InchMercury       = "inHg"
	MillimeterMercury = "mmHg"
	PSI               = "psi"
)

const (
	zeroCelsius          = 273.15
	pascalsPerInchHg     = 3386.389
	pascalsPerMillimeter = 133.322387415
	pascalsPerPSI        = 6894.757293168
)

// ValidTemperatureUnits contains all valid temperature unit values
var ValidTemperatureUnits = []string{Kelvin, Celsius, Fahrenheit}

// ValidPressureUnits contains all valid pressure unit values
var ValidPressureUnits = []string{Pascal, Hectopascal, InchMercury, MillimeterMercury, PSI}

// IsValidTemperature checks if the given unit is a known temperature unit
func IsValidTemperature(unit string) bool {
	return contains(ValidTemperatureUnits, unit)
}

// IsValidPressure checks if the given unit is a known pressure unit
func IsValidPressure(unit string) bool {
	return contains(ValidPressureUnits, unit)
}

// ConvertTemperature converts a temperature in kelvin to the target units.
func ConvertTemperature(kelvin float64, targetUnits string) float64 {
	switch targetUnits {
	case Celsius:
		return kelvin - zeroCelsius
	case Fahrenheit:
		return (kelvin-zeroCelsius)*9/5 + 32
	default:
		return kelvin
	}
}

// ConvertToKelvin converts a temperature in the given units to kelvin.
func ConvertToKelvin(temperature float64, fromUnits string) float64 {
	switch fromUnits {
	case Celsius:
		return temperature + zeroCelsius
	case Fahrenheit:
		return (temperature-32)*5/9 + zeroCelsius
	default:
		return temperature
	}
}

// ConvertPressure converts a pressure in pascals to the target units.
func ConvertPressure(pascals float64, targetUnits string) float64 {
	switch targetUnits {
	case Hectopascal:
		return pascals / 100
	case InchMercury:
		return pascals / pascalsPerInchHg
	case MillimeterMercury:
		return pascals / pascalsPerMillimeter
	case PSI:
		return pascals / pascalsPerPSI
	default:
		return pascals
	}
}

// ConvertToPascals converts a pressure in the given units to pascals.
func ConvertToPascals(pressure float64, fromUnits string) float64 {
	switch fromUnits {
	case Hectopascal:
		return pressure * 100
	case InchMercury:
		return pressure * pascalsPerInchHg
	case MillimeterMercury:
		return pressure * pascalsPerMillimeter
	case PSI:
		return pressure * pascalsPerPSI
	default:
		return pressure
	}
}
