// Package atmosphere derives air density and the local speed of sound from
// temperature, pressure and relative humidity.
package atmosphere

import "math"

const (
	// GasConstant is the universal gas constant in J/(K·mol).
	GasConstant = 8.314
	// MolarMassDryAir is in kg/mol.
	MolarMassDryAir = 0.0289644
	// MolarMassWaterVapor is in kg/mol.
	MolarMassWaterVapor = 0.018016
	// HeatCapacityRatio of air used for the speed of sound.
	HeatCapacityRatio = 1.4

	zeroCelsius = 273.15
)

// Atmosphere describes the air the projectile flies through. Temperature is
// in kelvin, Pressure in pascals and Humidity is relative, in [0, 1].
type Atmosphere struct {
	Temperature float64
	Pressure    float64
	Humidity    float64
}

// Standard returns the ICAO sea-level atmosphere: 15 °C, 101325 Pa, dry air.
func Standard() Atmosphere {
	return Atmosphere{
		Temperature: zeroCelsius + 15,
		Pressure:    101325,
		Humidity:    0,
	}
}

// VaporPressure returns the partial pressure of water vapour in pascals,
// using the Arden Buck saturation equation scaled by relative humidity.
func (a Atmosphere) VaporPressure() float64 {
	tc := a.Temperature - zeroCelsius
	return a.Humidity * 611.21 * math.Exp((18.678-tc/234.5)*(tc/(257.14+tc)))
}

// Density returns the air density in kg/m³ treating air as a mix of dry air
// and water vapour.
func (a Atmosphere) Density() float64 {
	pv := a.VaporPressure()
	pd := a.Pressure - pv
	return (pd*MolarMassDryAir + pv*MolarMassWaterVapor) / (GasConstant * a.Temperature)
}

// SpeedOfSound returns the local speed of sound in m/s.
func (a Atmosphere) SpeedOfSound() float64 {
	return math.Sqrt(HeatCapacityRatio * a.Pressure / a.Density())
}
