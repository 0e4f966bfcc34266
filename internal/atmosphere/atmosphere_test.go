package atmosphere

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardAtmosphere(t *testing.T) {
	a := Standard()

	assert.InEpsilon(t, 1.225, a.Density(), 0.01)
	assert.InEpsilon(t, 340.3, a.SpeedOfSound(), 0.01)
	assert.Zero(t, a.VaporPressure())
}

func TestHumidityLowersDensity(t *testing.T) {
	dry := Atmosphere{Temperature: 303.15, Pressure: 101325, Humidity: 0}
	humid := dry
	humid.Humidity = 1

	// Water vapour is lighter than the dry air it displaces.
	assert.Less(t, humid.Density(), dry.Density())
	assert.Greater(t, humid.SpeedOfSound(), dry.SpeedOfSound())

	// Saturation vapour pressure at 30 °C is roughly 4.2 kPa.
	assert.InDelta(t, 4246, humid.VaporPressure(), 50)
}

func TestDensityTrends(t *testing.T) {
	tests := []struct {
		name   string
		colder Atmosphere
		warmer Atmosphere
	}{
		{
			name:   "sea level",
			colder: Atmosphere{Temperature: 263.15, Pressure: 101325},
			warmer: Atmosphere{Temperature: 308.15, Pressure: 101325},
		},
		{
			name:   "altitude",
			colder: Atmosphere{Temperature: 263.15, Pressure: 80000, Humidity: 0.5},
			warmer: Atmosphere{Temperature: 308.15, Pressure: 80000, Humidity: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Greater(t, tt.colder.Density(), tt.warmer.Density())
			assert.Less(t, tt.colder.SpeedOfSound(), tt.warmer.SpeedOfSound())
		})
	}

	thin := Atmosphere{Temperature: 288.15, Pressure: 70000}
	assert.Less(t, thin.Density(), Standard().Density())
}
