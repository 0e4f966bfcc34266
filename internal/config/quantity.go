package config

import (
	"fmt"
	"math"

	"github.com/banshee-data/ballistics/internal/units"
)

// Quantity is a number with its unit as written in a config file, for
// example {"value": 0.264, "units": "in"}.
type Quantity struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

// Q is shorthand for building a Quantity.
func Q(value float64, unit string) *Quantity {
	return &Quantity{Value: value, Units: unit}
}

type dimension struct {
	name  string
	valid func(string) bool
	toSI  func(float64, string) float64
}

var (
	distance    = dimension{"distance", units.IsValidDistance, units.ConvertToMeters}
	speed       = dimension{"speed", units.IsValid, units.ConvertToMPS}
	mass        = dimension{"mass", units.IsValidMass, units.ConvertToKilograms}
	angle       = dimension{"angle", units.IsValidAngle, units.ConvertToRadians}
	temperature = dimension{"temperature", units.IsValidTemperature, units.ConvertToKelvin}
	pressure    = dimension{"pressure", units.IsValidPressure, units.ConvertToPascals}
)

// check validates an optional quantity of dimension d.
func (d dimension) check(field string, q *Quantity) error {
	if q == nil {
		return nil
	}
	if !d.valid(q.Units) {
		return fmt.Errorf("%s: unknown %s units %q", field, d.name, q.Units)
	}
	if math.IsNaN(q.Value) || math.IsInf(q.Value, 0) {
		return fmt.Errorf("%s must be finite, got %v", field, q.Value)
	}
	return nil
}

// si converts q to SI, falling back to def when q is unset.
func (d dimension) si(q *Quantity, def Quantity) float64 {
	if q == nil {
		q = &def
	}
	return d.toSI(q.Value, q.Units)
}
