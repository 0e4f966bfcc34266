package units

import "fmt"

// System names a consistent set of display units for range-card output.
type System string

const (
	Imperial System = "imperial"
	Metric   System = "metric"
)

// DisplayUnits lists the unit chosen for each quantity in a System.
type DisplayUnits struct {
	Range    string `json:"range"`
	Offset   string `json:"offset"`
	Velocity string `json:"velocity"`
	Energy   string `json:"energy"`
	Angle    string `json:"angle"`
}

// Display returns the display units for the system.
func (s System) Display() DisplayUnits {
	if s == Metric {
		return DisplayUnits{Range: Meter, Offset: Centimeter, Velocity: MPS, Energy: Joule, Angle: Mil}
	}
	return DisplayUnits{Range: Yard, Offset: Inch, Velocity: FPS, Energy: FootPound, Angle: MOA}
}

// ParseSystem parses a unit system name.
func ParseSystem(name string) (System, error) {
	switch System(name) {
	case Imperial, Metric:
		return System(name), nil
	case "":
		return Imperial, nil
	default:
		return "", fmt.Errorf("unknown unit system %q (want imperial or metric)", name)
	}
}
