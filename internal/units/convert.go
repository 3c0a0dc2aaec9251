package units

import (
	"fmt"
	"strings"
)

// Convert converts value from one unit to another within category.
//
// Linear categories compute value * (from.Factor / to.Factor), ratio first.
// Temperature goes through Celsius instead. NaN and infinite inputs
// propagate without error.
func Convert(value float64, from, to Unit, category Category) (float64, error) {
	if category == Temperature {
		return convertTemperature(value, from.Name, to.Name)
	}
	if _, ok := catalog[category]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return value * (from.Factor / to.Factor), nil
}

// convertTemperature normalises to Celsius and projects onto the target.
// Products are wrapped in float64() so they are rounded before any add
// (no fused multiply-add on any GOARCH).
func convertTemperature(value float64, fromName, toName string) (float64, error) {
	from, to := strings.ToLower(fromName), strings.ToLower(toName)

	var celsius float64
	switch from {
	case "celsius":
		celsius = value
	case "fahrenheit":
		celsius = float64((value - 32) * (5.0 / 9))
	case "kelvin":
		celsius = value - 273.15
	default:
		return 0, &TemperatureUnitError{Unit: fromName, Side: SideSource}
	}

	// Same unit is returned untouched; the Celsius round trip is not exact
	// for Fahrenheit and Kelvin.
	if from == to {
		return value, nil
	}

	switch to {
	case "celsius":
		return celsius, nil
	case "fahrenheit":
		return float64(celsius*(9.0/5)) + 32, nil
	case "kelvin":
		return celsius + 273.15, nil
	default:
		return 0, &TemperatureUnitError{Unit: toName, Side: SideTarget}
	}
}
