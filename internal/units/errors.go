package units

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory        = errors.New("unknown category")
	ErrUnknownUnit            = errors.New("unknown unit")
	ErrUnknownTemperatureUnit = errors.New("unknown temperature unit")
)

// Side names which end of a conversion an error refers to.
type Side string

const (
	SideSource Side = "source"
	SideTarget Side = "target"
)

// TemperatureUnitError reports a temperature unit outside Celsius,
// Fahrenheit and Kelvin.
type TemperatureUnitError struct {
	Unit string
	Side Side
}

func (e *TemperatureUnitError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrUnknownTemperatureUnit, e.Unit, e.Side)
}

func (e *TemperatureUnitError) Unwrap() error {
	return ErrUnknownTemperatureUnit
}
