package units

import (
	"fmt"
	"strings"
)

// Formula explains how result was derived from fromValue.
//
// Temperature gets one fixed phrasing per ordered unit pair and an empty
// string for same-unit pairs. Currency shows the one-unit exchange rate.
// Every other category shows the factor ratio.
func Formula(fromValue float64, from, to Unit, result float64, category Category) string {
	switch category {
	case Temperature:
		return temperatureFormula(fromValue, from, to, result)
	case Currency:
		return fmt.Sprintf("Rate: 1 %s = %s %s",
			from.Symbol, ToFixed(to.Factor/from.Factor, FormulaDigits), to.Symbol)
	default:
		return fmt.Sprintf("Formula: %s %s × (%s / %s) = %s %s",
			FormatNumber(fromValue), from.Symbol,
			FormatNumber(from.Factor), FormatNumber(to.Factor),
			ToFixed(result, FormulaDigits), to.Symbol)
	}
}

func temperatureFormula(fromValue float64, from, to Unit, result float64) string {
	v := FormatNumber(fromValue)
	r := ToFixed(result, FormulaDigits)

	switch strings.ToLower(from.Name) + ">" + strings.ToLower(to.Name) {
	case "celsius>fahrenheit":
		return fmt.Sprintf("Formula: (%s°C × 9/5) + 32 = %s°F", v, r)
	case "fahrenheit>celsius":
		return fmt.Sprintf("Formula: (%s°F - 32) × 5/9 = %s°C", v, r)
	case "celsius>kelvin":
		return fmt.Sprintf("Formula: %s°C + 273.15 = %sK", v, r)
	case "kelvin>celsius":
		return fmt.Sprintf("Formula: %sK - 273.15 = %s°C", v, r)
	case "fahrenheit>kelvin":
		return fmt.Sprintf("Formula: (%s°F - 32) × 5/9 + 273.15 = %sK", v, r)
	case "kelvin>fahrenheit":
		return fmt.Sprintf("Formula: (%sK - 273.15) × 9/5 + 32 = %s°F", v, r)
	}
	return ""
}
