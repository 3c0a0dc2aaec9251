package units

import (
	"fmt"
	"strings"
)

// Category identifies a conversion domain.
type Category string

const (
	Length      Category = "length"
	Temperature Category = "temperature"
	Area        Category = "area"
	Volume      Category = "volume"
	Weight      Category = "weight"
	Time        Category = "time"
	Data        Category = "data"
	Currency    Category = "currency"
)

// Unit describes a single unit within a category. Factor is relative to the
// category's base unit (factor 1) and is ignored for temperature.
type Unit struct {
	Name   string
	Factor float64
	Symbol string
}

// Temperature unit names. Conversion between them does not use factors.
const (
	Celsius    = "Celsius"
	Fahrenheit = "Fahrenheit"
	Kelvin     = "Kelvin"
)

var categoryOrder = []Category{
	Length, Temperature, Area, Volume, Weight, Time, Data, Currency,
}

// catalog holds the static unit tables. Currency factors are a fixed
// snapshot of USD-relative rates.
var catalog = map[Category][]Unit{
	Length: {
		{Name: "Meter", Factor: 1, Symbol: "m"},
		{Name: "Kilometer", Factor: 0.001, Symbol: "km"},
		{Name: "Centimeter", Factor: 100, Symbol: "cm"},
		{Name: "Millimeter", Factor: 1000, Symbol: "mm"},
		{Name: "Micrometer", Factor: 1000000, Symbol: "µm"},
		{Name: "Nanometer", Factor: 1000000000, Symbol: "nm"},
		{Name: "Mile", Factor: 0.000621371, Symbol: "mi"},
		{Name: "Yard", Factor: 1.09361, Symbol: "yd"},
		{Name: "Foot", Factor: 3.28084, Symbol: "ft"},
		{Name: "Inch", Factor: 39.3701, Symbol: "in"},
	},
	Temperature: {
		{Name: Celsius, Factor: 1, Symbol: "°C"},
		{Name: Fahrenheit, Factor: 1, Symbol: "°F"},
		{Name: Kelvin, Factor: 1, Symbol: "K"},
	},
	Area: {
		{Name: "Square Meter", Factor: 1, Symbol: "m²"},
		{Name: "Square Kilometer", Factor: 0.000001, Symbol: "km²"},
		{Name: "Square Centimeter", Factor: 10000, Symbol: "cm²"},
		{Name: "Square Millimeter", Factor: 1000000, Symbol: "mm²"},
		{Name: "Square Mile", Factor: 3.861e-7, Symbol: "mi²"},
		{Name: "Square Yard", Factor: 1.19599, Symbol: "yd²"},
		{Name: "Square Foot", Factor: 10.7639, Symbol: "ft²"},
		{Name: "Square Inch", Factor: 1550, Symbol: "in²"},
		{Name: "Acre", Factor: 0.000247105, Symbol: "ac"},
		{Name: "Hectare", Factor: 0.0001, Symbol: "ha"},
	},
	Volume: {
		{Name: "Cubic Meter", Factor: 1, Symbol: "m³"},
		{Name: "Cubic Kilometer", Factor: 1e-9, Symbol: "km³"},
		{Name: "Cubic Centimeter", Factor: 1000000, Symbol: "cm³"},
		{Name: "Cubic Millimeter", Factor: 1e+9, Symbol: "mm³"},
		{Name: "Liter", Factor: 1000, Symbol: "L"},
		{Name: "Milliliter", Factor: 1000000, Symbol: "mL"},
		{Name: "US Gallon", Factor: 264.172, Symbol: "gal"},
		{Name: "US Quart", Factor: 1056.69, Symbol: "qt"},
		{Name: "US Pint", Factor: 2113.38, Symbol: "pt"},
		{Name: "US Cup", Factor: 4226.75, Symbol: "cup"},
		{Name: "US Fluid Ounce", Factor: 33814, Symbol: "fl oz"},
		{Name: "US Tablespoon", Factor: 67628, Symbol: "tbsp"},
		{Name: "US Teaspoon", Factor: 202884, Symbol: "tsp"},
	},
	Weight: {
		{Name: "Kilogram", Factor: 1, Symbol: "kg"},
		{Name: "Gram", Factor: 1000, Symbol: "g"},
		{Name: "Milligram", Factor: 1000000, Symbol: "mg"},
		{Name: "Metric Ton", Factor: 0.001, Symbol: "t"},
		{Name: "Pound", Factor: 2.20462, Symbol: "lb"},
		{Name: "Ounce", Factor: 35.274, Symbol: "oz"},
		{Name: "Stone", Factor: 0.157473, Symbol: "st"},
	},
	Time: {
		{Name: "Second", Factor: 1, Symbol: "s"},
		{Name: "Millisecond", Factor: 1000, Symbol: "ms"},
		{Name: "Microsecond", Factor: 1000000, Symbol: "µs"},
		{Name: "Nanosecond", Factor: 1000000000, Symbol: "ns"},
		{Name: "Minute", Factor: 1.0 / 60, Symbol: "min"},
		{Name: "Hour", Factor: 1.0 / 3600, Symbol: "h"},
		{Name: "Day", Factor: 1.0 / 86400, Symbol: "d"},
		{Name: "Week", Factor: 1.0 / 604800, Symbol: "wk"},
		{Name: "Month (30 days)", Factor: 1.0 / 2592000, Symbol: "mo"},
		{Name: "Year (365 days)", Factor: 1.0 / 31536000, Symbol: "yr"},
	},
	Data: {
		{Name: "Byte", Factor: 1, Symbol: "B"},
		{Name: "Kilobyte", Factor: 1.0 / 1024, Symbol: "KB"},
		{Name: "Megabyte", Factor: 1.0 / 1048576, Symbol: "MB"},
		{Name: "Gigabyte", Factor: 1.0 / 1073741824, Symbol: "GB"},
		{Name: "Terabyte", Factor: 1.0 / 1099511627776, Symbol: "TB"},
		{Name: "Petabyte", Factor: 1.0 / 1125899906842624, Symbol: "PB"},
		{Name: "Bit", Factor: 8, Symbol: "bit"},
		{Name: "Kilobit", Factor: 8.0 / 1024, Symbol: "Kbit"},
		{Name: "Megabit", Factor: 8.0 / 1048576, Symbol: "Mbit"},
		{Name: "Gigabit", Factor: 8.0 / 1073741824, Symbol: "Gbit"},
	},
	Currency: {
		{Name: "US Dollar", Factor: 1, Symbol: "USD"},
		{Name: "Euro", Factor: 0.91, Symbol: "EUR"},
		{Name: "British Pound", Factor: 0.78, Symbol: "GBP"},
		{Name: "Japanese Yen", Factor: 149.66, Symbol: "JPY"},
		{Name: "Canadian Dollar", Factor: 1.35, Symbol: "CAD"},
		{Name: "Australian Dollar", Factor: 1.48, Symbol: "AUD"},
		{Name: "Swiss Franc", Factor: 0.87, Symbol: "CHF"},
		{Name: "Chinese Yuan", Factor: 7.18, Symbol: "CNY"},
		{Name: "Indian Rupee", Factor: 82.91, Symbol: "INR"},
		{Name: "Brazilian Real", Factor: 4.97, Symbol: "BRL"},
	},
}

// defaultPairs lists the preselected source and target unit per category.
// Categories without an entry start on their first unit for both sides.
var defaultPairs = map[Category][2]string{
	Length:      {"meter", "centimeter"},
	Temperature: {"celsius", "fahrenheit"},
	Weight:      {"kilogram", "pound"},
	Data:        {"gigabyte", "megabyte"},
	Currency:    {"us dollar", "euro"},
}

// index maps category -> lower-cased unit name -> position in catalog.
var index = buildIndex()

func buildIndex() map[Category]map[string]int {
	idx := make(map[Category]map[string]int, len(catalog))
	for cat, list := range catalog {
		names := make(map[string]int, len(list))
		for i, u := range list {
			names[strings.ToLower(u.Name)] = i
		}
		idx[cat] = names
	}
	return idx
}

// Categories returns every category identifier in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory resolves an exact category identifier.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := catalog[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// UnitsOf returns the ordered units of a category.
func UnitsOf(c Category) ([]Unit, error) {
	list, ok := catalog[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	out := make([]Unit, len(list))
	copy(out, list)
	return out, nil
}

// Lookup finds a unit by case-insensitive exact name within a category.
func Lookup(c Category, name string) (Unit, error) {
	names, ok := index[c]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	i, ok := names[strings.ToLower(name)]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q in category %q", ErrUnknownUnit, name, c)
	}
	return catalog[c][i], nil
}

// CategoryOf returns the first category, in display order, that contains
// both named units.
func CategoryOf(fromName, toName string) (Category, bool) {
	from, to := strings.ToLower(fromName), strings.ToLower(toName)
	for _, c := range categoryOrder {
		names := index[c]
		_, okFrom := names[from]
		_, okTo := names[to]
		if okFrom && okTo {
			return c, true
		}
	}
	return "", false
}

// DefaultPair returns the units preselected when a category is opened.
func DefaultPair(c Category) (from, to Unit, err error) {
	list, ok := catalog[c]
	if !ok {
		return Unit{}, Unit{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	pair, ok := defaultPairs[c]
	if !ok {
		return list[0], list[0], nil
	}
	if from, err = Lookup(c, pair[0]); err != nil {
		return Unit{}, Unit{}, err
	}
	if to, err = Lookup(c, pair[1]); err != nil {
		return Unit{}, Unit{}, err
	}
	return from, to, nil
}
