package history

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/runnerr0/unitconv/internal/units"
)

// Record is one completed conversion. Unit names are stored lower-cased;
// symbols are resolved against the catalog when a record is displayed.
type Record struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	FromValue float64 `json:"fromValue"`
	FromUnit  string  `json:"fromUnit"`
	ToValue   float64 `json:"toValue"`
	ToUnit    string  `json:"toUnit"`
	Timestamp int64   `json:"timestamp"`
}

// NewRecord builds a record for a conversion completed at the given time.
// IDs are UUIDv7, so they sort by creation time.
func NewRecord(category units.Category, fromValue float64, from units.Unit, toValue float64, to units.Unit, at time.Time) (Record, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Record{}, fmt.Errorf("generate ID: %w", err)
	}
	return Record{
		ID:        id.String(),
		Category:  string(category),
		FromValue: fromValue,
		FromUnit:  strings.ToLower(from.Name),
		ToValue:   toValue,
		ToUnit:    strings.ToLower(to.Name),
		Timestamp: at.UnixMilli(),
	}, nil
}

// Time returns the record's timestamp.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// FindByUnitName resolves a stored unit name to its catalog descriptor.
func FindByUnitName(unitName, category string) (units.Unit, bool) {
	u, err := units.Lookup(units.Category(category), unitName)
	if err != nil {
		return units.Unit{}, false
	}
	return u, true
}

// CategoryTitle upper-cases the first letter of a category identifier and
// leaves the rest as stored.
func CategoryTitle(category string) string {
	_, size := utf8.DecodeRuneInString(category)
	if size == 0 {
		return category
	}
	return cases.Upper(language.English).String(category[:size]) + category[size:]
}

// Describe renders a record as "{value} {symbol} = {result} {symbol}".
// Units no longer in the catalog render without a symbol.
func Describe(r Record) string {
	var fromSymbol, toSymbol string
	if u, ok := FindByUnitName(r.FromUnit, r.Category); ok {
		fromSymbol = u.Symbol
	}
	if u, ok := FindByUnitName(r.ToUnit, r.Category); ok {
		toSymbol = u.Symbol
	}
	return fmt.Sprintf("%s %s = %s %s",
		units.FormatNumber(r.FromValue), fromSymbol,
		units.FormatResult(r.ToValue), toSymbol)
}
