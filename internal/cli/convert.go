package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/runnerr0/unitconv/internal/config"
	"github.com/runnerr0/unitconv/internal/converter"
	"github.com/runnerr0/unitconv/internal/units"
)

// conversionJSON is the JSON output structure for convert and reuse.
// Non-finite numbers have no JSON form and are omitted.
type conversionJSON struct {
	ID       string   `json:"id,omitempty"`
	Category string   `json:"category"`
	From     unitJSON `json:"from"`
	To       unitJSON `json:"to"`
	Input    *float64 `json:"input,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Display  string   `json:"display"`
	Formula  string   `json:"formula"`
}

type unitJSON struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Factor float64 `json:"factor"`
}

// Execute implements the go-flags Commander interface for ConvertCommand.
func (c *ConvertCommand) Execute(args []string) error {
	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	defer a.close()

	return c.executeWithApp(a, args)
}

// executeWithApp runs convert against a provided app (for testing).
func (c *ConvertCommand) executeWithApp(a *app, args []string) error {
	raw := c.Value
	if raw == "" {
		switch len(args) {
		case 0:
			raw = "1"
		case 1:
			raw = args[0]
		default:
			return fmt.Errorf("convert takes one value, got %d", len(args))
		}
	}

	category, err := resolveCategory(c.Category, a.cfg)
	if err != nil {
		return err
	}
	from, to, err := units.DefaultPair(category)
	if err != nil {
		return err
	}

	req := converter.Request{
		Value:    parseValue(raw),
		FromUnit: from.Name,
		ToUnit:   to.Name,
		Category: category,
	}
	if c.From != "" {
		req.FromUnit = c.From
	}
	if c.To != "" {
		req.ToUnit = c.To
	}
	if c.Swap {
		req = req.Swapped()
	}

	res, err := a.converter.Convert(context.Background(), req)
	if err != nil {
		return err
	}
	return printConversion(os.Stdout, res, c.globals != nil && c.globals.JSON)
}

// resolveCategory parses name, falling back to the configured default.
func resolveCategory(name string, cfg *config.Config) (units.Category, error) {
	if name == "" {
		name = cfg.Display.DefaultCategory
	}
	return units.ParseCategory(strings.ToLower(strings.TrimSpace(name)))
}

// numberPrefix matches the longest leading decimal literal, as
// Number.parseFloat reads it.
var numberPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// parseValue reads a number from user input the way a browser number
// field's parseFloat does: leading space is skipped, trailing text after
// the number is ignored and overflow gives ±Inf. Input with no leading
// number yields NaN, which converts to a blank result.
func parseValue(s string) float64 {
	lit := numberPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if lit == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// startsWithNumber reports whether parseValue would find a number in s.
func startsWithNumber(s string) bool {
	return numberPrefix.MatchString(strings.TrimLeftFunc(s, unicode.IsSpace))
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func printConversion(w io.Writer, res converter.Result, asJSON bool) error {
	if asJSON {
		out := conversionJSON{
			Category: string(res.Category),
			From:     unitJSON{Name: res.From.Name, Symbol: res.From.Symbol, Factor: res.From.Factor},
			To:       unitJSON{Name: res.To.Name, Symbol: res.To.Symbol, Factor: res.To.Factor},
			Input:    finite(res.Input),
			Value:    finite(res.Value),
			Display:  res.Display,
			Formula:  res.Formula,
		}
		if res.Record != nil {
			out.ID = res.Record.ID
		}
		return printJSON(w, out)
	}

	if res.Display == "" {
		fmt.Fprintln(w, "Not a number: nothing to convert.")
		return nil
	}
	fmt.Fprintf(w, "%s %s = %s %s\n",
		units.FormatNumber(res.Input), res.From.Symbol, res.Display, res.To.Symbol)
	if res.Formula != "" {
		fmt.Fprintln(w, res.Formula)
	}
	return nil
}
