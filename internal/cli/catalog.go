package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/runnerr0/unitconv/internal/history"
	"github.com/runnerr0/unitconv/internal/units"
)

type categoryJSON struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Units int    `json:"units"`
}

// Execute implements the go-flags Commander interface for CategoriesCommand.
func (c *CategoriesCommand) Execute(args []string) error {
	return printCategories(os.Stdout, c.globals != nil && c.globals.JSON)
}

func printCategories(w io.Writer, asJSON bool) error {
	cats := units.Categories()
	out := make([]categoryJSON, 0, len(cats))
	for _, cat := range cats {
		list, err := units.UnitsOf(cat)
		if err != nil {
			return err
		}
		out = append(out, categoryJSON{
			Name:  string(cat),
			Title: history.CategoryTitle(string(cat)),
			Units: len(list),
		})
	}

	if asJSON {
		return printJSON(w, out)
	}
	for _, cat := range out {
		fmt.Fprintf(w, "%-12s %2d units\n", cat.Name, cat.Units)
	}
	return nil
}

// Execute implements the go-flags Commander interface for UnitsCommand.
// The category comes from --category or the config default, so the
// config file is read but the database is never opened.
func (c *UnitsCommand) Execute(args []string) error {
	name := c.Category
	if name == "" {
		cfg, err := loadConfig(c.globals)
		if err != nil {
			return err
		}
		name = cfg.Display.DefaultCategory
	}
	cat, err := units.ParseCategory(name)
	if err != nil {
		return err
	}
	return printUnits(os.Stdout, cat, c.globals != nil && c.globals.JSON)
}

func printUnits(w io.Writer, cat units.Category, asJSON bool) error {
	list, err := units.UnitsOf(cat)
	if err != nil {
		return err
	}

	if asJSON {
		out := make([]unitJSON, len(list))
		for i, u := range list {
			out[i] = unitJSON{Name: u.Name, Symbol: u.Symbol, Factor: u.Factor}
		}
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "%s units:\n", history.CategoryTitle(string(cat)))
	for _, u := range list {
		fmt.Fprintf(w, "  %-20s %-5s %s\n", u.Name, u.Symbol, units.FormatNumber(u.Factor))
	}
	return nil
}
