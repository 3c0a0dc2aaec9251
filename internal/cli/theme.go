package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/runnerr0/unitconv/internal/prefs"
)

// Execute implements the go-flags Commander interface for ThemeCommand.
func (c *ThemeCommand) Execute(args []string) error {
	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	defer a.close()

	return c.executeWithApp(a)
}

// executeWithApp runs theme against a provided app (for testing).
func (c *ThemeCommand) executeWithApp(a *app) error {
	ctx := context.Background()

	actions := 0
	for _, set := range []bool{c.Set != "", c.Toggle, c.Reset} {
		if set {
			actions++
		}
	}
	if actions > 1 {
		return fmt.Errorf("use only one of --set, --toggle, --reset")
	}

	switch {
	case c.Set != "":
		theme, err := prefs.ParseTheme(c.Set)
		if err != nil {
			return err
		}
		if err := a.prefs.SetTheme(ctx, theme); err != nil {
			return err
		}
	case c.Toggle:
		if _, err := a.prefs.Toggle(ctx); err != nil {
			return err
		}
	case c.Reset:
		if err := a.prefs.Reset(ctx); err != nil {
			return err
		}
	}

	theme, err := a.prefs.Theme(ctx)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(os.Stdout, map[string]string{"theme": string(theme)})
	}
	fmt.Printf("Theme: %s\n", theme)
	return nil
}
