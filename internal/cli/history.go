package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/runnerr0/unitconv/internal/history"
)

// historyJSON is one record in history --json output.
type historyJSON struct {
	history.Record
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Execute implements the go-flags Commander interface for HistoryCommand.
func (c *HistoryCommand) Execute(args []string) error {
	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	defer a.close()

	return c.executeWithApp(a)
}

// executeWithApp runs history against a provided app (for testing).
func (c *HistoryCommand) executeWithApp(a *app) error {
	records := a.history.List(context.Background())
	return printHistory(os.Stdout, records, c.globals != nil && c.globals.JSON)
}

func printHistory(w io.Writer, records []history.Record, asJSON bool) error {
	if asJSON {
		out := make([]historyJSON, len(records))
		for i, r := range records {
			out[i] = historyJSON{
				Record:      r,
				Time:        r.Time().UTC().Format(time.RFC3339),
				Description: history.Describe(r),
			}
		}
		return printJSON(w, out)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions yet.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(w, "%-12s %s\n", history.CategoryTitle(r.Category), history.Describe(r))
		fmt.Fprintf(w, "  %s  %s\n", r.ID, r.Time().Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// Execute implements the go-flags Commander interface for ForgetCommand.
func (c *ForgetCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required")
	}

	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	defer a.close()

	return c.executeWithApp(a)
}

// executeWithApp runs forget against a provided app (for testing).
func (c *ForgetCommand) executeWithApp(a *app) error {
	if err := a.history.Remove(context.Background(), c.ID); err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(os.Stdout, map[string]interface{}{"removed": c.ID})
	}
	fmt.Printf("Removed %s.\n", c.ID)
	return nil
}

// Execute implements the go-flags Commander interface for ReuseCommand.
func (c *ReuseCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required")
	}

	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	defer a.close()

	return c.executeWithApp(a)
}

// executeWithApp runs reuse against a provided app (for testing).
func (c *ReuseCommand) executeWithApp(a *app) error {
	res, err := a.converter.Reuse(context.Background(), c.ID)
	if err != nil {
		return err
	}
	return printConversion(os.Stdout, res, c.globals != nil && c.globals.JSON)
}
