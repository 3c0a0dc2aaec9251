package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Execute implements the go-flags Commander interface for ClearCommand.
func (c *ClearCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("clear requires --all flag for safety")
	}
	if err := c.confirm(); err != nil {
		return err
	}

	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	defer a.close()

	return c.executeWithApp(a)
}

// confirm asks for the typed confirmation unless --force was given.
func (c *ClearCommand) confirm() error {
	if c.Force {
		return nil
	}

	fmt.Println("⚠ WARNING: This will permanently delete your conversion history.")
	fmt.Println()
	fmt.Println("This action cannot be undone.")
	fmt.Println()
	fmt.Print(`Type "CLEAR" to confirm: `)

	var in io.Reader = os.Stdin
	if c.stdin != nil {
		in = c.stdin
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return fmt.Errorf("aborted: no input received")
	}
	if strings.TrimSpace(scanner.Text()) != "CLEAR" {
		return fmt.Errorf("aborted: confirmation text did not match")
	}
	return nil
}

// executeWithApp clears history on a provided app (for testing).
func (c *ClearCommand) executeWithApp(a *app) error {
	if err := a.history.Clear(context.Background()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(os.Stdout, map[string]interface{}{
			"cleared": true,
			"message": "history deleted",
		})
	}

	fmt.Println("Cleared conversion history.")
	return nil
}
