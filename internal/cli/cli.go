package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Convert    *ConvertCommand
	Categories *CategoriesCommand
	Units      *UnitsCommand
	History    *HistoryCommand
	Forget     *ForgetCommand
	Reuse      *ReuseCommand
	Theme      *ThemeCommand
	Clear      *ClearCommand
	Status     *StatusCommand
	Shell      *ShellCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "unitconv"
	parser.LongDescription = "Convert values between units of length, temperature, area, volume, weight, time, data and currency."

	cmds := &commands{
		Convert:    &ConvertCommand{globals: &globals, version: version},
		Categories: &CategoriesCommand{globals: &globals, version: version},
		Units:      &UnitsCommand{globals: &globals, version: version},
		History:    &HistoryCommand{globals: &globals, version: version},
		Forget:     &ForgetCommand{globals: &globals, version: version},
		Reuse:      &ReuseCommand{globals: &globals, version: version},
		Theme:      &ThemeCommand{globals: &globals, version: version},
		Clear:      &ClearCommand{globals: &globals, version: version},
		Status:     &StatusCommand{globals: &globals, version: version},
		Shell:      &ShellCommand{globals: &globals, version: version},
	}

	parser.AddCommand("convert", "Convert a value", "Convert a value between two units of one category and record it in history.", cmds.Convert)
	parser.AddCommand("categories", "List categories", "List the conversion categories and how many units each has.", cmds.Categories)
	parser.AddCommand("units", "List units of a category", "List the units of a category with their symbols and factors.", cmds.Units)
	parser.AddCommand("history", "List recent conversions", "List the most recent conversions, newest first.", cmds.History)
	parser.AddCommand("forget", "Remove a history record", "Remove one record from the conversion history.", cmds.Forget)
	parser.AddCommand("reuse", "Re-run a history record", "Re-run a stored conversion and record it again.", cmds.Reuse)
	parser.AddCommand("theme", "Show or set the theme", "Show, set, toggle or reset the display theme preference.", cmds.Theme)
	parser.AddCommand("clear", "Delete ALL conversion history", "Delete ALL conversion history. Destructive operation with safety prompt.", cmds.Clear)
	parser.AddCommand("status", "Show database and history summary", "Show database location and size, history usage and preferences.", cmds.Status)
	parser.AddCommand("shell", "Start an interactive session", "Start an interactive conversion session with line editing and completion.", cmds.Shell)

	return parser, &globals, cmds
}

// Run is the main entry point for the unitconv CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("unitconv %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
