package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/runnerr0/unitconv/internal/converter"
	"github.com/runnerr0/unitconv/internal/prefs"
	"github.com/runnerr0/unitconv/internal/units"
)

const shellHistoryFile = "shell_history"

var shellCommands = []string{
	"categories", "category", "exit", "forget", "help", "history",
	"quit", "reuse", "swap", "theme", "units",
}

const shellHelp = `Commands:
  <number>                     convert with the current unit pair
  <number> <from> to <to>      convert and make <from>/<to> the current pair
  category [name]              show or switch category
  categories                   list categories
  units                        list units of the current category
  swap                         exchange source and target
  history                      list recent conversions
  reuse <id>                   re-run a stored conversion
  forget <id>                  remove a stored conversion
  theme [light|dark|toggle]    show or change the theme
  help                         show this help
  exit                         leave the shell
`

// shellSession holds the current category and unit pair between lines.
type shellSession struct {
	ctx      context.Context
	a        *app
	category units.Category
	from     units.Unit
	to       units.Unit
}

func newShellSession(ctx context.Context, a *app) (*shellSession, error) {
	s := &shellSession{ctx: ctx, a: a}
	cat, err := units.ParseCategory(a.cfg.Display.DefaultCategory)
	if err != nil {
		return nil, err
	}
	if err := s.setCategory(cat); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *shellSession) setCategory(cat units.Category) error {
	from, to, err := units.DefaultPair(cat)
	if err != nil {
		return err
	}
	s.category, s.from, s.to = cat, from, to
	return nil
}

func (s *shellSession) prompt() string {
	return fmt.Sprintf("%s %s→%s> ", s.category, s.from.Symbol, s.to.Symbol)
}

// complete offers command words and unit names of the current category.
func (s *shellSession) complete(line string) []string {
	lower := strings.ToLower(line)
	var out []string
	for _, cmd := range shellCommands {
		if strings.HasPrefix(cmd, lower) {
			out = append(out, cmd)
		}
	}

	// Complete the last word against unit names.
	idx := strings.LastIndex(line, " ")
	if idx < 0 {
		return out
	}
	head, word := line[:idx+1], strings.ToLower(line[idx+1:])
	var candidates []string
	if strings.HasPrefix(lower, "category ") {
		for _, cat := range units.Categories() {
			candidates = append(candidates, string(cat))
		}
	} else {
		list, _ := units.UnitsOf(s.category)
		for _, u := range list {
			candidates = append(candidates, strings.ToLower(u.Name))
		}
	}
	for _, c := range candidates {
		if strings.HasPrefix(c, word) {
			out = append(out, head+c)
		}
	}
	sort.Strings(out)
	return out
}

// eval runs one line of input. It reports true when the session should end.
func (s *shellSession) eval(line string, out io.Writer) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	var err error
	switch strings.ToLower(cmd) {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprint(out, shellHelp)
	case "categories":
		err = printCategories(out, false)
	case "category":
		err = s.switchCategory(rest, out)
	case "units":
		err = printUnits(out, s.category, false)
	case "swap":
		s.from, s.to = s.to, s.from
		fmt.Fprintf(out, "%s → %s\n", s.from.Name, s.to.Name)
	case "history":
		err = printHistory(out, s.a.history.List(s.ctx), false)
	case "reuse":
		err = s.reuse(rest, out)
	case "forget":
		err = s.forget(rest, out)
	case "theme":
		err = s.theme(rest, out)
	default:
		if !startsWithNumber(cmd) {
			err = fmt.Errorf("unknown command %q, type help", cmd)
			break
		}
		err = s.convert(line, out)
	}

	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return false
}

func (s *shellSession) switchCategory(name string, out io.Writer) error {
	if name == "" {
		fmt.Fprintf(out, "%s (%s → %s)\n", s.category, s.from.Name, s.to.Name)
		return nil
	}
	cat, err := units.ParseCategory(strings.ToLower(name))
	if err != nil {
		return err
	}
	if err := s.setCategory(cat); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%s → %s)\n", s.category, s.from.Name, s.to.Name)
	return nil
}

// convert handles "<number>" and "<number> <from> to <to>".
func (s *shellSession) convert(line string, out io.Writer) error {
	rawValue, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	if rest != "" {
		fromName, toName, ok := strings.Cut(rest, " to ")
		if !ok {
			return fmt.Errorf("unknown command %q, type help", line)
		}
		fromName, toName = strings.TrimSpace(fromName), strings.TrimSpace(toName)

		cat := s.category
		_, errFrom := units.Lookup(cat, fromName)
		_, errTo := units.Lookup(cat, toName)
		if errFrom != nil || errTo != nil {
			found, ok := units.CategoryOf(fromName, toName)
			if !ok {
				return fmt.Errorf("no category has both %q and %q", fromName, toName)
			}
			cat = found
		}
		from, err := units.Lookup(cat, fromName)
		if err != nil {
			return err
		}
		to, err := units.Lookup(cat, toName)
		if err != nil {
			return err
		}
		s.category, s.from, s.to = cat, from, to
	}

	res, err := s.a.converter.Convert(s.ctx, converter.Request{
		Value:    parseValue(rawValue),
		FromUnit: s.from.Name,
		ToUnit:   s.to.Name,
		Category: s.category,
	})
	if err != nil {
		return err
	}
	return printConversion(out, res, false)
}

func (s *shellSession) reuse(id string, out io.Writer) error {
	if id == "" {
		return fmt.Errorf("usage: reuse <id>")
	}
	res, err := s.a.converter.Reuse(s.ctx, id)
	if err != nil {
		return err
	}
	s.category, s.from, s.to = res.Category, res.From, res.To
	return printConversion(out, res, false)
}

func (s *shellSession) forget(id string, out io.Writer) error {
	if id == "" {
		return fmt.Errorf("usage: forget <id>")
	}
	if err := s.a.history.Remove(s.ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %s.\n", id)
	return nil
}

func (s *shellSession) theme(arg string, out io.Writer) error {
	switch arg {
	case "":
	case "toggle":
		if _, err := s.a.prefs.Toggle(s.ctx); err != nil {
			return err
		}
	default:
		theme, err := prefs.ParseTheme(arg)
		if err != nil {
			return err
		}
		if err := s.a.prefs.SetTheme(s.ctx, theme); err != nil {
			return err
		}
	}
	theme, err := s.a.prefs.Theme(s.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Theme: %s\n", theme)
	return nil
}

// Execute implements the go-flags Commander interface for ShellCommand.
func (c *ShellCommand) Execute(args []string) error {
	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	defer a.close()

	session, err := newShellSession(context.Background(), a)
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(session.complete)

	historyPath := filepath.Join(filepath.Dir(a.dbPath), shellHistoryFile)
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		f, err := os.Create(historyPath)
		if err != nil {
			a.logger.Debug("could not save shell history", zap.Error(err))
			return
		}
		line.WriteHistory(f)
		f.Close()
	}()

	out := os.Stdout
	fmt.Fprintf(out, "unitconv %s\n", c.version)
	fmt.Fprintln(out, "Type 'help' for commands, 'exit' or Ctrl+D to quit")

	for {
		input, err := line.Prompt(session.prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out, "^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if session.eval(input, out) {
			return nil
		}
	}
}
