package cli

import "io"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	DBPath  string `long:"db-path" description:"Override the database file path"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ConvertCommand converts a value between two units of a category.
type ConvertCommand struct {
	Category string `long:"category" short:"c" description:"Category (default from config)"`
	From     string `long:"from" description:"Source unit name (default: category's default pair)"`
	To       string `long:"to" description:"Target unit name (default: category's default pair)"`
	Value    string `long:"value" description:"Value to convert; use --value=-40 for negatives" default:""`
	Swap     bool   `long:"swap" description:"Exchange source and target before converting"`

	globals *GlobalFlags
	version string
}

// CategoriesCommand lists category identifiers.
type CategoriesCommand struct {
	globals *GlobalFlags
	version string
}

// UnitsCommand lists the units of one category.
type UnitsCommand struct {
	Category string `long:"category" short:"c" description:"Category (default from config)"`

	globals *GlobalFlags
	version string
}

// HistoryCommand lists recent conversions, most recent first.
type HistoryCommand struct {
	globals *GlobalFlags
	version string
}

// ForgetCommand removes one history record.
type ForgetCommand struct {
	ID string `long:"id" description:"History record ID (required)"`

	globals *GlobalFlags
	version string
}

// ReuseCommand re-runs a stored conversion.
type ReuseCommand struct {
	ID string `long:"id" description:"History record ID (required)"`

	globals *GlobalFlags
	version string
}

// ThemeCommand shows or changes the theme preference.
type ThemeCommand struct {
	Set    string `long:"set" description:"Set the theme: light | dark"`
	Toggle bool   `long:"toggle" description:"Switch between light and dark"`
	Reset  bool   `long:"reset" description:"Forget the saved theme and use the config default"`

	globals *GlobalFlags
	version string
}

// ClearCommand deletes every history record after a safety confirmation.
type ClearCommand struct {
	All   bool `long:"all" description:"Required flag to confirm clear intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	stdin   io.Reader // injectable for testing; nil means os.Stdin
}

// StatusCommand summarises the database, history and preferences.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// ShellCommand starts an interactive conversion session.
type ShellCommand struct {
	globals *GlobalFlags
	version string
}
