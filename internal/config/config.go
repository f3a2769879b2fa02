package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultStringsPath is where Android projects conventionally keep the
	// string-resource file relative to the project root. A missing file at
	// this path means "no strings available", never an error.
	DefaultStringsPath = "res/values/strings.xml"

	// DefaultFormat is the report format used when --format is not given.
	DefaultFormat = FormatText

	// AppName is the application name used for XDG directory paths.
	AppName = "manscan"
)

// Report formats accepted by the --format flag.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all configuration options for manscan.
// This struct is populated from CLI flags and passed through the application
// via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// because the number of options is manageable, and nesting would add
// complexity without significant benefit.
type Config struct {
	// ManifestPath is the path to the AndroidManifest.xml to analyze.
	// Required; a missing or malformed file aborts the analysis.
	ManifestPath string

	// StringsPath is the path to the string-resource XML. A missing file at
	// this path is treated as "no strings available", not an error.
	StringsPath string

	// Format selects the presentation layer: text, json, or markdown.
	// The core always produces the same structured report; only the
	// renderer differs.
	Format string

	// OutputFile is the report destination path. Empty means stdout.
	OutputFile string

	// RuleFilePath is the path to the .manscan rule file. If empty, the
	// tool searches the current directory and then the home directory.
	RuleFilePath string

	// Rules holds the loaded rule file, nil when none was found.
	Rules *RuleFile

	// NoColor disables ANSI colors in the text renderer. Useful for CI
	// logs and pipes.
	NoColor bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// SaveToDB indicates whether to save the report to the scan history
	// database. On by default so `manscan history` works out of the box.
	SaveToDB bool

	// DBDir is the directory path for storing the SQLite database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on zero
// values because several defaults are non-zero (strings path, format).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		StringsPath: DefaultStringsPath,
		Format:      DefaultFormat,
		SaveToDB:    true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for manscan.
// On Linux: ~/.local/share/manscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for manscan.
// On Linux: ~/.config/manscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each point
// of use to fail fast and provide clear error messages upfront. We return
// the first error found because fixing one error often makes others
// irrelevant.
func (c *Config) Validate() error {
	if c.ManifestPath == "" {
		return ErrNoManifest
	}

	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return ErrInvalidFormat
	}

	if c.SaveToDB && c.DBDir == "" {
		return ErrNoDatabaseDir
	}

	return nil
}
