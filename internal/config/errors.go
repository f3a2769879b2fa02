package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic error handling while still providing human-readable
// messages.
var (
	// ErrNoManifest is returned when no manifest path is specified.
	ErrNoManifest = errors.New("no manifest specified: provide a path with --manifest")

	// ErrInvalidFormat is returned when the report format is not one of
	// text, json, or markdown.
	ErrInvalidFormat = errors.New("invalid format: must be text, json, or markdown")

	// ErrNoDatabaseDir is returned when history saving is enabled but no
	// database directory is configured.
	ErrNoDatabaseDir = errors.New("no database directory configured for scan history")

	// ErrRuleFileNotFound is returned when an explicitly specified rule
	// file does not exist. An unspecified rule file that cannot be found
	// is not an error.
	ErrRuleFileNotFound = errors.New("rule file not found")
)
