package manifest

import "fmt"

// ParseError is returned when the manifest file is missing, unreadable, or
// not well-formed XML. It is the only fatal error the analysis produces;
// everything else degrades gracefully.
//
// Design decision: We use a concrete error type rather than a sentinel
// because callers need the offending path for their error message, and
// errors.As lets the CLI distinguish a parse failure (exit non-zero) from
// soft conditions without string matching.
type ParseError struct {
	// Path is the file that failed to load.
	Path string

	// Err is the underlying cause (I/O or XML syntax error).
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *ParseError) Unwrap() error {
	return e.Err
}
