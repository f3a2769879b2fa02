package manifest

import "regexp"

// stringRefPattern matches @string/<identifier> symbolic references.
var stringRefPattern = regexp.MustCompile(`^@string/([A-Za-z0-9_.]+)$`)

// StringTable maps resource names (without the @string/ prefix) to resolved
// literal values. An empty table is valid and means no strings file was
// supplied.
type StringTable map[string]string

// Resolve resolves a raw attribute value against the table.
//
// If value matches @string/<identifier> and the identifier is present, the
// table value is returned. An identifier absent from the table returns the
// original token unchanged: resolution is best-effort and never fatal, and
// the literal token stays visible in the report so users can judge
// completeness. Values that are not symbolic references pass through as-is.
func (t StringTable) Resolve(value string) string {
	m := stringRefPattern.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	if resolved, ok := t[m[1]]; ok {
		return resolved
	}
	return value
}
