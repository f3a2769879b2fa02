package manifest

import (
	"encoding/xml"
	"os"
)

// Load reads and parses the manifest at path.
// It returns a *ParseError when the file is missing, unreadable, or not
// well-formed XML. No partial document is ever returned.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided manifest path is intentional
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse parses raw manifest XML. The path is only used for error messages.
func Parse(path string, data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &doc, nil
}

// stringsFile mirrors the strings.xml resource document.
type stringsFile struct {
	XMLName xml.Name `xml:"resources"`
	Strings []struct {
		Name  string `xml:"name,attr"`
		Value string `xml:",chardata"`
	} `xml:"string"`
}

// LoadStrings reads the string-resource file at path into a StringTable.
// Strings are best-effort: a missing or malformed file yields an empty table,
// never an error. Lookups against the empty table fall back to the literal
// token, so analysis continues either way.
func LoadStrings(path string) StringTable {
	table := make(StringTable)

	data, err := os.ReadFile(path) //nolint:gosec // User-provided strings path is intentional
	if err != nil {
		return table
	}

	var sf stringsFile
	if err := xml.Unmarshal(data, &sf); err != nil {
		return table
	}

	for _, s := range sf.Strings {
		if s.Name != "" {
			table[s.Name] = s.Value
		}
	}
	return table
}
