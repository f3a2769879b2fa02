package manifest

import "encoding/xml"

// Document is the parsed AndroidManifest.xml tree. The root owns the package
// name and the top-level declarations; it is immutable once loaded.
type Document struct {
	XMLName xml.Name `xml:"manifest"`

	// Package is the application package name from the manifest root.
	Package string `xml:"package,attr"`

	// UsesPermissions lists <uses-permission> declarations in order.
	UsesPermissions []UsesPermission `xml:"uses-permission"`

	// PermissionDecls lists <permission> elements the app defines itself.
	// Their protectionLevel attribute matters for export analysis: a
	// component guarded by a signature-level permission is not freely
	// reachable even when exported.
	PermissionDecls []PermissionDecl `xml:"permission"`

	// Application is the <application> block owning all components.
	Application Application `xml:"application"`
}

// UsesPermission is one <uses-permission> element.
type UsesPermission struct {
	Name string `xml:"name,attr"`
}

// PermissionDecl is one app-defined <permission> element.
type PermissionDecl struct {
	Name            string `xml:"name,attr"`
	ProtectionLevel string `xml:"protectionLevel,attr"`
}

// Application is the <application> block. It owns the four component kinds.
type Application struct {
	Activities []ComponentElem `xml:"activity"`
	Services   []ComponentElem `xml:"service"`
	Receivers  []ComponentElem `xml:"receiver"`
	Providers  []ComponentElem `xml:"provider"`
}

// ComponentElem is the shared shape of activity, service, receiver, and
// provider elements. The Exported attribute is deliberately kept as a raw
// string: Android treats it as tri-state (true, false, or unset), and the
// unset case drives the default-export inference in the classifier.
type ComponentElem struct {
	Name                string           `xml:"name,attr"`
	Exported            string           `xml:"exported,attr"`
	Permission          string           `xml:"permission,attr"`
	GrantURIPermissions string           `xml:"grantUriPermissions,attr"`
	IntentFilters       []IntentFilterElem `xml:"intent-filter"`
}

// IntentFilterElem is one <intent-filter> element with its ordered
// sub-elements.
type IntentFilterElem struct {
	Actions    []NamedElem `xml:"action"`
	Categories []NamedElem `xml:"category"`
	Data       []DataElem  `xml:"data"`
}

// NamedElem covers <action> and <category>, which only carry a name.
type NamedElem struct {
	Name string `xml:"name,attr"`
}

// DataElem is one <data> element inside an intent filter.
type DataElem struct {
	Scheme      string `xml:"scheme,attr"`
	Host        string `xml:"host,attr"`
	Port        string `xml:"port,attr"`
	Path        string `xml:"path,attr"`
	PathPrefix  string `xml:"pathPrefix,attr"`
	PathPattern string `xml:"pathPattern,attr"`
	MimeType    string `xml:"mimeType,attr"`
}

// SignaturePermissions returns the names of app-defined permissions whose
// protectionLevel includes "signature" (covers signature and
// signature|privileged forms).
func (d *Document) SignaturePermissions() map[string]bool {
	result := make(map[string]bool)
	for _, p := range d.PermissionDecls {
		if containsSignatureLevel(p.ProtectionLevel) {
			result[p.Name] = true
		}
	}
	return result
}

// containsSignatureLevel reports whether a protectionLevel attribute value
// names the signature level. Values may combine flags with '|'.
func containsSignatureLevel(level string) bool {
	start := 0
	for i := 0; i <= len(level); i++ {
		if i == len(level) || level[i] == '|' {
			if level[start:i] == "signature" {
				return true
			}
			start = i + 1
		}
	}
	return false
}
