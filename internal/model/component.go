package model

// ComponentKind identifies which of the four manifest component elements a
// Component was built from.
type ComponentKind string

// The four component kinds Android declares under <application>.
const (
	KindActivity ComponentKind = "activity"
	KindService  ComponentKind = "service"
	KindReceiver ComponentKind = "receiver"
	KindProvider ComponentKind = "provider"
)

// Component represents one activity, service, receiver, or provider declared
// in the manifest. A Component is created once during classification and never
// mutated afterwards.
type Component struct {
	// Kind is the component element type.
	Kind ComponentKind `json:"kind"`

	// Name is the qualified component class name.
	Name string `json:"name"`

	// Exported is the effective exported state. When the manifest carries no
	// android:exported attribute, this follows the platform default: true if
	// the component declares at least one intent filter, false otherwise.
	Exported bool `json:"exported"`

	// ExportedByDefault is true when Exported was inferred from the presence
	// of intent filters rather than declared explicitly. These components are
	// the primary source of unintentionally exported surface.
	ExportedByDefault bool `json:"exported_by_default"`

	// Permissions lists permissions a caller must hold to interact with the
	// component (the android:permission attribute). Empty means unguarded.
	Permissions []string `json:"permissions,omitempty"`

	// GrantsURIPermissions is set for providers with
	// android:grantUriPermissions="true".
	GrantsURIPermissions bool `json:"grants_uri_permissions,omitempty"`

	// IntentFilters holds the component's declared intent filters in
	// declaration order.
	IntentFilters []IntentFilter `json:"intent_filters,omitempty"`
}

// IntentFilter is an ordered set of actions, categories, and data
// specifications scoped to one Component.
type IntentFilter struct {
	// Actions are the android:name values of <action> sub-elements.
	Actions []string `json:"actions,omitempty"`

	// Categories are the android:name values of <category> sub-elements.
	Categories []string `json:"categories,omitempty"`

	// Data holds the <data> sub-elements in declaration order.
	Data []DataSpec `json:"data,omitempty"`
}

// DataSpec mirrors the attributes of one <data> element inside an intent
// filter. All fields are optional in the manifest; empty means unspecified.
type DataSpec struct {
	Scheme      string `json:"scheme,omitempty"`
	Host        string `json:"host,omitempty"`
	Port        string `json:"port,omitempty"`
	Path        string `json:"path,omitempty"`
	PathPrefix  string `json:"path_prefix,omitempty"`
	PathPattern string `json:"path_pattern,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

// HasAction reports whether any of the filter's actions equals name.
func (f IntentFilter) HasAction(name string) bool {
	for _, a := range f.Actions {
		if a == name {
			return true
		}
	}
	return false
}

// HasCategory reports whether any of the filter's categories equals name.
func (f IntentFilter) HasCategory(name string) bool {
	for _, c := range f.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// HasSchemeRestriction reports whether at least one data element restricts the
// filter to a concrete URI scheme.
func (f IntentFilter) HasSchemeRestriction() bool {
	for _, d := range f.Data {
		if d.Scheme != "" {
			return true
		}
	}
	return false
}
