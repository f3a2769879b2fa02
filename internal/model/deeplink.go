package model

import "strings"

// DeepLink is a URI pattern the app claims through an intent filter with a
// VIEW action, a BROWSABLE category, and a data scheme. Each qualifying
// <data> element yields exactly one DeepLink; multiple data elements inside
// one filter are treated independently, not as a cross-product.
type DeepLink struct {
	// Scheme is the URI scheme, always present.
	Scheme string `json:"scheme"`

	// Host is the URI host, empty when the filter does not restrict it.
	Host string `json:"host,omitempty"`

	// Port is the URI port, empty when unspecified.
	Port string `json:"port,omitempty"`

	// Path is the path, pathPrefix, or pathPattern value, empty when
	// unspecified.
	Path string `json:"path,omitempty"`

	// Component is the qualified name of the component that owns the filter.
	Component string `json:"component"`
}

// IsWeb reports whether the deep link is an http/https host association
// (an App Links candidate) rather than a custom scheme.
func (d DeepLink) IsWeb() bool {
	return (d.Scheme == "http" || d.Scheme == "https") && d.Host != ""
}

// URI renders the deep link as scheme://host[:port][path].
// Host, port, and path are omitted when unspecified.
func (d DeepLink) URI() string {
	var sb strings.Builder
	sb.WriteString(d.Scheme)
	sb.WriteString("://")
	if d.Host != "" {
		sb.WriteString(d.Host)
		if d.Port != "" {
			sb.WriteString(":")
			sb.WriteString(d.Port)
		}
		sb.WriteString(d.Path)
	}
	return sb.String()
}
