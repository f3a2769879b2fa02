package analyzer

import (
	"context"
	"fmt"

	"github.com/Adimir123/manscan/internal/manifest"
	"github.com/Adimir123/manscan/internal/model"
)

// DeepLinkAnalyzer scans intent filters for browsable VIEW actions and
// assembles candidate deep-link URIs. It walks the parsed tree independently
// of the component classifier, so the stages stay order-free.
//
// Eligibility rule: a filter qualifies when it declares the VIEW action, the
// BROWSABLE category, and at least one data element with a scheme. Each
// qualifying data element yields exactly one DeepLink; multiple data elements
// inside one filter are treated independently, never as a cross-product.
type DeepLinkAnalyzer struct {
	doc   *manifest.Document
	table manifest.StringTable
}

// NewDeepLinkAnalyzer creates a DeepLinkAnalyzer over the given document and
// string table.
func NewDeepLinkAnalyzer(doc *manifest.Document, table manifest.StringTable) *DeepLinkAnalyzer {
	return &DeepLinkAnalyzer{doc: doc, table: table}
}

// Name returns the step name.
func (a *DeepLinkAnalyzer) Name() string {
	return "deeplinks"
}

// Do extracts deep links and appends deep-link findings to the report.
// Extraction is idempotent: the same document always yields the same ordered
// list.
func (a *DeepLinkAnalyzer) Do(_ context.Context, report *model.Report) error {
	for _, ke := range componentElems(a.doc) {
		componentName := a.table.Resolve(ke.elem.Name)

		for _, rawFilter := range ke.elem.IntentFilters {
			filter := buildIntentFilter(rawFilter, a.table)
			if !eligible(filter) {
				continue
			}

			for _, d := range filter.Data {
				if d.Scheme == "" {
					continue
				}

				link := model.DeepLink{
					Scheme:    d.Scheme,
					Host:      d.Host,
					Port:      d.Port,
					Path:      pathOf(d),
					Component: componentName,
				}
				report.DeepLinks = append(report.DeepLinks, link)
				a.emitFinding(report, link)
			}
		}
	}

	return nil
}

// eligible applies the deep-link eligibility rule to one filter.
func eligible(f model.IntentFilter) bool {
	return f.HasAction(ActionView) && f.HasCategory(CategoryBrowsable) && f.HasSchemeRestriction()
}

// pathOf picks the filter's path value: path wins over pathPrefix, which
// wins over pathPattern.
func pathOf(d model.DataSpec) string {
	switch {
	case d.Path != "":
		return d.Path
	case d.PathPrefix != "":
		return d.PathPrefix
	default:
		return d.PathPattern
	}
}

// emitFinding flags the extracted link: http/https with a host is a
// web-association (App Links) candidate, anything else is a custom-scheme
// deep link.
func (a *DeepLinkAnalyzer) emitFinding(report *model.Report, link model.DeepLink) {
	if link.IsWeb() {
		report.AddFinding(model.NewFinding("web_deep_link",
			"Web Deep Link Candidate",
			fmt.Sprintf("%s claims %s, a web association (App Links) candidate", link.Component, link.URI()),
			link.Component, link.URI()))
		return
	}

	report.AddFinding(model.NewFinding("custom_scheme_deep_link",
		"Custom Scheme Deep Link",
		fmt.Sprintf("%s handles the custom scheme URI %s", link.Component, link.URI()),
		link.Component, link.URI()))
}
