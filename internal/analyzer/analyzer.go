package analyzer

import (
	"github.com/Adimir123/manscan/internal/manifest"
	"github.com/Adimir123/manscan/internal/model"
	"github.com/Adimir123/manscan/internal/pipeline"
)

// Well-known intent constants from the Android platform.
const (
	// ActionView is the generic "display this data" action; browsable VIEW
	// filters are the entry point for deep links.
	ActionView = "android.intent.action.VIEW"

	// ActionSend is the "deliver this data" action; together with VIEW it
	// marks filters that accept arbitrary external data.
	ActionSend = "android.intent.action.SEND"

	// CategoryBrowsable marks a filter as invokable from a web browser.
	CategoryBrowsable = "android.intent.category.BROWSABLE"
)

// Steps returns the three analysis stages in canonical order: components,
// permissions, deep links. The aggregated report's finding order follows
// directly from this order.
func Steps(doc *manifest.Document, table manifest.StringTable, opts ...PermissionOption) []pipeline.Step {
	return []pipeline.Step{
		NewComponentAnalyzer(doc, table),
		NewPermissionAnalyzer(doc, table, opts...),
		NewDeepLinkAnalyzer(doc, table),
	}
}

// buildIntentFilter converts one parsed <intent-filter> element into the
// model representation, resolving every attribute that may carry a
// @string/ reference.
func buildIntentFilter(elem manifest.IntentFilterElem, table manifest.StringTable) model.IntentFilter {
	filter := model.IntentFilter{}

	for _, a := range elem.Actions {
		filter.Actions = append(filter.Actions, table.Resolve(a.Name))
	}
	for _, c := range elem.Categories {
		filter.Categories = append(filter.Categories, table.Resolve(c.Name))
	}
	for _, d := range elem.Data {
		filter.Data = append(filter.Data, model.DataSpec{
			Scheme:      table.Resolve(d.Scheme),
			Host:        table.Resolve(d.Host),
			Port:        table.Resolve(d.Port),
			Path:        table.Resolve(d.Path),
			PathPrefix:  table.Resolve(d.PathPrefix),
			PathPattern: table.Resolve(d.PathPattern),
			MimeType:    table.Resolve(d.MimeType),
		})
	}

	return filter
}

// componentElems flattens the four component kinds into one ordered list.
// Activities come first, then services, receivers, and providers, each in
// declaration order, so repeated runs produce identical reports.
func componentElems(doc *manifest.Document) []kindedElem {
	app := doc.Application
	elems := make([]kindedElem, 0,
		len(app.Activities)+len(app.Services)+len(app.Receivers)+len(app.Providers))

	for _, e := range app.Activities {
		elems = append(elems, kindedElem{kind: model.KindActivity, elem: e})
	}
	for _, e := range app.Services {
		elems = append(elems, kindedElem{kind: model.KindService, elem: e})
	}
	for _, e := range app.Receivers {
		elems = append(elems, kindedElem{kind: model.KindReceiver, elem: e})
	}
	for _, e := range app.Providers {
		elems = append(elems, kindedElem{kind: model.KindProvider, elem: e})
	}

	return elems
}

// kindedElem pairs a parsed component element with its kind.
type kindedElem struct {
	kind model.ComponentKind
	elem manifest.ComponentElem
}
