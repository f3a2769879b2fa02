package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Adimir123/manscan/internal/manifest"
	"github.com/Adimir123/manscan/internal/model"
)

// ComponentAnalyzer classifies the components declared under the application
// block and emits findings for unsafely exported ones.
//
// The one piece of non-trivial policy here is the default-export inference:
// a component without an android:exported attribute is exported when it
// declares at least one intent filter, and private otherwise. This mirrors
// the platform's historical default and is the primary source of
// "unintentionally exported" findings.
type ComponentAnalyzer struct {
	doc   *manifest.Document
	table manifest.StringTable

	// signaturePerms caches the app-defined signature-level permissions,
	// computed once per run in Do.
	signaturePerms map[string]bool
}

// NewComponentAnalyzer creates a ComponentAnalyzer over the given document
// and string table.
func NewComponentAnalyzer(doc *manifest.Document, table manifest.StringTable) *ComponentAnalyzer {
	return &ComponentAnalyzer{doc: doc, table: table}
}

// Name returns the step name.
func (a *ComponentAnalyzer) Name() string {
	return "components"
}

// Do classifies every component and appends component findings to the report.
// Components are independent; classification of one never affects another.
func (a *ComponentAnalyzer) Do(_ context.Context, report *model.Report) error {
	a.signaturePerms = a.doc.SignaturePermissions()

	for _, ke := range componentElems(a.doc) {
		component := a.classify(ke.kind, ke.elem)
		report.Components = append(report.Components, component)
		a.emitFindings(report, component)
	}

	return nil
}

// classify builds the model Component for one manifest element.
func (a *ComponentAnalyzer) classify(kind model.ComponentKind, elem manifest.ComponentElem) model.Component {
	component := model.Component{
		Kind: kind,
		Name: a.table.Resolve(elem.Name),
	}

	for _, f := range elem.IntentFilters {
		component.IntentFilters = append(component.IntentFilters, buildIntentFilter(f, a.table))
	}

	// Effective export: an explicit attribute wins; otherwise the platform
	// default exports any component that declares an intent filter.
	switch strings.ToLower(a.table.Resolve(elem.Exported)) {
	case "true":
		component.Exported = true
	case "false":
		component.Exported = false
	default:
		component.Exported = len(component.IntentFilters) > 0
		component.ExportedByDefault = true
	}

	if perm := a.table.Resolve(elem.Permission); perm != "" {
		component.Permissions = append(component.Permissions, perm)
	}

	if kind == model.KindProvider {
		component.GrantsURIPermissions = strings.EqualFold(a.table.Resolve(elem.GrantURIPermissions), "true")
	}

	return component
}

// emitFindings applies the export risk rules to one classified component.
func (a *ComponentAnalyzer) emitFindings(report *model.Report, c model.Component) {
	if !c.Exported {
		return
	}

	switch {
	case len(c.Permissions) == 0:
		desc := fmt.Sprintf("%s %s is exported with no permission requirement", c.Kind, c.Name)
		if c.ExportedByDefault {
			desc += " (exported implicitly by its intent filters)"
		}
		report.AddFinding(model.NewFinding("exported_no_permission",
			"Exported Component Without Permission", desc, c.Name, ""))

	default:
		// Guarded, but a VIEW/SEND filter with no scheme restriction still
		// accepts arbitrary external data, whatever the guard's
		// protection level.
		if filter, open := openDataFilter(c); open {
			desc := fmt.Sprintf("%s %s requires %s but accepts %s intents with no data scheme restriction",
				c.Kind, c.Name, c.Permissions[0], strings.Join(viewSendActions(filter), "/"))
			if a.signatureProtected(c) {
				desc += " (guard is signature-level)"
			}
			report.AddFinding(model.NewFinding("exported_open_filter",
				"Exported Component Accepts Arbitrary Data", desc, c.Name, ""))
		}
	}

	if c.Kind == model.KindProvider && c.GrantsURIPermissions {
		report.AddFinding(model.NewFinding("provider_grants_uri_permissions",
			"Provider Grants URI Permissions",
			fmt.Sprintf("provider %s allows URI permission granting, a potential data leakage path", c.Name),
			c.Name, ""))
	}
}

// signatureProtected reports whether every permission guarding the component
// is signature-level, judged from the app's own <permission> declarations or
// the built-in taxonomy.
func (a *ComponentAnalyzer) signatureProtected(c model.Component) bool {
	if len(c.Permissions) == 0 {
		return false
	}
	for _, perm := range c.Permissions {
		if a.signaturePerms[perm] {
			continue
		}
		if builtinTaxonomy[perm] == model.ProtectionSignature {
			continue
		}
		return false
	}
	return true
}

// openDataFilter returns the first intent filter that contains a VIEW or SEND
// action without any data scheme restriction.
func openDataFilter(c model.Component) (model.IntentFilter, bool) {
	for _, f := range c.IntentFilters {
		if (f.HasAction(ActionView) || f.HasAction(ActionSend)) && !f.HasSchemeRestriction() {
			return f, true
		}
	}
	return model.IntentFilter{}, false
}

// viewSendActions lists which of VIEW/SEND the filter declares, for messages.
func viewSendActions(f model.IntentFilter) []string {
	var actions []string
	if f.HasAction(ActionView) {
		actions = append(actions, "VIEW")
	}
	if f.HasAction(ActionSend) {
		actions = append(actions, "SEND")
	}
	return actions
}
