package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Adimir123/manscan/internal/model"
)

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display with color-coded severity
// levels and clear section formatting.
//
// Design decision: We use the fatih/color library rather than raw ANSI
// escape codes because:
// 1. It detects non-TTY output and degrades to plain text automatically
// 2. It works on Windows terminals without extra handling
// 3. Disabling color for CI logs becomes a single option
type TextWriter struct {
	baseWriter

	// noColor disables ANSI colors even on a TTY.
	noColor bool

	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithNoColor disables ANSI colors in the output.
func WithNoColor(noColor bool) TextWriterOption {
	return func(w *TextWriter) {
		w.noColor = noColor
	}
}

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) TextWriterOption {
	return func(w *TextWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		noColor:    false,
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *TextWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeComponents(&sb, report)
	w.writePermissions(&sb, report)
	w.writeDeepLinks(&sb, report)
	w.writeFindings(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// paint applies attributes to s unless colors are disabled.
func (w *TextWriter) paint(s string, attrs ...color.Attribute) string {
	if w.noColor {
		return s
	}
	return color.New(attrs...).Sprint(s)
}

// severityColor returns the color attribute for a severity level.
func severityColor(severity model.Severity) color.Attribute {
	switch severity {
	case model.SeverityHigh:
		return color.FgRed
	case model.SeverityMedium:
		return color.FgYellow
	case model.SeverityLow:
		return color.FgCyan
	case model.SeverityInfo:
		return color.FgWhite
	default:
		return color.FgWhite
	}
}

// kindColor returns the color attribute for a component kind.
func kindColor(kind model.ComponentKind) color.Attribute {
	switch kind {
	case model.KindActivity:
		return color.FgGreen
	case model.KindService:
		return color.FgBlue
	case model.KindReceiver:
		return color.FgMagenta
	case model.KindProvider:
		return color.FgCyan
	default:
		return color.FgWhite
	}
}

// writeHeader writes the report header with analysis information.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(w.paint("                     MANIFEST ANALYSIS REPORT\n", color.Bold))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Package:   %s\n", w.paint(report.Package, color.Bold)))
	sb.WriteString(fmt.Sprintf("Scan Date: %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString("\n")
}

// writeSummary writes the severity summary section.
func (w *TextWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	w.writeSectionTitle(sb, "SEVERITY SUMMARY")

	sb.WriteString(fmt.Sprintf("  %s %d\n", w.paint("HIGH:  ", color.FgRed, color.Bold), report.SeverityCount(model.SeverityHigh)))
	sb.WriteString(fmt.Sprintf("  %s %d\n", w.paint("MEDIUM:", color.FgYellow), report.SeverityCount(model.SeverityMedium)))
	sb.WriteString(fmt.Sprintf("  %s %d\n", w.paint("LOW:   ", color.FgCyan), report.SeverityCount(model.SeverityLow)))
	sb.WriteString(fmt.Sprintf("  %s %d\n", w.paint("INFO:  ", color.FgWhite), report.SeverityCount(model.SeverityInfo)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:  %d findings\n", report.TotalFindings()))
	sb.WriteString("\n")
}

// writeComponents writes the classified component inventory.
func (w *TextWriter) writeComponents(sb *strings.Builder, report *model.Report) {
	if len(report.Components) == 0 && !w.showEmpty {
		return
	}

	w.writeSectionTitle(sb, "COMPONENTS")

	if len(report.Components) == 0 {
		sb.WriteString("  No components declared\n\n")
		return
	}

	for _, c := range report.Components {
		kind := w.paint(fmt.Sprintf("%-8s", c.Kind), kindColor(c.Kind))
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", kind, c.Name))
		sb.WriteString(fmt.Sprintf("    exported: %s\n", w.exportedText(c)))
		if len(c.Permissions) > 0 {
			sb.WriteString(fmt.Sprintf("    permission: %s\n", strings.Join(c.Permissions, ", ")))
		}
		if c.GrantsURIPermissions {
			sb.WriteString("    grants URI permissions\n")
		}
		if w.verbose {
			for _, f := range c.IntentFilters {
				sb.WriteString(fmt.Sprintf("    intent-filter: actions=%v categories=%v\n", f.Actions, f.Categories))
			}
		}
	}
	sb.WriteString("\n")
}

// exportedText renders the component's exported state, flagging values that
// were inferred from intent filters rather than declared.
func (w *TextWriter) exportedText(c model.Component) string {
	if !c.Exported {
		return "false"
	}
	if c.ExportedByDefault {
		return w.paint("true (implicit)", color.FgYellow)
	}
	return w.paint("true", color.FgYellow)
}

// writePermissions writes the declared permission inventory.
func (w *TextWriter) writePermissions(sb *strings.Builder, report *model.Report) {
	if len(report.Permissions) == 0 && !w.showEmpty {
		return
	}

	w.writeSectionTitle(sb, "PERMISSIONS")

	if len(report.Permissions) == 0 {
		sb.WriteString("  No permissions declared\n\n")
		return
	}

	for _, p := range report.Permissions {
		level := string(p.Protection)
		switch p.Protection {
		case model.ProtectionDangerous:
			level = w.paint(level, color.FgYellow)
		case model.ProtectionSignature:
			level = w.paint(level, color.FgCyan)
		case model.ProtectionUnknown:
			level = w.paint(level, color.FgMagenta)
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", level, p.Name))
	}
	sb.WriteString("\n")
}

// writeDeepLinks writes the extracted deep links.
func (w *TextWriter) writeDeepLinks(sb *strings.Builder, report *model.Report) {
	if len(report.DeepLinks) == 0 && !w.showEmpty {
		return
	}

	w.writeSectionTitle(sb, "DEEP LINKS")

	if len(report.DeepLinks) == 0 {
		sb.WriteString("  No deep links found\n\n")
		return
	}

	for _, d := range report.DeepLinks {
		uri := d.URI()
		if d.IsWeb() {
			uri = w.paint(uri, color.FgGreen)
		}
		sb.WriteString(fmt.Sprintf("  %s (%s)\n", uri, d.Component))
	}
	sb.WriteString("\n")
}

// writeFindings writes all findings grouped by severity, highest first.
func (w *TextWriter) writeFindings(sb *strings.Builder, report *model.Report) {
	if !report.HasFindings() && !w.showEmpty {
		return
	}

	w.writeSectionTitle(sb, "FINDINGS")

	severities := []model.Severity{
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		findings := report.FindingsBySeverity(severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}

		w.writeFindingsForSeverity(sb, severity, findings)
	}
}

// writeFindingsForSeverity writes findings of a specific severity level.
func (w *TextWriter) writeFindingsForSeverity(sb *strings.Builder, severity model.Severity, findings []model.Finding) {
	indicator := severityIndicator(severity)
	header := fmt.Sprintf("[%s] %s", indicator, severity.String())
	sb.WriteString(w.paint(header, severityColor(severity), color.Bold))
	sb.WriteString("\n")

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s\n", finding.Title))
		if finding.Component != "" {
			sb.WriteString(fmt.Sprintf("    Component: %s\n", finding.Component))
		}
		if finding.Value != "" {
			sb.WriteString(fmt.Sprintf("    Value: %s\n", finding.Value))
		}
		if w.verbose {
			if finding.Description != "" {
				sb.WriteString(fmt.Sprintf("    Description: %s\n", finding.Description))
			}
			if finding.Recommendation != "" {
				sb.WriteString(fmt.Sprintf("    Recommendation: %s\n", finding.Recommendation))
			}
		}
	}
	sb.WriteString("\n")
}

// severityIndicator returns a visual indicator for the severity level.
func severityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeSectionTitle writes a separator-framed section title.
func (w *TextWriter) writeSectionTitle(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(w.paint(title, color.Bold))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeFooter writes the report footer.
func (w *TextWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by manscan\n")
	sb.WriteString("https://github.com/Adimir123/manscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
