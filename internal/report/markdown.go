package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/Adimir123/manscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeComponents(md, report)
	w.writePermissions(md, report)
	w.writeDeepLinks(md, report)
	w.writeFindings(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with analysis information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Manifest Analysis Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Package", "`" + report.Package + "`"},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Components", strconv.Itoa(len(report.Components))},
			{"Permissions", strconv.Itoa(len(report.Permissions))},
			{"Deep Links", strconv.Itoa(len(report.DeepLinks))},
		},
	})
	md.PlainText("")
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 High", strconv.Itoa(report.SeverityCount(model.SeverityHigh))},
			{"🟡 Medium", strconv.Itoa(report.SeverityCount(model.SeverityMedium))},
			{"🔵 Low", strconv.Itoa(report.SeverityCount(model.SeverityLow))},
			{"⚪ Info", strconv.Itoa(report.SeverityCount(model.SeverityInfo))},
			{"**Total**", "**" + strconv.Itoa(report.TotalFindings()) + "**"},
		},
	})
	md.PlainText("")

	if report.HasFindings() {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if n := report.SeverityCount(model.SeverityHigh); n > 0 {
		chart.LabelAndIntValue("High", uint64(n))
	}
	if n := report.SeverityCount(model.SeverityMedium); n > 0 {
		chart.LabelAndIntValue("Medium", uint64(n))
	}
	if n := report.SeverityCount(model.SeverityLow); n > 0 {
		chart.LabelAndIntValue("Low", uint64(n))
	}
	if n := report.SeverityCount(model.SeverityInfo); n > 0 {
		chart.LabelAndIntValue("Info", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case report.SeverityCount(model.SeverityHigh) > 0:
		md.Warningf(
			"High severity issues detected. %d finding(s) expose unprotected attack surface.",
			report.SeverityCount(model.SeverityHigh),
		)
	case report.SeverityCount(model.SeverityMedium) > 0:
		md.Importantf(
			"Medium severity issues found. %d finding(s) should be reviewed.",
			report.SeverityCount(model.SeverityMedium),
		)
	case report.TotalFindings() > 0:
		md.Note("Only low severity and informational findings detected.")
	default:
		md.Tip("No significant security issues detected.")
	}
	md.PlainText("")
}

// writeComponents writes the classified component inventory.
func (w *MarkdownWriter) writeComponents(md *markdown.Markdown, report *model.Report) {
	md.H2("Components")
	md.PlainText("")

	if len(report.Components) == 0 {
		md.PlainText("No components declared.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Components))
	for i, c := range report.Components {
		exported := "false"
		if c.Exported {
			exported = "true"
			if c.ExportedByDefault {
				exported = "true (implicit)"
			}
		}
		permission := "-"
		if len(c.Permissions) > 0 {
			permission = "`" + c.Permissions[0] + "`"
		}
		rows[i] = []string{
			string(c.Kind),
			"`" + c.Name + "`",
			exported,
			strconv.Itoa(len(c.IntentFilters)),
			permission,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Name", "Exported", "Intent Filters", "Permission"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePermissions writes the declared permission inventory.
func (w *MarkdownWriter) writePermissions(md *markdown.Markdown, report *model.Report) {
	md.H2("Permissions")
	md.PlainText("")

	if len(report.Permissions) == 0 {
		md.PlainText("No permissions declared.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Permissions))
	for i, p := range report.Permissions {
		rows[i] = []string{"`" + p.Name + "`", string(p.Protection)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Permission", "Protection Level"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDeepLinks writes the extracted deep links.
func (w *MarkdownWriter) writeDeepLinks(md *markdown.Markdown, report *model.Report) {
	md.H2("Deep Links")
	md.PlainText("")

	if len(report.DeepLinks) == 0 {
		md.PlainText("No deep links found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.DeepLinks))
	for i, d := range report.DeepLinks {
		kind := "custom scheme"
		if d.IsWeb() {
			kind = "web"
		}
		rows[i] = []string{"`" + d.URI() + "`", kind, "`" + d.Component + "`"}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URI", "Type", "Component"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.Report) {
	md.H2("Findings")
	md.PlainText("")

	if !report.HasFindings() {
		md.PlainText("No security findings detected.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityHigh, "### 🔴 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🔵 Low"},
		{model.SeverityInfo, "### ⚪ Info"},
	}

	for _, sev := range severities {
		findings := report.FindingsBySeverity(sev.level)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	headers := []string{"Title", "Component", "Value", "Recommendation"}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		component := f.Component
		if component == "" {
			component = "-"
		}
		value := f.Value
		if value == "" {
			value = "-"
		}
		rec := f.Recommendation
		if rec == "" {
			rec = "-"
		}

		rows[i] = []string{
			f.Title,
			truncateString(component, 40),
			truncateString(value, 50),
			truncateString(rec, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Add detailed descriptions for all findings
	for _, f := range findings {
		if f.Description != "" {
			md.Details(f.Title, f.Description)
		}
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [manscan](https://github.com/Adimir123/manscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
