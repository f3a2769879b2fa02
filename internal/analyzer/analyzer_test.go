package analyzer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Adimir123/manscan/internal/manifest"
	"github.com/Adimir123/manscan/internal/model"
	"github.com/Adimir123/manscan/internal/pipeline"
)

// analyze runs the full canonical pipeline over a document.
func analyze(t *testing.T, doc *manifest.Document, table manifest.StringTable) *model.Report {
	t.Helper()

	report := model.NewReport(doc.Package)
	p := pipeline.New()
	p.AddSteps(Steps(doc, table)...)
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatal(err)
	}
	return report
}

// TestScenarioBrowsableActivity tests the end-to-end scenario: one activity
// with no exported attribute and a browsable VIEW filter for scheme myapp.
func TestScenarioBrowsableActivity(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<manifest package="com.example.app"><application>
		<activity android:name=".LinkActivity">
			<intent-filter>
				<action android:name="android.intent.action.VIEW"/>
				<category android:name="android.intent.category.BROWSABLE"/>
				<data android:scheme="myapp"/>
			</intent-filter>
		</activity></application></manifest>`)

	report := analyze(t, doc, nil)

	if len(report.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(report.Components))
	}
	if !report.Components[0].Exported {
		t.Error("expected the activity to be exported by default")
	}

	high := report.FindingsBySeverity(model.SeverityHigh)
	if len(high) != 1 {
		t.Fatalf("expected exactly 1 high finding, got %d", len(high))
	}
	if high[0].Category != model.CategoryExportedComponent {
		t.Errorf("expected exported-component category, got %q", high[0].Category)
	}

	if len(report.DeepLinks) != 1 {
		t.Fatalf("expected 1 deep link, got %d", len(report.DeepLinks))
	}
	if report.DeepLinks[0].Scheme != "myapp" {
		t.Errorf("expected scheme myapp, got %q", report.DeepLinks[0].Scheme)
	}
}

// TestScenarioCameraPermissionNoStrings tests classifying CAMERA with no
// strings file supplied.
func TestScenarioCameraPermissionNoStrings(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<manifest package="com.example.app">
		<uses-permission android:name="android.permission.CAMERA"/>
	</manifest>`)

	// No strings file at this path: the table loads empty without failing.
	table := manifest.LoadStrings(filepath.Join(t.TempDir(), "strings.xml"))
	if len(table) != 0 {
		t.Fatalf("expected empty string table, got %d entries", len(table))
	}

	report := analyze(t, doc, table)

	if len(report.Permissions) != 1 {
		t.Fatalf("expected 1 permission usage, got %d", len(report.Permissions))
	}
	if report.Permissions[0].Protection != model.ProtectionDangerous {
		t.Errorf("expected dangerous tier, got %v", report.Permissions[0].Protection)
	}

	medium := report.FindingsBySeverity(model.SeverityMedium)
	if len(medium) != 1 || medium[0].Category != model.CategoryDangerousPermission {
		t.Errorf("expected one medium dangerous-permission finding, got %+v", medium)
	}
}

// TestReportOrdering tests that the aggregated findings list is ordered:
// component findings, then permission findings, then deep-link findings.
func TestReportOrdering(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<manifest package="com.example.app">
		<uses-permission android:name="android.permission.CAMERA"/>
		<application>
			<activity android:name=".LinkActivity">
				<intent-filter>
					<action android:name="android.intent.action.VIEW"/>
					<category android:name="android.intent.category.BROWSABLE"/>
					<data android:scheme="myapp"/>
				</intent-filter>
			</activity>
		</application></manifest>`)

	report := analyze(t, doc, nil)

	expected := []string{
		model.CategoryExportedComponent,
		model.CategoryDangerousPermission,
		model.CategoryDeepLink,
	}
	if len(report.Findings) != len(expected) {
		t.Fatalf("expected %d findings, got %d: %+v", len(expected), len(report.Findings), report.Findings)
	}
	for i, category := range expected {
		if report.Findings[i].Category != category {
			t.Errorf("finding %d: expected category %q, got %q", i, category, report.Findings[i].Category)
		}
	}
}

// TestSummaryMatchesFindings tests the consistency invariant between the
// severity summary and the findings list on a busy manifest.
func TestSummaryMatchesFindings(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<manifest package="com.example.app">
		<uses-permission android:name="android.permission.CAMERA"/>
		<uses-permission android:name="android.permission.INTERNET"/>
		<uses-permission android:name="com.vendor.CUSTOM"/>
		<application>
			<activity android:name=".Main" android:exported="true"/>
			<service android:name=".Sync"/>
			<activity android:name=".Links">
				<intent-filter>
					<action android:name="android.intent.action.VIEW"/>
					<category android:name="android.intent.category.BROWSABLE"/>
					<data android:scheme="https" android:host="example.com"/>
					<data android:scheme="myapp"/>
				</intent-filter>
			</activity>
		</application></manifest>`)

	report := analyze(t, doc, nil)

	total := 0
	for _, sev := range []model.Severity{model.SeverityInfo, model.SeverityLow, model.SeverityMedium, model.SeverityHigh} {
		count := report.SeverityCount(sev)
		if got := len(report.FindingsBySeverity(sev)); got != count {
			t.Errorf("severity %s: summary %d != findings %d", sev, count, got)
		}
		total += count
	}
	if total != report.TotalFindings() {
		t.Errorf("summary total %d != findings total %d", total, report.TotalFindings())
	}
}
