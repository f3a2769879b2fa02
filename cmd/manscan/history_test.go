package main

import (
	"testing"
	"time"

	"github.com/Adimir123/manscan/internal/model"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history [package]" {
			t.Errorf("expected use 'history [package]', got %q", cmd.Use)
		}
	})

	t.Run("has list-packages flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("list-packages")
		if flag == nil {
			t.Fatal("expected list-packages flag")
		}
		if flag.Shorthand != "L" {
			t.Errorf("expected shorthand 'L', got %q", flag.Shorthand)
		}
	})

	t.Run("has diff flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("diff")
		if flag == nil {
			t.Fatal("expected diff flag")
		}
		if flag.Shorthand != "d" {
			t.Errorf("expected shorthand 'd', got %q", flag.Shorthand)
		}
	})

	t.Run("has with-scan-id flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("with-scan-id")
		if flag == nil {
			t.Fatal("expected with-scan-id flag")
		}
		if flag.Shorthand != "i" {
			t.Errorf("expected shorthand 'i', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("json") == nil {
			t.Error("expected json flag")
		}
	})
}

// historyReport builds a report with the given finding types for diff tests.
func historyReport(findingTypes ...string) *model.Report {
	r := model.NewReport("com.example.app")
	for _, ft := range findingTypes {
		r.AddFinding(model.NewFinding(ft, "Finding "+ft, "", "com.example.app.MainActivity", ft))
	}
	return r
}

// TestCompareReports tests the report diff logic.
func TestCompareReports(t *testing.T) {
	t.Parallel()

	t.Run("detects new and resolved findings", func(t *testing.T) {
		t.Parallel()

		previous := historyReport("exported_no_permission", "dangerous_permission")
		current := historyReport("dangerous_permission", "web_deep_link")

		result := compareReports(previous, current)

		if len(result.NewFindings) != 1 || result.NewFindings[0].Type != "web_deep_link" {
			t.Errorf("unexpected new findings: %+v", result.NewFindings)
		}
		if len(result.ResolvedFindings) != 1 || result.ResolvedFindings[0].Type != "exported_no_permission" {
			t.Errorf("unexpected resolved findings: %+v", result.ResolvedFindings)
		}
		if result.UnchangedCount != 1 {
			t.Errorf("expected 1 unchanged finding, got %d", result.UnchangedCount)
		}
	})

	t.Run("risk improves when high finding resolved", func(t *testing.T) {
		t.Parallel()

		previous := historyReport("exported_no_permission")
		current := historyReport("web_deep_link")

		result := compareReports(previous, current)
		if result.RiskChange.Direction != riskDirectionImproved {
			t.Errorf("expected improved, got %q", result.RiskChange.Direction)
		}
		if result.RiskChange.HighDelta != -1 {
			t.Errorf("expected high delta -1, got %d", result.RiskChange.HighDelta)
		}
	})

	t.Run("risk worsens when high finding appears", func(t *testing.T) {
		t.Parallel()

		previous := historyReport("web_deep_link")
		current := historyReport("web_deep_link", "exported_no_permission")

		result := compareReports(previous, current)
		if result.RiskChange.Direction != riskDirectionWorsened {
			t.Errorf("expected worsened, got %q", result.RiskChange.Direction)
		}
	})

	t.Run("identical reports are unchanged", func(t *testing.T) {
		t.Parallel()

		previous := historyReport("dangerous_permission")
		current := historyReport("dangerous_permission")

		result := compareReports(previous, current)
		if result.RiskChange.Direction != riskDirectionUnchanged {
			t.Errorf("expected unchanged, got %q", result.RiskChange.Direction)
		}
		if len(result.NewFindings) != 0 || len(result.ResolvedFindings) != 0 {
			t.Error("expected no new or resolved findings")
		}
	})
}

// TestScanMetadata tests metadata extraction from reports.
func TestScanMetadata(t *testing.T) {
	t.Parallel()

	r := historyReport("exported_no_permission", "dangerous_permission", "web_deep_link")
	r.DateScanned = time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC)

	meta := scanMetadata(r)
	if meta.TotalFindings != 3 {
		t.Errorf("expected 3 findings, got %d", meta.TotalFindings)
	}
	if meta.HighCount != 1 {
		t.Errorf("expected 1 high finding, got %d", meta.HighCount)
	}
	if meta.MediumCount != 1 {
		t.Errorf("expected 1 medium finding, got %d", meta.MediumCount)
	}
	if meta.InfoCount != 1 {
		t.Errorf("expected 1 info finding, got %d", meta.InfoCount)
	}
	if !meta.DateScanned.Equal(r.DateScanned) {
		t.Error("expected scan date to be carried over")
	}
}

// TestFormatRiskSummary tests the compact risk summary formatting.
func TestFormatRiskSummary(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		summary  map[string]int
		expected string
	}{
		{"nil summary", nil, "N/A"},
		{"empty summary", map[string]int{}, noFindingsMessage},
		{"all severities", map[string]int{"high": 2, "medium": 1, "low": 3, "info": 4}, "H:2 M:1 L:3 I:4"},
		{"partial", map[string]int{"medium": 5}, "M:5"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := formatRiskSummary(tc.summary); got != tc.expected {
				t.Errorf("formatRiskSummary() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

// TestFormatDelta tests signed delta formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		delta    int
		expected string
	}{
		{3, "+3"},
		{-2, "-2"},
		{0, "0"},
	}

	for _, tc := range testCases {
		tc := tc
		if got := formatDelta(tc.delta); got != tc.expected {
			t.Errorf("formatDelta(%d) = %q, expected %q", tc.delta, got, tc.expected)
		}
	}
}
