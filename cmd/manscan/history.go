package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adimir123/manscan/internal/config"
	"github.com/Adimir123/manscan/internal/database"
	"github.com/Adimir123/manscan/internal/model"
)

// Constants for risk direction and summary messages.
const (
	riskDirectionWorsened  = "worsened"
	riskDirectionImproved  = "improved"
	riskDirectionUnchanged = "unchanged"
	noFindingsMessage      = "No findings"
)

// NewHistoryCmd creates the history command.
// This command lists and compares stored analysis reports.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [package]",
		Short: "List and compare stored analysis reports",
		Long: `History shows past analysis results stored in the database.

Without flags it lists the stored scans for the given package. With
--diff it compares the latest two scans and shows:
- New findings that appeared since the previous scan
- Resolved findings that are no longer present
- Changes in risk severity counts

Examples:
  # List all analyzed packages in the database
  manscan history --list-packages

  # List scan history for a package
  manscan history com.example.app

  # Compare the latest two scans
  manscan history --diff com.example.app

  # Compare with a specific historical scan by ID
  manscan history --diff --with-scan-id 5 com.example.app

  # Output the comparison in JSON format
  manscan history --diff --json com.example.app`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-packages", "L", false,
		"List all analyzed packages in the database")
	cmd.Flags().BoolP("diff", "d", false,
		"Compare the latest two scans for the package")
	cmd.Flags().Int64P("with-scan-id", "i", 0,
		"Compare with a specific scan by ID (implies --diff)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listPackages, err := cmd.Flags().GetBool("list-packages")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so validation failures
	// do not leave lock files behind.
	var pkg string
	if !listPackages {
		if len(args) == 0 {
			return errors.New("package name is required (use --list-packages to see available packages)")
		}
		pkg = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listPackages {
		return listAnalyzedPackages(ctx, db)
	}

	diff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	withScanID, err := cmd.Flags().GetInt64("with-scan-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if diff || withScanID > 0 {
		return runComparison(ctx, db, pkg, withScanID, jsonOutput)
	}

	return listScanHistory(ctx, db, pkg)
}

// listAnalyzedPackages lists all packages with stored reports.
func listAnalyzedPackages(ctx context.Context, db *database.ScanDB) error {
	packages, err := db.ListPackages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list packages: %w", err)
	}

	if len(packages) == 0 {
		fmt.Println("No analyzed packages found in the database.")
		fmt.Println("\nUse 'manscan scan -m <manifest>' to analyze a manifest.")
		return nil
	}

	fmt.Printf("Analyzed packages (%d):\n\n", len(packages))
	for _, pkg := range packages {
		fmt.Printf("  • %s\n", pkg)
	}
	fmt.Println("\nUse 'manscan history <package>' to see scan history for a package.")

	return nil
}

// listScanHistory lists all stored reports for a specific package.
func listScanHistory(ctx context.Context, db *database.ScanDB, pkg string) error {
	reports, err := db.GetHistoryWithMetadata(ctx, pkg)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(reports) == 0 {
		fmt.Printf("No scan history found for %s\n", pkg)
		fmt.Println("\nUse 'manscan scan' to analyze this package.")
		return nil
	}

	fmt.Printf("Scan history for %s (%d scans):\n\n", pkg, len(reports))
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Date", "Risk Summary")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range reports {
		fmt.Printf("  %-6d  %-20s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			formatRiskSummary(meta.RiskSummary),
		)
	}

	fmt.Println("\nUse 'manscan history --diff <package>' to compare the latest two scans.")
	fmt.Println("Use 'manscan history --diff --with-scan-id <id> <package>' to compare with a specific scan.")

	return nil
}

// formatRiskSummary formats the risk summary map into a human-readable string.
func formatRiskSummary(summary map[string]int) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	if v := summary["high"]; v > 0 {
		parts = append(parts, fmt.Sprintf("H:%d", v))
	}
	if v := summary["medium"]; v > 0 {
		parts = append(parts, fmt.Sprintf("M:%d", v))
	}
	if v := summary["low"]; v > 0 {
		parts = append(parts, fmt.Sprintf("L:%d", v))
	}
	if v := summary["info"]; v > 0 {
		parts = append(parts, fmt.Sprintf("I:%d", v))
	}

	if len(parts) == 0 {
		return noFindingsMessage
	}
	return strings.Join(parts, " ")
}

// runComparison compares the latest report against an earlier one.
func runComparison(ctx context.Context, db *database.ScanDB, pkg string, withScanID int64, jsonOutput bool) error {
	if withScanID > 0 {
		current, err := db.GetLatestReport(ctx, pkg)
		if err != nil {
			return fmt.Errorf("failed to get latest report: %w", err)
		}
		if current == nil {
			return fmt.Errorf("no scan history found for %s", pkg)
		}

		previous, err := db.GetReportByID(ctx, withScanID)
		if err != nil {
			return fmt.Errorf("failed to get scan with ID %d: %w", withScanID, err)
		}
		if previous == nil {
			return fmt.Errorf("scan with ID %d not found", withScanID)
		}
		if previous.Package != pkg {
			return fmt.Errorf("scan ID %d belongs to %s, not %s", withScanID, previous.Package, pkg)
		}

		return outputComparison(compareReports(previous, current), jsonOutput)
	}

	reports, err := db.LatestTwo(ctx, pkg)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}
	if len(reports) == 0 {
		return fmt.Errorf("no scan history found for %s", pkg)
	}
	if len(reports) < 2 {
		return fmt.Errorf("at least 2 scans are required for comparison (found %d)", len(reports))
	}

	return outputComparison(compareReports(reports[1], reports[0]), jsonOutput)
}

// outputComparison renders a comparison result in the requested format.
func outputComparison(result *ComparisonResult, jsonOutput bool) error {
	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return outputComparisonText(result)
}

// ComparisonResult holds the result of comparing two analysis reports.
type ComparisonResult struct {
	// Package is the analyzed package name.
	Package string `json:"package"`

	// PreviousScan contains metadata about the previous scan.
	PreviousScan ScanMetadata `json:"previous_scan"`

	// CurrentScan contains metadata about the current scan.
	CurrentScan ScanMetadata `json:"current_scan"`

	// NewFindings contains findings that are new in the current scan.
	NewFindings []model.Finding `json:"new_findings,omitempty"`

	// ResolvedFindings contains findings that were in the previous scan but not in current.
	ResolvedFindings []model.Finding `json:"resolved_findings,omitempty"`

	// UnchangedCount is the number of findings that remain unchanged.
	UnchangedCount int `json:"unchanged_count"`

	// RiskChange describes the overall change in risk level.
	RiskChange RiskChange `json:"risk_change"`
}

// ScanMetadata contains metadata about a scan for comparison display.
type ScanMetadata struct {
	// DateScanned is when the analysis was performed.
	DateScanned time.Time `json:"date_scanned"`

	// TotalFindings is the total number of findings in this scan.
	TotalFindings int `json:"total_findings"`

	// HighCount is the number of high severity findings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity findings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity findings.
	LowCount int `json:"low_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`
}

// RiskChange describes the change in risk level between scans.
type RiskChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// HighDelta is the change in high severity findings count.
	HighDelta int `json:"high_delta"`

	// MediumDelta is the change in medium severity findings count.
	MediumDelta int `json:"medium_delta"`

	// LowDelta is the change in low severity findings count.
	LowDelta int `json:"low_delta"`

	// InfoDelta is the change in informational findings count.
	InfoDelta int `json:"info_delta"`
}

// scanMetadata extracts comparison metadata from a report.
func scanMetadata(r *model.Report) ScanMetadata {
	return ScanMetadata{
		DateScanned:   r.DateScanned,
		TotalFindings: r.TotalFindings(),
		HighCount:     r.SeverityCount(model.SeverityHigh),
		MediumCount:   r.SeverityCount(model.SeverityMedium),
		LowCount:      r.SeverityCount(model.SeverityLow),
		InfoCount:     r.SeverityCount(model.SeverityInfo),
	}
}

// compareReports compares two analysis reports and generates a comparison result.
func compareReports(previous, current *model.Report) *ComparisonResult {
	result := &ComparisonResult{
		Package:      current.Package,
		PreviousScan: scanMetadata(previous),
		CurrentScan:  scanMetadata(current),
	}

	previousFindings := make(map[string]model.Finding)
	currentFindings := make(map[string]model.Finding)

	for _, f := range previous.Findings {
		previousFindings[findingKey(f)] = f
	}
	for _, f := range current.Findings {
		currentFindings[findingKey(f)] = f
	}

	// Findings in current but not in previous are new.
	for key, finding := range currentFindings {
		if _, exists := previousFindings[key]; !exists {
			result.NewFindings = append(result.NewFindings, finding)
		}
	}

	// Findings in previous but not in current are resolved.
	for key, finding := range previousFindings {
		if _, exists := currentFindings[key]; !exists {
			result.ResolvedFindings = append(result.ResolvedFindings, finding)
		} else {
			result.UnchangedCount++
		}
	}

	result.RiskChange = calculateRiskChange(result.PreviousScan, result.CurrentScan)

	return result
}

// findingKey generates a unique key for a finding for comparison purposes.
func findingKey(f model.Finding) string {
	return f.Type + "|" + f.Component + "|" + f.Value
}

// calculateRiskChange calculates the change in risk between two scans.
func calculateRiskChange(previous, current ScanMetadata) RiskChange {
	change := RiskChange{
		HighDelta:   current.HighCount - previous.HighCount,
		MediumDelta: current.MediumCount - previous.MediumCount,
		LowDelta:    current.LowCount - previous.LowCount,
		InfoDelta:   current.InfoCount - previous.InfoCount,
	}

	// Determine overall direction based on weighted score.
	// High severity changes have more weight.
	previousScore := previous.HighCount*50 + previous.MediumCount*10 + previous.LowCount*5 + previous.InfoCount
	currentScore := current.HighCount*50 + current.MediumCount*10 + current.LowCount*5 + current.InfoCount

	if currentScore < previousScore {
		change.Direction = riskDirectionImproved
	} else if currentScore > previousScore {
		change.Direction = riskDirectionWorsened
	} else {
		change.Direction = riskDirectionUnchanged
	}

	return change
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Scan Comparison: %s\n", result.Package)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nRisk Status: %s\n", formatRiskDirection(result.RiskChange.Direction))

	fmt.Printf("\nPrevious scan: %s\n", result.PreviousScan.DateScanned.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current scan:  %s\n", result.CurrentScan.DateScanned.Format("2006-01-02 15:04:05"))

	fmt.Println("\nFindings Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "High",
		result.PreviousScan.HighCount, result.CurrentScan.HighCount,
		formatDelta(result.RiskChange.HighDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Medium",
		result.PreviousScan.MediumCount, result.CurrentScan.MediumCount,
		formatDelta(result.RiskChange.MediumDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Low",
		result.PreviousScan.LowCount, result.CurrentScan.LowCount,
		formatDelta(result.RiskChange.LowDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Info",
		result.PreviousScan.InfoCount, result.CurrentScan.InfoCount,
		formatDelta(result.RiskChange.InfoDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousScan.TotalFindings, result.CurrentScan.TotalFindings,
		formatDelta(result.CurrentScan.TotalFindings-result.PreviousScan.TotalFindings))

	if len(result.NewFindings) > 0 {
		fmt.Printf("\nNew Findings (%d):\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Printf("  [+] [%s] %s\n", f.SeverityText, f.Title)
			if f.Component != "" {
				fmt.Printf("      Component: %s\n", f.Component)
			}
			if f.Value != "" {
				fmt.Printf("      Value: %s\n", f.Value)
			}
		}
	}

	if len(result.ResolvedFindings) > 0 {
		fmt.Printf("\nResolved Findings (%d):\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Printf("  [-] [%s] %s\n", f.SeverityText, f.Title)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d findings\n", result.UnchangedCount)
	}

	return nil
}

// formatRiskDirection formats the risk change direction for display.
func formatRiskDirection(direction string) string {
	switch direction {
	case riskDirectionImproved:
		return "IMPROVED (risk decreased)"
	case riskDirectionWorsened:
		return "WORSENED (risk increased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
