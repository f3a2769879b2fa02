package model

import (
	"strings"
	"time"
)

// Finding is one security-relevant observation about the manifest.
// Findings are immutable value records collected into the final report.
type Finding struct {
	// Type is the finding type identifier.
	// This maps to the findingInfoMapping in severity.go.
	Type string `json:"type"`

	// Category groups the finding: exported-component, dangerous-permission,
	// deep-link, or informational.
	Category string `json:"category"`

	// Severity is the risk level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Impact explains the security implications of this finding.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Component references the originating component name, when the finding
	// is about a component or deep link.
	Component string `json:"component,omitempty"`

	// Value is the specific value found (permission name, URI, etc.).
	Value string `json:"value,omitempty"`
}

// NewFinding builds a Finding of the given type, filling severity, category,
// impact, and recommendation from the finding taxonomy.
func NewFinding(findingType, title, description, component, value string) Finding {
	info := GetFindingInfo(findingType)
	return Finding{
		Type:           findingType,
		Category:       info.Category,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          title,
		Description:    description,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
		Component:      component,
		Value:          value,
	}
}

// Report is the aggregated manifest analysis result.
// The analysis stages write to disjoint slices (Components, Permissions,
// DeepLinks) and append findings through AddFinding, which is the sole
// mutation point for the findings list and summary. Once handed to the
// presentation layer the report is read-only.
type Report struct {
	// Package is the manifest's package name.
	Package string `json:"package"`

	// DateScanned is the timestamp when the analysis was performed.
	DateScanned time.Time `json:"date_scanned"`

	// Components holds every classified component in declaration order.
	Components []Component `json:"components"`

	// Permissions holds every declared/used permission in declaration order.
	Permissions []PermissionUsage `json:"permissions"`

	// DeepLinks holds every extracted deep link in declaration order.
	DeepLinks []DeepLink `json:"deepLinks"` //nolint:tagliatelle // report contract uses camelCase

	// Findings holds all findings: component findings first, then permission
	// findings, then deep-link findings, stable within each group.
	Findings []Finding `json:"findings"`

	// Summary counts findings per severity tier, keyed by lower-case severity
	// text. Kept in sync by AddFinding.
	Summary map[string]int `json:"summary"`
}

// NewReport creates an empty report for the given package name.
func NewReport(pkg string) *Report {
	return &Report{
		Package:     pkg,
		DateScanned: time.Now(),
		Components:  make([]Component, 0),
		Permissions: make([]PermissionUsage, 0),
		DeepLinks:   make([]DeepLink, 0),
		Findings:    make([]Finding, 0),
		Summary:     make(map[string]int),
	}
}

// AddFinding appends a finding and updates the severity summary.
func (r *Report) AddFinding(f Finding) {
	r.Findings = append(r.Findings, f)
	r.Summary[strings.ToLower(f.Severity.String())]++
}

// TotalFindings returns the total number of findings.
func (r *Report) TotalFindings() int {
	return len(r.Findings)
}

// HasFindings returns true if there are any findings.
func (r *Report) HasFindings() bool {
	return len(r.Findings) > 0
}

// FindingsBySeverity returns findings filtered by severity.
func (r *Report) FindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range r.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}

// SeverityCount returns the summary count for one severity tier.
func (r *Report) SeverityCount(severity Severity) int {
	return r.Summary[strings.ToLower(severity.String())]
}
