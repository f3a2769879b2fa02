// Package report provides output writers for manifest analysis reports.
// It supports human-readable text with optional ANSI colors, JSON for
// tool integration, and Markdown for documentation and sharing.
//
// All writers implement the Writer interface, and MultiWriter combines
// several destinations (for example terminal plus file) behind the same
// API.
package report
