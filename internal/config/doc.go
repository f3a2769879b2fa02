// Package config provides configuration structures and utilities for manscan.
// It defines the main options for manifest analysis, report format selection,
// and rule-file loading.
package config
