// Package main provides the entry point for the manscan CLI.
//
// manscan is a static security analyzer for Android manifest files.
// It classifies components, permissions, and deep links, and reports
// risky configurations.
//
// Usage:
//
//	manscan scan --manifest AndroidManifest.xml
//	manscan scan -m AndroidManifest.xml -f json
//
// See --help for all available options.
package main

// main is the entry point for manscan.
func main() {
	Execute()
}
