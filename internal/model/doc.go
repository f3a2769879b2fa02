// Package model defines the core data structures used throughout manscan.
//
// This package contains the following main types:
//   - Component: An activity, service, receiver, or provider declared in the manifest
//   - PermissionUsage: A declared permission with its protection level
//   - DeepLink: A URI scheme/host/path combination reachable from outside the app
//   - Report: The aggregated analysis result handed to the presentation layer
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (analyzer, report, database) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
