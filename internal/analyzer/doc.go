// Package analyzer implements the manifest analysis stages.
//
// Three stages run over the same immutable parsed manifest and string table:
//   - ComponentAnalyzer classifies activities, services, receivers, and
//     providers, resolving each one's effective exported state
//   - PermissionAnalyzer classifies declared permissions against a built-in
//     risk taxonomy
//   - DeepLinkAnalyzer assembles candidate URI schemes from browsable VIEW
//     intent filters
//
// Each stage implements pipeline.Step and writes to its own disjoint report
// fields, so the canonical registration order (components, permissions, deep
// links) fixes the ordering of the final findings list.
package analyzer
