// Package manifest loads AndroidManifest.xml and strings.xml documents into
// in-memory trees for analysis.
//
// The package provides two inputs to the analysis stages:
//   - Document: the parsed manifest tree, immutable once loaded
//   - StringTable: the @string/<name> resource table, empty when no strings
//     file is available
//
// Design decision: We parse with encoding/xml struct tags rather than a
// streaming token walk because manifests are small (kilobytes), the element
// vocabulary is fixed, and struct tags keep the element-to-type mapping
// declarative. Attribute tags match by local name, which transparently
// handles the android: namespace prefix.
package manifest
