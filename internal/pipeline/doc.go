// Package pipeline provides a framework for executing analysis steps in
// sequence.
//
// The pipeline pattern is used to process a manifest through the analysis
// stages: component classification, permission analysis, and deep-link
// extraction. Each stage is implemented as a Step that receives the report
// being built and writes to its own disjoint output fields, so the
// registration order fixes the ordering of the final findings list.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of stages without modifying core logic
// 2. It provides consistent error handling and logging across stages
// 3. It supports cancellation via context
// 4. The stages share only immutable inputs, so they could be parallelized
//    later without changing the Step contract
package pipeline
