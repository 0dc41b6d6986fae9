// Package translate turns a rewritten pipeline graph into an engine-native
// execution plan.
//
// DetectMode infers batch versus streaming execution from the graph's
// boundedness markers unless an explicit override is configured.
// ValidateCheckpointing emits the checkpointing-hazard diagnostic for
// streaming pipelines that read unbounded sources without checkpointing;
// the warning never aborts translation.
//
// Translator performs a single topological pass over the graph. Every node
// maps to exactly one operator, or to a small fixed cluster (a windowed
// multi-file sink expands into a windowing operator plus a sharded write
// operator). A node with no native mapping aborts translation with
// UnsupportedTransformError; no partial plan is ever returned.
package translate
