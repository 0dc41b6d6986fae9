// Package flowplan translates declarative pipeline graphs into execution
// plans for a distributed stream-processing engine.
//
// A pipeline is a directed acyclic graph of transforms (package pipeline),
// loaded from a JSON definition or built programmatically. Translation is
// orchestrated by the execution environment (package engine): it detects
// batch or streaming mode, rewrites abstract transforms into engine-native
// subgraphs through the override registry (package override), validates
// checkpointing configuration, resolves artifact staging against the
// configured master endpoint (package staging), and produces an engine
// ExecutionPlan (package translate). Execution options live in package
// config; classified errors in package errors.
//
// The cmd/flowplan binary wraps the same path behind a CLI: read a
// definition, translate it, and emit the plan as JSON.
package flowplan
