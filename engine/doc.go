// Package planengine hosts the execution environment that turns a
// pipeline graph into a submittable execution plan.
//
// A Translate call runs a fixed sequence: graph validation, execution
// mode detection from the unrewritten graph, mode-specific override
// rewriting, advisory checkpoint validation, staging resolution against
// the configured master endpoint (which mutates the options'
// StagingPaths in place), and finally the structural translation pass.
// Any fatal error from a step propagates unmodified and nothing partial
// is returned.
//
// Run hands the plan to a Runner, the boundary behind which the external
// distributed engine lives. Execution failures the runner raises pass
// through untouched; diagnostics emitted during translation (such as the
// checkpointing hazard) have already reached the sink by then.
package planengine
