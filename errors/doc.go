// Package errors provides standardized error handling patterns for FlowPlan.
//
// # Overview
//
// The errors package implements a three-class error classification system for
// the pipeline translation environment: Transient (temporary, retryable),
// Invalid (bad input, non-retryable), and Fatal (unrecoverable, abort the
// translation call).
//
// Translation itself is deterministic and pure, so nothing inside FlowPlan
// retries: a fatal or invalid error terminates the call immediately and the
// caller sees either a fully-formed execution plan or the error, never a
// partially-translated result. The classification still matters to callers
// that embed FlowPlan behind services, because it tells them which failures
// are worth retrying with different inputs.
//
// # Error Classification
//
//   - Transient: environmental failures outside the translation core
//   - Invalid: malformed graphs, validation failures, bad configuration
//   - Fatal: unsupported transforms, staging resolution failures
//
// The classification integrates with Go's standard error handling patterns,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Return standard error variables for known conditions:
//
//	if _, ok := kindTranslators[node.Kind]; !ok {
//	    return errors.ErrUnsupportedTransform
//	}
//
// Wrap errors with component context:
//
//	if err := graph.Validate(); err != nil {
//	    return errors.WrapInvalid(err, "ExecutionEnvironment", "Translate", "graph validation")
//	}
//
// Check classification at the call site:
//
//	if errors.IsFatal(err) {
//	    // abort, nothing was produced
//	}
package errors
