package planengine

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/flowplan/config"
	"github.com/c360/flowplan/errors"
	"github.com/c360/flowplan/override"
	"github.com/c360/flowplan/pipeline"
	"github.com/c360/flowplan/staging"
	"github.com/c360/flowplan/translate"
)

// Runner submits a translated plan to the external distributed engine and
// blocks until execution finishes or fails. Scheduling, shuffles and
// checkpointing all live behind this boundary.
type Runner interface {
	Run(ctx context.Context, plan *translate.Plan) error
}

// ExecutionEnvironment orchestrates translation: mode detection, override
// rewriting, checkpoint validation, staging resolution, and the final
// structural translation into an execution plan.
//
// The environment holds no cross-call mutable state beyond the options
// object it was constructed with, and the override registry is immutable,
// so concurrent Translate calls are safe as long as each call gets its own
// graph and options.
type ExecutionEnvironment struct {
	opts       *config.Options
	registry   *override.Registry
	stager     *staging.Stager
	translator *translate.Translator
	logger     *slog.Logger
	metrics    *planMetrics
}

// NewExecutionEnvironment creates an environment for the given options.
// A nil registry selects the default override registry; a nil stager
// builds one from the options' artifact directories, falling back to the
// executable's directory. The logger is the environment's diagnostic sink.
func NewExecutionEnvironment(
	opts *config.Options,
	registry *override.Registry,
	stager *staging.Stager,
	logger *slog.Logger,
	metricsRegistry prometheus.Registerer,
) *ExecutionEnvironment {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = override.NewRegistry()
	}
	if stager == nil {
		var lister staging.ArtifactLister = staging.ExecutableLister()
		if len(opts.ArtifactDirs) > 0 {
			lister = staging.NewDirLister(opts.ArtifactDirs...)
		}
		stager = staging.NewStager(lister, logger)
	}

	metrics, err := newPlanMetrics(metricsRegistry)
	if err != nil {
		logger.Error("Failed to initialize translation metrics", "error", err)
		metrics = nil // Continue without metrics
	}

	return &ExecutionEnvironment{
		opts:       opts,
		registry:   registry,
		stager:     stager,
		translator: translate.NewTranslator(logger),
		logger:     logger,
		metrics:    metrics,
	}
}

// Options returns the environment's options object. Translate mutates its
// StagingPaths field in place.
func (e *ExecutionEnvironment) Options() *config.Options {
	return e.opts
}

// Overrides returns the override list the environment resolves for a
// mode, so callers and tests can inspect what rewriting will apply
// without intercepting internal calls.
func (e *ExecutionEnvironment) Overrides(mode translate.Mode) []override.Override {
	return e.registry.SelectFor(mode)
}

// Translate converts a pipeline graph into a submittable execution plan.
// The call either returns a fully-formed plan or a fatal error; there is
// no partially-translated result and nothing is retried.
func (e *ExecutionEnvironment) Translate(g *pipeline.Graph) (*translate.Plan, error) {
	start := time.Now()
	mode := translate.ModeBatch
	success := false

	defer func() {
		e.metrics.recordTranslate(string(mode), success, time.Since(start).Seconds())
	}()

	if err := g.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "ExecutionEnvironment", "Translate", "graph validation")
	}

	// Mode is inferred from the unrewritten graph plus any explicit setting
	mode = translate.DetectMode(g, e.opts.Streaming, e.logger)

	overrides := e.registry.SelectFor(mode)
	rewritten, applied, err := override.Rewrite(g, overrides)
	if err != nil {
		return nil, errors.Wrap(err, "ExecutionEnvironment", "Translate", "override rewriting")
	}

	// Advisory only; a missing checkpoint config never fails the call
	translate.ValidateCheckpointing(rewritten, mode, e.opts.Checkpoint, e.logger)

	endpoint := staging.Classify(e.opts.MasterEndpoint)
	staged, err := e.stager.Resolve(endpoint, e.opts.StagingPaths)
	if err != nil {
		return nil, err
	}
	e.opts.StagingPaths = staged
	e.metrics.recordStagedArtifacts(len(staged))

	plan, err := e.translator.Translate(rewritten, mode, e.opts.Parallelism)
	if err != nil {
		return nil, err
	}
	plan.JobName = e.opts.JobName
	plan.AppliedOverrides = applied

	e.logger.Info("Pipeline translated",
		"plan_id", plan.ID,
		"mode", mode,
		"operators", len(plan.Operators),
		"overrides", len(applied))
	success = true
	return plan, nil
}

// Run translates the graph and submits the plan to the runner. Failures
// the engine raises during execution propagate unmodified; by then every
// queued diagnostic has already been written to the sink.
func (e *ExecutionEnvironment) Run(ctx context.Context, g *pipeline.Graph, runner Runner) (*translate.Plan, error) {
	plan, err := e.Translate(g)
	if err != nil {
		return nil, err
	}
	if err := runner.Run(ctx, plan); err != nil {
		return plan, err
	}
	return plan, nil
}
