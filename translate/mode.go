package translate

import (
	"log/slog"

	"github.com/c360/flowplan/config"
	"github.com/c360/flowplan/pipeline"
)

// Mode is the execution mode a plan is translated for
type Mode string

// Execution modes
const (
	ModeBatch     Mode = "batch"
	ModeStreaming Mode = "streaming"
)

// CheckpointWarning is the diagnostic emitted when unbounded sources run
// without checkpointing. External tooling matches on this exact text.
const CheckpointWarning = "UnboundedSources present which rely on checkpointing, but checkpointing is disabled."

// DetectMode infers the execution mode for a graph. An explicit setting is
// honored as-is; otherwise any unbounded collection edge switches the
// pipeline to streaming mode.
func DetectMode(g *pipeline.Graph, explicit *bool, logger *slog.Logger) Mode {
	if explicit != nil {
		if *explicit {
			return ModeStreaming
		}
		return ModeBatch
	}
	if g.HasUnbounded() {
		logger.Info("Found unbounded collection during translation; switching to streaming mode")
		return ModeStreaming
	}
	return ModeBatch
}

// ValidateCheckpointing warns when a streaming pipeline reads unbounded
// sources with checkpointing disabled. The warning never aborts
// translation; whether execution later fails is the engine's concern.
func ValidateCheckpointing(g *pipeline.Graph, mode Mode, checkpoint config.CheckpointConfig, logger *slog.Logger) {
	if mode != ModeStreaming {
		return
	}
	if !g.HasUnbounded() {
		return
	}
	if checkpoint.Enabled {
		return
	}
	logger.Warn(CheckpointWarning)
}
