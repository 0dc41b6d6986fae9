// Package testutil provides shared helpers for FlowPlan tests: canned
// pipeline graphs and log capture.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/c360/flowplan/pipeline"
)

// CaptureLogger returns a logger writing to an in-memory buffer, so tests
// can assert on emitted diagnostics without touching process-wide streams.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// UnboundedSequencePipeline builds an unbounded sequence source feeding a
// map-to-string transform, a fixed one-hour window, and a sharded windowed
// write with one shard.
func UnboundedSequencePipeline(t *testing.T) *pipeline.Graph {
	t.Helper()
	g := pipeline.NewGraph()

	require.NoError(t, g.AddNode(&pipeline.Node{
		ID:   "generate",
		Name: "generate sequence",
		Kind: pipeline.KindSequenceSource,
		Config: map[string]any{
			"from": 0,
			"rate": "1/s",
		},
	}))
	require.NoError(t, g.AddNode(&pipeline.Node{
		ID:   "to-string",
		Name: "format elements",
		Kind: pipeline.KindMapFn,
	}))
	require.NoError(t, g.AddNode(&pipeline.Node{
		ID:   "window",
		Name: "hourly windows",
		Kind: pipeline.KindWindowInto,
	}))
	require.NoError(t, g.AddNode(&pipeline.Node{
		ID:   "write",
		Name: "windowed write",
		Kind: pipeline.KindFileWrite,
		Config: map[string]any{
			"path":     "/dummy/path",
			"windowed": true,
			"shards":   1,
		},
	}))

	require.NoError(t, g.AddEdge(&pipeline.Edge{
		ID: "seq-out", Source: "generate", Target: "to-string",
		Boundedness: pipeline.Unbounded,
	}))
	require.NoError(t, g.AddEdge(&pipeline.Edge{
		ID: "strings", Source: "to-string", Target: "window",
		Boundedness: pipeline.Unbounded,
	}))
	require.NoError(t, g.AddEdge(&pipeline.Edge{
		ID: "windowed", Source: "window", Target: "write",
		Boundedness: pipeline.Unbounded,
		Windowing:   &pipeline.Windowing{Kind: pipeline.WindowFixed, Size: time.Hour},
	}))

	return g
}

// BoundedPipeline builds a bounded file read feeding a map transform and a
// plain file write. None of its nodes match the batch overrides.
func BoundedPipeline(t *testing.T) *pipeline.Graph {
	t.Helper()
	g := pipeline.NewGraph()

	require.NoError(t, g.AddNode(&pipeline.Node{
		ID: "read", Name: "read input", Kind: pipeline.KindFileRead,
		Config: map[string]any{"path": "/data/in"},
	}))
	require.NoError(t, g.AddNode(&pipeline.Node{
		ID: "map", Name: "transform", Kind: pipeline.KindMapFn,
	}))
	require.NoError(t, g.AddNode(&pipeline.Node{
		ID: "write", Name: "write output", Kind: pipeline.KindFileWrite,
		Config: map[string]any{"path": "/data/out"},
	}))

	require.NoError(t, g.AddEdge(&pipeline.Edge{ID: "e1", Source: "read", Target: "map"}))
	require.NoError(t, g.AddEdge(&pipeline.Edge{ID: "e2", Source: "map", Target: "write"}))

	return g
}

// UnboundedSourcePipeline builds the minimal streaming graph: an unbounded
// sequence source feeding a single transform.
func UnboundedSourcePipeline(t *testing.T) *pipeline.Graph {
	t.Helper()
	g := pipeline.NewGraph()

	require.NoError(t, g.AddNode(&pipeline.Node{
		ID: "generate", Name: "generate sequence", Kind: pipeline.KindSequenceSource,
	}))
	require.NoError(t, g.AddNode(&pipeline.Node{
		ID: "consume", Name: "consume", Kind: pipeline.KindMapFn,
	}))
	require.NoError(t, g.AddEdge(&pipeline.Edge{
		ID: "seq-out", Source: "generate", Target: "consume",
		Boundedness: pipeline.Unbounded,
	}))

	return g
}
