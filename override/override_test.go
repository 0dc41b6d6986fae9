package override

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/flowplan/pipeline"
	"github.com/c360/flowplan/testutil"
	"github.com/c360/flowplan/translate"
)

func TestRegistrySelectFor(t *testing.T) {
	registry := NewRegistry()

	t.Run("both modes return non-empty lists", func(t *testing.T) {
		batch := registry.SelectFor(translate.ModeBatch)
		streaming := registry.SelectFor(translate.ModeStreaming)

		assert.NotEmpty(t, batch)
		assert.NotEmpty(t, streaming)
	})

	t.Run("list sizes are fixed per mode", func(t *testing.T) {
		assert.Len(t, registry.SelectFor(translate.ModeBatch), 2)
		assert.Len(t, registry.SelectFor(translate.ModeStreaming), 3)
	})

	t.Run("returned list is a copy", func(t *testing.T) {
		list := registry.SelectFor(translate.ModeBatch)
		list[0] = nil
		assert.NotNil(t, registry.SelectFor(translate.ModeBatch)[0])
	})
}

func TestRewrite(t *testing.T) {
	t.Run("sequence source replaced with native source", func(t *testing.T) {
		g := testutil.UnboundedSourcePipeline(t)
		registry := NewRegistry()

		rewritten, applied, err := Rewrite(g, registry.SelectFor(translate.ModeStreaming))
		require.NoError(t, err)

		assert.Equal(t, []string{"streaming-sequence-source"}, applied)
		_, exists := rewritten.Node("generate")
		assert.False(t, exists)

		native, ok := rewritten.Node("generate/native")
		require.True(t, ok)
		assert.Equal(t, pipeline.KindNativeSource, native.Kind)
		assert.Equal(t, true, native.Config["streaming"])

		// Boundary edge identity preserved
		edge, ok := rewritten.Edge("seq-out")
		require.True(t, ok)
		assert.Equal(t, "generate/native", edge.Source)
		assert.Equal(t, "consume", edge.Target)
	})

	t.Run("input graph is not modified", func(t *testing.T) {
		g := testutil.UnboundedSourcePipeline(t)
		registry := NewRegistry()

		_, _, err := Rewrite(g, registry.SelectFor(translate.ModeStreaming))
		require.NoError(t, err)

		node, ok := g.Node("generate")
		require.True(t, ok)
		assert.Equal(t, pipeline.KindSequenceSource, node.Kind)
	})

	t.Run("create-values expands into impulse and decode", func(t *testing.T) {
		g := pipeline.NewGraph()
		require.NoError(t, g.AddNode(&pipeline.Node{ID: "vals", Name: "vals", Kind: pipeline.KindCreateValues}))
		require.NoError(t, g.AddNode(&pipeline.Node{ID: "sink", Name: "sink", Kind: pipeline.KindFileWrite}))
		require.NoError(t, g.AddEdge(&pipeline.Edge{ID: "e1", Source: "vals", Target: "sink"}))

		registry := NewRegistry()
		rewritten, applied, err := Rewrite(g, registry.SelectFor(translate.ModeBatch))
		require.NoError(t, err)

		assert.Equal(t, []string{"create-values"}, applied)
		order, err := rewritten.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"vals/impulse", "vals/decode", "sink"}, order)
		assert.NoError(t, rewritten.Validate())
	})

	t.Run("no match passes node through unchanged", func(t *testing.T) {
		g := testutil.BoundedPipeline(t)
		registry := NewRegistry()

		rewritten, applied, err := Rewrite(g, registry.SelectFor(translate.ModeBatch))
		require.NoError(t, err)

		assert.Empty(t, applied)
		assert.Len(t, rewritten.Nodes(), len(g.Nodes()))
	})

	t.Run("first match wins", func(t *testing.T) {
		g := testutil.UnboundedSourcePipeline(t)
		first := &countingOverride{name: "first", kind: pipeline.KindSequenceSource, replKind: pipeline.KindNativeSource}
		second := &countingOverride{name: "second", kind: pipeline.KindSequenceSource, replKind: pipeline.KindNativeSource}

		_, applied, err := Rewrite(g, []Override{first, second})
		require.NoError(t, err)

		assert.Equal(t, []string{"first"}, applied)
		assert.Equal(t, 1, first.replacements)
		assert.Equal(t, 0, second.replacements)
	})

	t.Run("replacement output never re-scanned", func(t *testing.T) {
		g := testutil.UnboundedSourcePipeline(t)

		// The replacement node would match the override again if the
		// engine re-evaluated replacement output
		self := &countingOverride{
			name:     "self-matching",
			kind:     pipeline.KindSequenceSource,
			replKind: pipeline.KindSequenceSource,
		}

		rewritten, applied, err := Rewrite(g, []Override{self})
		require.NoError(t, err)

		assert.Equal(t, []string{"self-matching"}, applied)
		assert.Equal(t, 1, self.replacements)

		node, ok := rewritten.Node("generate/r1")
		require.True(t, ok)
		assert.Equal(t, pipeline.KindSequenceSource, node.Kind)
	})
}

// countingOverride replaces nodes of a fixed kind and counts applications
type countingOverride struct {
	name         string
	kind         pipeline.Kind
	replKind     pipeline.Kind
	replacements int
}

func (o *countingOverride) Name() string { return o.name }

func (o *countingOverride) Matches(node *pipeline.Node) bool {
	return node.Kind == o.kind
}

func (o *countingOverride) Replace(node *pipeline.Node) (*pipeline.Replacement, error) {
	o.replacements++
	id := node.ID + "/r1"
	return &pipeline.Replacement{
		Nodes:      []*pipeline.Node{{ID: id, Name: node.Name, Kind: o.replKind}},
		InputNode:  id,
		OutputNode: id,
	}, nil
}
