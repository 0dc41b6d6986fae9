package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/c360/flowplan/errors"
)

func TestGraphConstruction(t *testing.T) {
	t.Run("create empty graph", func(t *testing.T) {
		g := NewGraph()

		assert.NotNil(t, g)
		assert.Empty(t, g.Nodes())
		assert.Empty(t, g.Edges())
	})

	t.Run("add node", func(t *testing.T) {
		g := NewGraph()

		err := g.AddNode(&Node{ID: "src", Name: "source", Kind: KindSequenceSource})
		require.NoError(t, err)

		nodes := g.Nodes()
		require.Len(t, nodes, 1)
		assert.Equal(t, "src", nodes[0].ID)

		node, ok := g.Node("src")
		require.True(t, ok)
		assert.Equal(t, KindSequenceSource, node.Kind)
	})

	t.Run("add duplicate node returns error", func(t *testing.T) {
		g := NewGraph()

		require.NoError(t, g.AddNode(&Node{ID: "src", Kind: KindSequenceSource}))
		err := g.AddNode(&Node{ID: "src", Kind: KindMapFn})
		assert.ErrorIs(t, err, pkgerrors.ErrDuplicateNode)
	})

	t.Run("add node without kind returns error", func(t *testing.T) {
		g := NewGraph()

		err := g.AddNode(&Node{ID: "src"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty kind")
	})

	t.Run("edge endpoints must exist", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddNode(&Node{ID: "src", Kind: KindSequenceSource}))

		err := g.AddEdge(&Edge{ID: "e1", Source: "src", Target: "missing"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "non-existent target node")
	})

	t.Run("edge wiring updates node references", func(t *testing.T) {
		g := linearGraph(t)

		src, _ := g.Node("src")
		mapper, _ := g.Node("map")
		assert.Equal(t, []string{"e1"}, src.Outputs)
		assert.Equal(t, []string{"e1"}, mapper.Inputs)
	})

	t.Run("boundedness defaults to bounded", func(t *testing.T) {
		g := linearGraph(t)

		edge, ok := g.Edge("e1")
		require.True(t, ok)
		assert.Equal(t, Bounded, edge.Boundedness)
	})
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("linear graph", func(t *testing.T) {
		g := linearGraph(t)

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"src", "map", "sink"}, order)
	})

	t.Run("diamond graph keeps sources before joins", func(t *testing.T) {
		g := NewGraph()
		for _, id := range []string{"src", "left", "right", "join"} {
			require.NoError(t, g.AddNode(&Node{ID: id, Kind: KindMapFn}))
		}
		require.NoError(t, g.AddEdge(&Edge{ID: "e1", Source: "src", Target: "left"}))
		require.NoError(t, g.AddEdge(&Edge{ID: "e2", Source: "src", Target: "right"}))
		require.NoError(t, g.AddEdge(&Edge{ID: "e3", Source: "left", Target: "join"}))
		require.NoError(t, g.AddEdge(&Edge{ID: "e4", Source: "right", Target: "join"}))

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"src", "left", "right", "join"}, order)
	})

	t.Run("cycle detected", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddNode(&Node{ID: "a", Kind: KindMapFn}))
		require.NoError(t, g.AddNode(&Node{ID: "b", Kind: KindMapFn}))
		require.NoError(t, g.AddEdge(&Edge{ID: "e1", Source: "a", Target: "b"}))
		require.NoError(t, g.AddEdge(&Edge{ID: "e2", Source: "b", Target: "a"}))

		_, err := g.TopologicalOrder()
		assert.ErrorIs(t, err, pkgerrors.ErrCycle)
		assert.ErrorIs(t, g.Validate(), pkgerrors.ErrCycle)
	})
}

func TestHasUnbounded(t *testing.T) {
	g := linearGraph(t)
	assert.False(t, g.HasUnbounded())

	edge, _ := g.Edge("e1")
	edge.Boundedness = Unbounded
	assert.True(t, g.HasUnbounded())
}

func TestClone(t *testing.T) {
	g := linearGraph(t)
	edge, _ := g.Edge("e1")
	edge.Windowing = &Windowing{Kind: WindowFixed, Size: time.Hour}

	clone := g.Clone()

	// Mutating the clone must not leak into the original
	cloneEdge, _ := clone.Edge("e1")
	cloneEdge.Boundedness = Unbounded
	cloneEdge.Windowing.Size = time.Minute
	cloneNode, _ := clone.Node("src")
	cloneNode.Name = "renamed"

	origEdge, _ := g.Edge("e1")
	assert.Equal(t, Bounded, origEdge.Boundedness)
	assert.Equal(t, time.Hour, origEdge.Windowing.Size)
	origNode, _ := g.Node("src")
	assert.Equal(t, "src", origNode.Name)
}

func TestReplaceNode(t *testing.T) {
	t.Run("single node replacement preserves boundary edges", func(t *testing.T) {
		g := linearGraph(t)

		repl := &Replacement{
			Nodes:      []*Node{{ID: "native", Name: "native map", Kind: KindMapFn}},
			InputNode:  "native",
			OutputNode: "native",
		}
		require.NoError(t, g.ReplaceNode("map", repl))

		_, exists := g.Node("map")
		assert.False(t, exists)

		in, _ := g.Edge("e1")
		out, _ := g.Edge("e2")
		assert.Equal(t, "native", in.Target)
		assert.Equal(t, "native", out.Source)
		assert.NoError(t, g.Validate())
	})

	t.Run("multi node replacement wires internal edges", func(t *testing.T) {
		g := linearGraph(t)

		repl := &Replacement{
			Nodes: []*Node{
				{ID: "imp", Kind: KindImpulse},
				{ID: "decode", Kind: KindMapFn},
			},
			InternalEdges: []*Edge{{ID: "imp-decode", Source: "imp", Target: "decode"}},
			InputNode:     "imp",
			OutputNode:    "decode",
		}
		require.NoError(t, g.ReplaceNode("map", repl))

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"src", "imp", "decode", "sink"}, order)
	})

	t.Run("empty replacement rejected", func(t *testing.T) {
		g := linearGraph(t)
		err := g.ReplaceNode("map", &Replacement{})
		assert.ErrorIs(t, err, pkgerrors.ErrEmptyReplacement)
	})

	t.Run("unknown node rejected", func(t *testing.T) {
		g := linearGraph(t)
		err := g.ReplaceNode("ghost", &Replacement{Nodes: []*Node{{ID: "x", Kind: KindMapFn}}})
		assert.ErrorIs(t, err, pkgerrors.ErrUnknownNode)
	})

	t.Run("colliding replacement ID rejected", func(t *testing.T) {
		g := linearGraph(t)
		err := g.ReplaceNode("map", &Replacement{
			Nodes:      []*Node{{ID: "src", Kind: KindMapFn}},
			InputNode:  "src",
			OutputNode: "src",
		})
		assert.ErrorIs(t, err, pkgerrors.ErrDuplicateNode)
	})
}

// linearGraph builds src -> map -> sink
func linearGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	require.NoError(t, g.AddNode(&Node{ID: "src", Name: "src", Kind: KindSequenceSource}))
	require.NoError(t, g.AddNode(&Node{ID: "map", Name: "map", Kind: KindMapFn}))
	require.NoError(t, g.AddNode(&Node{ID: "sink", Name: "sink", Kind: KindFileWrite}))
	require.NoError(t, g.AddEdge(&Edge{ID: "e1", Source: "src", Target: "map"}))
	require.NoError(t, g.AddEdge(&Edge{ID: "e2", Source: "map", Target: "sink"}))
	return g
}
