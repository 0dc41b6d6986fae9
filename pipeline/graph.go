// Package pipeline provides the transform graph model consumed by the
// translation environment: nodes, collection edges, structural validation,
// and the substitution primitive used by override rewriting.
package pipeline

import (
	"fmt"

	"github.com/c360/flowplan/errors"
)

// Graph is a directed acyclic graph of transform nodes connected by
// collection edges. Node and edge iteration order is insertion order,
// which keeps traversal and translation deterministic.
type Graph struct {
	nodes     map[string]*Node
	edges     map[string]*Edge
	nodeOrder []string
	edgeOrder []string
}

// NewGraph creates a new empty Graph
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[string]*Edge),
	}
}

// AddNode adds a transform node to the graph
func (g *Graph) AddNode(n *Node) error {
	if n == nil || n.ID == "" {
		return errors.WrapInvalid(fmt.Errorf("node ID cannot be empty"), "Graph", "AddNode", "node validation")
	}
	if n.Kind == "" {
		return errors.WrapInvalid(
			fmt.Errorf("node '%s' has empty kind", n.ID), "Graph", "AddNode", "node kind validation")
	}
	if _, exists := g.nodes[n.ID]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrDuplicateNode, n.ID), "Graph", "AddNode", "duplicate node check")
	}

	g.nodes[n.ID] = n
	g.nodeOrder = append(g.nodeOrder, n.ID)
	return nil
}

// AddEdge adds a collection edge between two existing nodes. Boundedness
// defaults to bounded when unset.
func (g *Graph) AddEdge(e *Edge) error {
	if e == nil || e.ID == "" {
		return errors.WrapInvalid(fmt.Errorf("edge ID cannot be empty"), "Graph", "AddEdge", "edge validation")
	}
	if _, exists := g.edges[e.ID]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrDuplicateEdge, e.ID), "Graph", "AddEdge", "duplicate edge check")
	}
	source, ok := g.nodes[e.Source]
	if !ok {
		return errors.WrapInvalid(
			fmt.Errorf("edge '%s' references non-existent source node: %s", e.ID, e.Source),
			"Graph", "AddEdge", "source node validation")
	}
	target, ok := g.nodes[e.Target]
	if !ok {
		return errors.WrapInvalid(
			fmt.Errorf("edge '%s' references non-existent target node: %s", e.ID, e.Target),
			"Graph", "AddEdge", "target node validation")
	}
	if e.Boundedness == "" {
		e.Boundedness = Bounded
	}

	g.edges[e.ID] = e
	g.edgeOrder = append(g.edgeOrder, e.ID)
	source.Outputs = append(source.Outputs, e.ID)
	target.Inputs = append(target.Inputs, e.ID)
	return nil
}

// Node returns the node with the given ID
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge with the given ID
func (g *Graph) Edge(id string) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		result = append(result, g.nodes[id])
	}
	return result
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []*Edge {
	result := make([]*Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		result = append(result, g.edges[id])
	}
	return result
}

// Roots returns the IDs of nodes with no input edges, in insertion order
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.nodeOrder {
		if len(g.nodes[id].Inputs) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// HasUnbounded reports whether any edge carries the unbounded marker
func (g *Graph) HasUnbounded() bool {
	for _, id := range g.edgeOrder {
		if g.edges[id].Boundedness == Unbounded {
			return true
		}
	}
	return false
}

// TopologicalOrder returns node IDs in topological order. The walk is
// iterative with an explicit work list, never recursive, so large graphs
// cannot exhaust the stack. Returns ErrCycle if the graph is cyclic.
func (g *Graph) TopologicalOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for _, id := range g.nodeOrder {
		indegree[id] = len(g.nodes[id].Inputs)
	}

	queue := make([]string, 0, len(g.nodes))
	for _, id := range g.nodeOrder {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, edgeID := range g.nodes[id].Outputs {
			target := g.edges[edgeID].Target
			indegree[target]--
			if indegree[target] == 0 {
				queue = append(queue, target)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, errors.WrapInvalid(errors.ErrCycle, "Graph", "TopologicalOrder", "cycle detection")
	}
	return order, nil
}

// Validate checks the graph invariants: acyclicity and reachability of
// every node from at least one root. Edge endpoint existence is enforced
// at AddEdge time.
func (g *Graph) Validate() error {
	if _, err := g.TopologicalOrder(); err != nil {
		return err
	}

	// BFS from roots; acyclic graphs reach every node from the root set
	visited := make(map[string]bool, len(g.nodes))
	queue := g.Roots()
	for _, id := range queue {
		visited[id] = true
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, edgeID := range g.nodes[id].Outputs {
			target := g.edges[edgeID].Target
			if !visited[target] {
				visited[target] = true
				queue = append(queue, target)
			}
		}
	}
	for _, id := range g.nodeOrder {
		if !visited[id] {
			return errors.WrapInvalid(
				fmt.Errorf("%w: %s", errors.ErrUnreachableNode, id), "Graph", "Validate", "reachability check")
		}
	}
	return nil
}

// Clone returns a deep copy of the graph. Rewriting operates on clones so
// the caller's model stays untouched.
func (g *Graph) Clone() *Graph {
	clone := NewGraph()
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		nodeCopy := &Node{
			ID:      n.ID,
			Name:    n.Name,
			Kind:    n.Kind,
			Inputs:  append([]string(nil), n.Inputs...),
			Outputs: append([]string(nil), n.Outputs...),
		}
		if n.Config != nil {
			nodeCopy.Config = make(map[string]any, len(n.Config))
			for k, v := range n.Config {
				nodeCopy.Config[k] = v
			}
		}
		clone.nodes[n.ID] = nodeCopy
		clone.nodeOrder = append(clone.nodeOrder, n.ID)
	}
	for _, id := range g.edgeOrder {
		e := g.edges[id]
		edgeCopy := &Edge{
			ID:          e.ID,
			Source:      e.Source,
			Target:      e.Target,
			Boundedness: e.Boundedness,
		}
		if e.Windowing != nil {
			w := *e.Windowing
			edgeCopy.Windowing = &w
		}
		clone.edges[e.ID] = edgeCopy
		clone.edgeOrder = append(clone.edgeOrder, e.ID)
	}
	return clone
}

// Replacement describes the subgraph an override substitutes for a matched
// node. InputNode takes over the matched node's input edges and OutputNode
// its output edges; boundary edges keep their identity so consumers outside
// the replacement see no change.
type Replacement struct {
	Nodes         []*Node
	InternalEdges []*Edge
	InputNode     string
	OutputNode    string
}

// ReplaceNode substitutes a replacement subgraph for the node with the
// given ID, rewiring the node's boundary edges onto the replacement's
// anchor nodes.
func (g *Graph) ReplaceNode(id string, repl *Replacement) error {
	old, ok := g.nodes[id]
	if !ok {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrUnknownNode, id), "Graph", "ReplaceNode", "node lookup")
	}
	if repl == nil || len(repl.Nodes) == 0 {
		return errors.WrapInvalid(errors.ErrEmptyReplacement, "Graph", "ReplaceNode", "replacement validation")
	}

	replNodes := make(map[string]*Node, len(repl.Nodes))
	for _, n := range repl.Nodes {
		if n.ID == id {
			return errors.WrapInvalid(
				fmt.Errorf("replacement node reuses replaced ID '%s'", id),
				"Graph", "ReplaceNode", "replacement ID validation")
		}
		if _, exists := g.nodes[n.ID]; exists {
			return errors.WrapInvalid(
				fmt.Errorf("%w: replacement node %s", errors.ErrDuplicateNode, n.ID),
				"Graph", "ReplaceNode", "replacement ID validation")
		}
		replNodes[n.ID] = n
	}
	if len(old.Inputs) > 0 && replNodes[repl.InputNode] == nil {
		return errors.WrapInvalid(
			fmt.Errorf("replacement input anchor '%s' not among replacement nodes", repl.InputNode),
			"Graph", "ReplaceNode", "input anchor validation")
	}
	if len(old.Outputs) > 0 && replNodes[repl.OutputNode] == nil {
		return errors.WrapInvalid(
			fmt.Errorf("replacement output anchor '%s' not among replacement nodes", repl.OutputNode),
			"Graph", "ReplaceNode", "output anchor validation")
	}

	// Splice replacement nodes into the order at the replaced position
	pos := 0
	for i, nodeID := range g.nodeOrder {
		if nodeID == id {
			pos = i
			break
		}
	}
	replIDs := make([]string, 0, len(repl.Nodes))
	for _, n := range repl.Nodes {
		g.nodes[n.ID] = n
		replIDs = append(replIDs, n.ID)
	}
	g.nodeOrder = append(g.nodeOrder[:pos], append(replIDs, g.nodeOrder[pos+1:]...)...)
	delete(g.nodes, id)

	// Rewire boundary edges; edge identity is preserved
	for _, edgeID := range old.Inputs {
		e := g.edges[edgeID]
		e.Target = repl.InputNode
		anchor := g.nodes[repl.InputNode]
		anchor.Inputs = append(anchor.Inputs, edgeID)
	}
	for _, edgeID := range old.Outputs {
		e := g.edges[edgeID]
		e.Source = repl.OutputNode
		anchor := g.nodes[repl.OutputNode]
		anchor.Outputs = append(anchor.Outputs, edgeID)
	}

	for _, e := range repl.InternalEdges {
		if err := g.AddEdge(e); err != nil {
			return errors.Wrap(err, "Graph", "ReplaceNode", "internal edge wiring")
		}
	}
	return nil
}
