// Package override provides the transform override registry and the
// single-pass rewrite engine that substitutes engine-native subgraphs for
// abstract pipeline primitives before translation.
package override

import (
	"github.com/c360/flowplan/errors"
	"github.com/c360/flowplan/pipeline"
)

// Override is a rewrite rule. Matches is a capability predicate over the
// closed node Kind set; Replace builds the substitute subgraph for a
// matched node.
type Override interface {
	Name() string
	Matches(node *pipeline.Node) bool
	Replace(node *pipeline.Node) (*pipeline.Replacement, error)
}

// Rewrite applies overrides to a copy of the graph in a single topological
// pass. Overrides are tested in list order and the first match wins. The
// node order is snapshotted before any substitution, so replacement output
// is never re-evaluated against the registry and rewrite loops are
// impossible. Nodes with no match pass through unchanged; whether they are
// translatable is decided later by the Translator.
//
// Returns the rewritten graph and the names of the overrides applied, in
// application order. The input graph is not modified.
func Rewrite(g *pipeline.Graph, overrides []Override) (*pipeline.Graph, []string, error) {
	rewritten := g.Clone()

	order, err := rewritten.TopologicalOrder()
	if err != nil {
		return nil, nil, errors.Wrap(err, "Rewrite", "Rewrite", "topological ordering")
	}

	var applied []string
	for _, nodeID := range order {
		node, ok := rewritten.Node(nodeID)
		if !ok {
			continue
		}
		for _, o := range overrides {
			if !o.Matches(node) {
				continue
			}
			repl, err := o.Replace(node)
			if err != nil {
				return nil, nil, errors.Wrap(err, "Rewrite", "Rewrite", "replacement construction")
			}
			if err := rewritten.ReplaceNode(nodeID, repl); err != nil {
				return nil, nil, errors.Wrap(err, "Rewrite", "Rewrite", "subgraph substitution")
			}
			applied = append(applied, o.Name())
			break
		}
	}
	return rewritten, applied, nil
}
