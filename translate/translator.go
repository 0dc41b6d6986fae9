package translate

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360/flowplan/errors"
	"github.com/c360/flowplan/pipeline"
)

// UnsupportedTransformError reports a node with no override match and no
// native operator mapping. Translation is all-or-nothing: this error
// aborts the call with no partial plan.
type UnsupportedTransformError struct {
	NodeID string
	Kind   pipeline.Kind
}

// Error implements the error interface
func (e *UnsupportedTransformError) Error() string {
	return fmt.Sprintf("node '%s': %v: %s", e.NodeID, errors.ErrUnsupportedTransform, e.Kind)
}

// Unwrap returns the underlying sentinel
func (e *UnsupportedTransformError) Unwrap() error {
	return errors.ErrUnsupportedTransform
}

// kindOperators maps transform kinds with a mode-independent one-to-one
// native operator. Mode-dependent and expanding kinds are handled in
// translateNode.
var kindOperators = map[pipeline.Kind]OperatorKind{
	pipeline.KindImpulse:      OpImpulse,
	pipeline.KindNativeSource: OpNativeSequenceSource,
	pipeline.KindCreateValues: OpValueSource,
	pipeline.KindFileRead:     OpFileSource,
	pipeline.KindFileWatch:    OpFileWatchSource,
	pipeline.KindMapFn:        OpFlatMap,
	pipeline.KindFilterFn:     OpFilter,
	pipeline.KindGroupByKey:   OpKeyGroup,
	pipeline.KindCombine:      OpGroupedReduce,
	pipeline.KindFlatten:      OpUnion,
	pipeline.KindWindowInto:   OpWindowAssigner,
}

// Translator walks a rewritten pipeline graph and emits the engine-native
// execution plan. Translation is purely structural: it never inspects data
// and performs no engine-side I/O.
type Translator struct {
	logger *slog.Logger
}

// NewTranslator creates a new Translator
func NewTranslator(logger *slog.Logger) *Translator {
	return &Translator{logger: logger}
}

// nodeOperators tracks the operator boundary a node translated to: input
// streams attach to in, output streams originate at out.
type nodeOperators struct {
	in  *Operator
	out *Operator
}

// Translate maps every transform node onto engine-native operators in a
// single topological pass and carries each edge onto an operator stream.
func (t *Translator) Translate(g *pipeline.Graph, mode Mode, parallelism int) (*Plan, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, errors.Wrap(err, "Translator", "Translate", "topological ordering")
	}
	if parallelism < 1 {
		parallelism = 1
	}

	plan := &Plan{
		ID:   uuid.New().String(),
		Mode: mode,
	}
	byNode := make(map[string]nodeOperators, len(order))

	for _, nodeID := range order {
		node, _ := g.Node(nodeID)
		ops, err := t.translateNode(node, mode, parallelism)
		if err != nil {
			return nil, err
		}
		byNode[nodeID] = ops
		plan.Operators = append(plan.Operators, collect(ops)...)

		// An expanded node needs an internal stream between its operators,
		// inheriting the boundedness of the node's collection input
		if ops.in != ops.out {
			boundedness := pipeline.Bounded
			if len(node.Inputs) > 0 {
				if edge, ok := g.Edge(node.Inputs[0]); ok {
					boundedness = edge.Boundedness
				}
			}
			plan.Streams = append(plan.Streams, &Stream{
				ID:          uuid.New().String(),
				From:        ops.in.ID,
				To:          ops.out.ID,
				Boundedness: boundedness,
			})
		}
	}

	for _, edge := range g.Edges() {
		plan.Streams = append(plan.Streams, &Stream{
			ID:          edge.ID,
			From:        byNode[edge.Source].out.ID,
			To:          byNode[edge.Target].in.ID,
			Boundedness: edge.Boundedness,
			Windowing:   edge.Windowing,
		})
	}

	t.logger.Debug("Translated pipeline",
		"mode", mode,
		"operators", len(plan.Operators),
		"streams", len(plan.Streams))
	return plan, nil
}

// translateNode maps one node to its operator or fixed-size operator cluster
func (t *Translator) translateNode(node *pipeline.Node, mode Mode, parallelism int) (nodeOperators, error) {
	switch node.Kind {
	case pipeline.KindSequenceSource:
		kind := OpBoundedSequenceSource
		if mode == ModeStreaming {
			kind = OpStreamingSequenceSource
		}
		op := t.newOperator(node, kind, parallelism)
		return nodeOperators{in: op, out: op}, nil

	case pipeline.KindFileWrite:
		if node.ConfigBool("windowed") {
			// A windowed multi-file sink expands into a windowing operator
			// feeding a sharded write operator
			win := t.newOperator(node, OpWindowAssigner, parallelism)
			sink := t.newOperator(node, OpShardedFileSink, parallelism)
			return nodeOperators{in: win, out: sink}, nil
		}
		op := t.newOperator(node, OpFileSink, parallelism)
		return nodeOperators{in: op, out: op}, nil

	default:
		kind, ok := kindOperators[node.Kind]
		if !ok {
			return nodeOperators{}, &UnsupportedTransformError{NodeID: node.ID, Kind: node.Kind}
		}
		op := t.newOperator(node, kind, parallelism)
		return nodeOperators{in: op, out: op}, nil
	}
}

func (t *Translator) newOperator(node *pipeline.Node, kind OperatorKind, parallelism int) *Operator {
	return &Operator{
		ID:          uuid.New().String(),
		Name:        node.Name,
		Kind:        kind,
		NodeID:      node.ID,
		Parallelism: parallelism,
		Config:      node.Config,
	}
}

func collect(ops nodeOperators) []*Operator {
	if ops.in == ops.out {
		return []*Operator{ops.in}
	}
	return []*Operator{ops.in, ops.out}
}
