package translate

import (
	"github.com/c360/flowplan/pipeline"
)

// OperatorKind identifies an engine-native operator
type OperatorKind string

// Engine-native operator kinds
const (
	// Sources
	OpImpulse                 OperatorKind = "impulse"
	OpBoundedSequenceSource   OperatorKind = "bounded-sequence-source"
	OpStreamingSequenceSource OperatorKind = "streaming-sequence-source"
	OpNativeSequenceSource    OperatorKind = "native-sequence-source"
	OpValueSource             OperatorKind = "value-source"
	OpFileSource              OperatorKind = "file-source"
	OpFileWatchSource         OperatorKind = "file-watch-source"

	// Transforms
	OpFlatMap        OperatorKind = "flat-map"
	OpFilter         OperatorKind = "filter"
	OpKeyGroup       OperatorKind = "key-group"
	OpGroupedReduce  OperatorKind = "grouped-reduce"
	OpUnion          OperatorKind = "union"
	OpWindowAssigner OperatorKind = "window-assigner"

	// Sinks
	OpFileSink        OperatorKind = "file-sink"
	OpShardedFileSink OperatorKind = "sharded-file-sink"
)

// Operator is a single engine-native operator in an execution plan.
// NodeID names the transform node it was translated from; a node that
// expands into an operator cluster yields several operators sharing one
// NodeID.
type Operator struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Kind        OperatorKind   `json:"kind"`
	NodeID      string         `json:"node_id"`
	Parallelism int            `json:"parallelism"`
	Config      map[string]any `json:"config,omitempty"`
}

// Stream is a data channel between two operators. Streams translated from
// collection edges keep the edge's ID; the boundedness marker and any
// windowing strategy are carried over unchanged.
type Stream struct {
	ID          string               `json:"id"`
	From        string               `json:"from"`
	To          string               `json:"to"`
	Boundedness pipeline.Boundedness `json:"boundedness"`
	Windowing   *pipeline.Windowing  `json:"windowing,omitempty"`
}

// Plan is the engine-native operator graph produced by translation,
// ready for submission.
type Plan struct {
	ID               string      `json:"id"`
	JobName          string      `json:"job_name,omitempty"`
	Mode             Mode        `json:"mode"`
	Operators        []*Operator `json:"operators"`
	Streams          []*Stream   `json:"streams"`
	AppliedOverrides []string    `json:"applied_overrides,omitempty"`
}

// OperatorsForNode returns the operators translated from the given
// transform node, in plan order.
func (p *Plan) OperatorsForNode(nodeID string) []*Operator {
	var result []*Operator
	for _, op := range p.Operators {
		if op.NodeID == nodeID {
			result = append(result, op)
		}
	}
	return result
}
