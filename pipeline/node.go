package pipeline

import "time"

// Kind identifies the processing logic of a transform node. It is a closed
// tag set: matching and translation dispatch on Kind values, never on the
// runtime type of user logic.
type Kind string

// Transform node kinds. The native-* and impulse kinds are normally produced
// by override rewriting rather than authored directly.
const (
	// Sources
	KindImpulse        Kind = "impulse"
	KindSequenceSource Kind = "sequence-source"
	KindCreateValues   Kind = "create-values"
	KindFileRead       Kind = "file-read"
	KindNativeSource   Kind = "native-source"
	KindFileWatch      Kind = "file-watch"

	// Element-wise and grouping transforms
	KindMapFn      Kind = "map-fn"
	KindFilterFn   Kind = "filter-fn"
	KindGroupByKey Kind = "group-by-key"
	KindCombine    Kind = "combine"
	KindFlatten    Kind = "flatten"
	KindWindowInto Kind = "window-into"

	// Sinks
	KindFileWrite Kind = "file-write"
)

// Node represents a unit of user-defined processing logic in the pipeline graph.
// Inputs and Outputs hold edge IDs and are maintained by the owning Graph.
type Node struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Kind   Kind           `json:"kind"`
	Config map[string]any `json:"config,omitempty"`

	Inputs  []string `json:"inputs,omitempty"`
	Outputs []string `json:"outputs,omitempty"`
}

// ConfigBool reads a boolean flag from the node's opaque config.
func (n *Node) ConfigBool(key string) bool {
	if n.Config == nil {
		return false
	}
	v, ok := n.Config[key].(bool)
	return ok && v
}

// Boundedness marks a collection edge as finite or infinite.
type Boundedness string

// Collection boundedness markers. Unbounded edges are the sole driver of
// streaming-mode inference.
const (
	Bounded   Boundedness = "bounded"
	Unbounded Boundedness = "unbounded"
)

// WindowKind identifies a windowing strategy family.
type WindowKind string

// Windowing strategy kinds.
const (
	WindowFixed   WindowKind = "fixed"
	WindowSliding WindowKind = "sliding"
	WindowSession WindowKind = "session"
)

// Windowing partitions an unbounded collection into finite chunks.
// Size applies to fixed and sliding windows, Slide to sliding windows,
// Gap to session windows.
type Windowing struct {
	Kind  WindowKind    `json:"kind"`
	Size  time.Duration `json:"size,omitempty"`
	Slide time.Duration `json:"slide,omitempty"`
	Gap   time.Duration `json:"gap,omitempty"`
}

// Edge represents a typed data channel between two transform nodes.
type Edge struct {
	ID          string      `json:"id"`
	Source      string      `json:"source"`
	Target      string      `json:"target"`
	Boundedness Boundedness `json:"boundedness"`
	Windowing   *Windowing  `json:"windowing,omitempty"`
}
