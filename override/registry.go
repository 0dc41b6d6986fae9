package override

import (
	"github.com/c360/flowplan/pipeline"
	"github.com/c360/flowplan/translate"
)

// Registry holds the fixed, ordered override lists for each execution
// mode. The lists are immutable after construction, so a single Registry
// is safe to share across concurrent translation calls.
type Registry struct {
	batch     []Override
	streaming []Override
}

// NewRegistry creates a registry with the default overrides for both modes
func NewRegistry() *Registry {
	return &Registry{
		batch: []Override{
			&sequenceSourceOverride{streaming: false},
			&createValuesOverride{},
		},
		streaming: []Override{
			&sequenceSourceOverride{streaming: true},
			&createValuesOverride{},
			&fileWatchOverride{},
		},
	}
}

// SelectFor returns the override list for the given execution mode,
// in application order.
func (r *Registry) SelectFor(mode translate.Mode) []Override {
	var list []Override
	if mode == translate.ModeStreaming {
		list = r.streaming
	} else {
		list = r.batch
	}
	result := make([]Override, len(list))
	copy(result, list)
	return result
}

// sequenceSourceOverride replaces the abstract sequence source with the
// engine's native sequence source implementation.
type sequenceSourceOverride struct {
	streaming bool
}

func (o *sequenceSourceOverride) Name() string {
	if o.streaming {
		return "streaming-sequence-source"
	}
	return "batch-sequence-source"
}

func (o *sequenceSourceOverride) Matches(node *pipeline.Node) bool {
	return node.Kind == pipeline.KindSequenceSource
}

func (o *sequenceSourceOverride) Replace(node *pipeline.Node) (*pipeline.Replacement, error) {
	config := make(map[string]any, len(node.Config)+1)
	for k, v := range node.Config {
		config[k] = v
	}
	config["streaming"] = o.streaming

	id := node.ID + "/native"
	return &pipeline.Replacement{
		Nodes: []*pipeline.Node{{
			ID:     id,
			Name:   node.Name,
			Kind:   pipeline.KindNativeSource,
			Config: config,
		}},
		InputNode:  id,
		OutputNode: id,
	}, nil
}

// createValuesOverride expands an in-memory value collection into an
// impulse followed by a decode function, the shape the engine executes
// natively.
type createValuesOverride struct{}

func (o *createValuesOverride) Name() string { return "create-values" }

func (o *createValuesOverride) Matches(node *pipeline.Node) bool {
	return node.Kind == pipeline.KindCreateValues
}

func (o *createValuesOverride) Replace(node *pipeline.Node) (*pipeline.Replacement, error) {
	impulseID := node.ID + "/impulse"
	decodeID := node.ID + "/decode"
	return &pipeline.Replacement{
		Nodes: []*pipeline.Node{
			{ID: impulseID, Name: node.Name + " (impulse)", Kind: pipeline.KindImpulse},
			{ID: decodeID, Name: node.Name + " (decode)", Kind: pipeline.KindMapFn, Config: node.Config},
		},
		InternalEdges: []*pipeline.Edge{{
			ID:     node.ID + "/impulse-out",
			Source: impulseID,
			Target: decodeID,
		}},
		InputNode:  impulseID,
		OutputNode: decodeID,
	}, nil
}

// fileWatchOverride turns a file read into a continuous file watch source.
// It is registered for streaming mode only, where a one-shot read has no
// meaningful semantics.
type fileWatchOverride struct{}

func (o *fileWatchOverride) Name() string { return "file-watch" }

func (o *fileWatchOverride) Matches(node *pipeline.Node) bool {
	return node.Kind == pipeline.KindFileRead
}

func (o *fileWatchOverride) Replace(node *pipeline.Node) (*pipeline.Replacement, error) {
	id := node.ID + "/watch"
	return &pipeline.Replacement{
		Nodes: []*pipeline.Node{{
			ID:     id,
			Name:   node.Name,
			Kind:   pipeline.KindFileWatch,
			Config: node.Config,
		}},
		InputNode:  id,
		OutputNode: id,
	}, nil
}
