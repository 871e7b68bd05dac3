package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Workflow is a node-graph document: node identifiers mapped to node
// records, in insertion order.
type Workflow struct {
	nodes *orderedmap.OrderedMap[string, Node]
}

// NewWorkflow creates an empty document.
func NewWorkflow() *Workflow {
	return &Workflow{nodes: orderedmap.New[string, Node]()}
}

// Len returns the number of nodes.
func (w *Workflow) Len() int {
	if w == nil || w.nodes == nil {
		return 0
	}
	return w.nodes.Len()
}

// Get returns the node stored under id.
func (w *Workflow) Get(id string) (Node, bool) {
	if w == nil || w.nodes == nil {
		return Node{}, false
	}
	return w.nodes.Get(id)
}

// Set stores node under id. A new id is appended; an existing id keeps
// its position.
func (w *Workflow) Set(id string, node Node) {
	if w.nodes == nil {
		w.nodes = orderedmap.New[string, Node]()
	}
	w.nodes.Set(id, node)
}

// IDs lists node identifiers in document order.
func (w *Workflow) IDs() []string {
	ids := make([]string, 0, w.Len())
	w.Each(func(id string, _ Node) {
		ids = append(ids, id)
	})
	return ids
}

// Each visits nodes in document order.
func (w *Workflow) Each(fn func(id string, node Node)) {
	if w == nil || w.nodes == nil {
		return
	}
	for pair := w.nodes.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON implements json.Marshaler.
func (w *Workflow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	w.Each(func(id string, node Node) {
		if err != nil {
			return
		}
		var key, val []byte
		if key, err = encodeJSON(id); err != nil {
			return
		}
		if val, err = node.MarshalJSON(); err != nil {
			err = fmt.Errorf("node %q: %w", id, err)
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. The top level must be an
// object whose values are node objects.
func (w *Workflow) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: workflow document is not an object", ErrMalformedInput)
	}
	if !json.Valid(trimmed) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformedInput)
	}

	nodes := orderedmap.New[string, Node]()
	if err := nodes.UnmarshalJSON(trimmed); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	w.nodes = nodes
	return nil
}

// ParseWorkflow decodes a document from JSON bytes.
func ParseWorkflow(data []byte) (*Workflow, error) {
	w := NewWorkflow()
	if err := w.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return w, nil
}
