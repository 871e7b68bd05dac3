package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Inputs maps input slot names to values, keeping document order.
type Inputs = orderedmap.OrderedMap[string, Value]

// NewInputs creates an empty ordered input mapping.
func NewInputs() *Inputs {
	return orderedmap.New[string, Value]()
}

// Node is a single record of a workflow document.
//
// Nodes decoded from JSON remember their exact source bytes, so a node that
// is carried over untouched is written back exactly as it was read,
// including fields this package does not model (e.g. "_meta").
type Node struct {
	ClassType string
	Inputs    *Inputs

	raw json.RawMessage
}

// NewNode creates a fresh node with an empty input mapping.
func NewNode(classType string) Node {
	return Node{ClassType: classType, Inputs: NewInputs()}
}

// Input returns the value of the named slot.
func (n Node) Input(name string) (Value, bool) {
	if n.Inputs == nil {
		return Value{}, false
	}
	return n.Inputs.Get(name)
}

// Set assigns an input slot and returns the node for chaining.
func (n Node) Set(name string, v Value) Node {
	if n.Inputs == nil {
		n.Inputs = NewInputs()
	}
	n.Inputs.Set(name, v)
	n.raw = nil
	return n
}

// InputNames lists slot names in document order.
func (n Node) InputNames() []string {
	if n.Inputs == nil {
		return nil
	}
	names := make([]string, 0, n.Inputs.Len())
	for pair := n.Inputs.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Links returns every Link held by the node, keyed by slot, in slot order.
func (n Node) Links() []SlotLink {
	if n.Inputs == nil {
		return nil
	}
	var out []SlotLink
	for pair := n.Inputs.Oldest(); pair != nil; pair = pair.Next() {
		if l, ok := pair.Value.Link(); ok {
			out = append(out, SlotLink{Slot: pair.Key, Link: l})
		}
	}
	return out
}

// SlotLink pairs an input slot with the Link it holds.
type SlotLink struct {
	Slot string
	Link Link
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.raw != nil {
		return n.raw, nil
	}

	var buf bytes.Buffer
	buf.WriteString(`{"class_type":`)
	ct, err := encodeJSON(n.ClassType)
	if err != nil {
		return nil, err
	}
	buf.Write(ct)
	buf.WriteString(`,"inputs":{`)
	if n.Inputs != nil {
		first := true
		for pair := n.Inputs.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false

			key, err := encodeJSON(pair.Key)
			if err != nil {
				return nil, err
			}
			val, err := pair.Value.MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("input %q: %w", pair.Key, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Only the exact keys
// "class_type" and "inputs" are read. A missing or non-string class_type
// decodes as "" and a non-object inputs field is ignored; only a record
// that is not a JSON object at all is rejected.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: node record is not an object", ErrMalformedInput)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	node := Node{raw: append(json.RawMessage(nil), trimmed...)}
	if ct, ok := fields["class_type"]; ok {
		var s string
		if json.Unmarshal(ct, &s) == nil {
			node.ClassType = s
		}
	}
	if in := bytes.TrimSpace(fields["inputs"]); len(in) > 0 && in[0] == '{' {
		inputs := NewInputs()
		if err := inputs.UnmarshalJSON(in); err != nil {
			return fmt.Errorf("%w: inputs: %v", ErrMalformedInput, err)
		}
		node.Inputs = inputs
	}

	*n = node
	return nil
}
