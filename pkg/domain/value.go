package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Link is a directed reference to a numbered output of another node.
// On the wire it is the 2-element array [node_id, output_index].
type Link struct {
	NodeID string
	Output int
}

// Value is the content of a node input slot: either a Link or a literal
// JSON value (string, number, boolean, or any other JSON shape).
type Value struct {
	link    *Link
	literal any
}

// Literal wraps a plain JSON value.
func Literal(v any) Value {
	return Value{literal: v}
}

// LinkTo builds a Value pointing at output slot of node id.
func LinkTo(id string, output int) Value {
	return Value{link: &Link{NodeID: id, Output: output}}
}

// Link returns the link target when the value is a Link.
func (v Value) Link() (Link, bool) {
	if v.link == nil {
		return Link{}, false
	}
	return *v.link, true
}

// IsLink reports whether the value is a Link.
func (v Value) IsLink() bool { return v.link != nil }

// Literal returns the literal payload, or nil for links.
func (v Value) Literal() any {
	if v.link != nil {
		return nil
	}
	return v.literal
}

// Text returns the literal as a string when it is one.
func (v Value) Text() (string, bool) {
	s, ok := v.Literal().(string)
	return s, ok
}

// Truthy mirrors JSON truthiness: null, false, "", 0, empty arrays and
// objects are falsy. Links are always truthy.
func (v Value) Truthy() bool {
	if v.link != nil {
		return true
	}
	switch t := v.literal.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.link != nil {
		return encodeJSON([]any{v.link.NodeID, v.link.Output})
	}
	return encodeJSON(v.literal)
}

// UnmarshalJSON implements json.Unmarshaler. Only a [string, integer] pair
// is read as a Link; every other shape stays a literal.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode input value: %w", err)
	}

	*v = Value{literal: raw}
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return nil
	}
	id, ok := pair[0].(string)
	if !ok {
		return nil
	}
	num, ok := pair[1].(json.Number)
	if !ok {
		return nil
	}
	idx, err := num.Int64()
	if err != nil {
		return nil
	}
	*v = LinkTo(id, int(idx))
	return nil
}

func (v Value) String() string {
	if v.link != nil {
		return fmt.Sprintf("[%q, %d]", v.link.NodeID, v.link.Output)
	}
	return fmt.Sprintf("%v", v.literal)
}

// encodeJSON marshals without HTML escaping and without the trailing
// newline json.Encoder appends.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
