package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkflow_PreservesOrder(t *testing.T) {
	doc := `{"10": {"class_type": "A", "inputs": {}}, "2": {"class_type": "B", "inputs": {}}, "1": {"class_type": "C", "inputs": {}}}`

	w, err := ParseWorkflow([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"10", "2", "1"}, w.IDs())
	assert.Equal(t, 3, w.Len())

	node, ok := w.Get("2")
	require.True(t, ok)
	assert.Equal(t, "B", node.ClassType)
}

func TestParseWorkflow_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{"1": {"class_type": `},
		{"top level array", `[{"class_type": "A"}]`},
		{"top level null", `null`},
		{"node is a string", `{"1": "LoadImage"}`},
		{"node is an array", `{"1": ["a", 0]}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWorkflow([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput), "got %v", err)
			assert.Equal(t, "MalformedInput", Kind(err))
		})
	}
}

func TestParseWorkflow_LenientNodeFields(t *testing.T) {
	w, err := ParseWorkflow([]byte(`{"1": {"class_type": 7, "inputs": "nope"}, "2": {}}`))
	require.NoError(t, err)

	n1, _ := w.Get("1")
	assert.Equal(t, "", n1.ClassType)
	assert.Nil(t, n1.Inputs)

	n2, _ := w.Get("2")
	assert.Equal(t, "", n2.ClassType)
	_, ok := n2.Input("image")
	assert.False(t, ok)
}

func TestParseWorkflow_ExactFieldKeys(t *testing.T) {
	w, err := ParseWorkflow([]byte(`{
		"1": {"CLASS_TYPE": "GroundingDinoModelLoader", "Inputs": {"image": ["2", 0]}},
		"2": {"class_type": "GroundingDinoModelLoader", "Class_Type": "LoadImage", "inputs": {"a": 1}, "INPUTS": {"b": 2}},
		"3": {"Class_Type": "LoadImage", "class_type": "GroundingDinoDetect"}
	}`))
	require.NoError(t, err)

	n1, _ := w.Get("1")
	assert.Equal(t, "", n1.ClassType)
	assert.Nil(t, n1.Inputs)

	n2, _ := w.Get("2")
	assert.Equal(t, "GroundingDinoModelLoader", n2.ClassType)
	assert.Equal(t, []string{"a"}, n2.InputNames())

	n3, _ := w.Get("3")
	assert.Equal(t, "GroundingDinoDetect", n3.ClassType)
}

func TestValue_Unmarshal(t *testing.T) {
	tests := []struct {
		raw      string
		wantLink *Link
	}{
		{`["4", 0]`, &Link{NodeID: "4", Output: 0}},
		{`["node_a", 3]`, &Link{NodeID: "node_a", Output: 3}},
		{`["4", 0.5]`, nil},
		{`[4, 0]`, nil},
		{`["4", 0, 1]`, nil},
		{`["4"]`, nil},
		{`"hello"`, nil},
		{`1024`, nil},
		{`true`, nil},
		{`null`, nil},
		{`{"a": 1}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))

			link, ok := v.Link()
			if tt.wantLink == nil {
				assert.False(t, ok)
				assert.False(t, v.IsLink())
				return
			}
			require.True(t, ok)
			assert.Equal(t, *tt.wantLink, link)
			assert.Nil(t, v.Literal())
		})
	}
}

func TestValue_RoundTripKeepsNumberText(t *testing.T) {
	for _, raw := range []string{`1024`, `0.35`, `1e-3`, `["7", 2]`, `"ünïcode <b>"`, `[1, 2]`} {
		var v Value
		require.NoError(t, json.Unmarshal([]byte(raw), &v))

		out, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Literal(nil), false},
		{Literal(""), false},
		{Literal(false), false},
		{Literal(json.Number("0")), false},
		{Literal([]any{}), false},
		{Literal("cat"), true},
		{Literal(json.Number("3")), true},
		{Literal(true), true},
		{LinkTo("1", 0), true},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Truthy())
		})
	}
}

func TestNode_PassthroughIsVerbatim(t *testing.T) {
	raw := `{"inputs":{"seed":12345678901234567890,"text":"日本語 <ok>"},"class_type":"CLIPTextEncode","_meta":{"title":"Prompt"}}`

	var n Node
	require.NoError(t, json.Unmarshal([]byte(raw), &n))
	assert.Equal(t, "CLIPTextEncode", n.ClassType)

	out, err := n.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestNode_MarshalFresh(t *testing.T) {
	n := NewNode("Florence2toCoordinates").
		Set("florence2_result", LinkTo("5_florence", 0)).
		Set("index", Literal("all"))

	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `{"class_type":"Florence2toCoordinates","inputs":{"florence2_result":["5_florence",0],"index":"all"}}`, string(out))
	assert.Equal(t, []string{"florence2_result", "index"}, n.InputNames())
}

func TestNode_Links(t *testing.T) {
	n := NewNode("SAM2").
		Set("coordinates", LinkTo("5_coords", 0)).
		Set("individual_objects", Literal(true)).
		Set("image", LinkTo("2", 0))

	assert.Equal(t, []SlotLink{
		{Slot: "coordinates", Link: Link{NodeID: "5_coords", Output: 0}},
		{Slot: "image", Link: Link{NodeID: "2", Output: 0}},
	}, n.Links())
}

func TestWorkflow_MarshalKeepsOrder(t *testing.T) {
	w := NewWorkflow()
	w.Set("b", NewNode("B"))
	w.Set("a", NewNode("A"))
	w.Set("b", NewNode("B2"))

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, `{"b":{"class_type":"B2","inputs":{}},"a":{"class_type":"A","inputs":{}}}`, string(out))
}

func TestWorkflow_EmptyRoundTrip(t *testing.T) {
	w, err := ParseWorkflow([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, w.Len())

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "NotFound", Kind(fmt.Errorf("open x: %w", ErrNotFound)))
	assert.Equal(t, "MalformedInput", Kind(fmt.Errorf("parse: %w", ErrMalformedInput)))
	assert.Equal(t, "Unexpected", Kind(errors.New("disk full")))
}
