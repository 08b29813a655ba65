package decl_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/panyam/pystmt/decl"
	"github.com/panyam/pystmt/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
)

func TestToStruct(t *testing.T) {
	module, err := parser.ParseString("pass; return 5\nglobal a, b\nnonlocal c\nbreak; continue; return\n")
	require.NoError(t, err)

	s, err := decl.ToStruct(module)
	require.NoError(t, err)

	expected := map[string]any{
		"type": "Module",
		"pos":  "1:1",
		"body": []any{
			map[string]any{"type": "Pass", "pos": "1:1"},
			map[string]any{"type": "Return", "pos": "1:7", "value": map[string]any{
				"type": "Num", "pos": "1:14", "text": "5", "value": float64(5),
			}},
			map[string]any{"type": "Global", "pos": "2:1", "names": []any{"a", "b"}},
			map[string]any{"type": "Nonlocal", "pos": "3:1", "names": []any{"c"}},
			map[string]any{"type": "Break", "pos": "4:1"},
			map[string]any{"type": "Continue", "pos": "4:8"},
			map[string]any{"type": "Return", "pos": "4:18"},
		},
	}
	if diff := cmp.Diff(expected, s.AsMap()); diff != "" {
		t.Errorf("struct mismatch (-expected +actual):\n%s", diff)
	}
}

func TestToStructJSON(t *testing.T) {
	module, err := parser.ParseString("global x\n")
	require.NoError(t, err)
	s, err := decl.ToStruct(module)
	require.NoError(t, err)

	// protojson output whitespace is not stable, so compare decoded values
	data, err := protojson.Marshal(s)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	body := decoded["body"].([]any)
	require.Len(t, body, 1)
	assert.Equal(t, []any{"x"}, body[0].(map[string]any)["names"])
}

func TestToStructEmptyModule(t *testing.T) {
	s, err := decl.ToStruct(&decl.Module{Body: []decl.Stmt{}})
	require.NoError(t, err)
	assert.Equal(t, []any{}, s.AsMap()["body"])
	assert.Equal(t, "0:0", s.AsMap()["pos"])
}

func TestToStructRejectsUnknownNodes(t *testing.T) {
	_, err := decl.ToStruct(&decl.Identifier{Name: "x"})
	assert.ErrorContains(t, err, "cannot export node of type *decl.Identifier")
}
