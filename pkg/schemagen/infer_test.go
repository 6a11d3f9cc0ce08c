package schemagen

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaJSON(t *testing.T, s *jsonschema.Schema) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}

func TestInferJSON_Primitives(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected string
	}{
		{"null", `null`, TypeNull},
		{"string", `"x"`, TypeString},
		{"integer", `3`, TypeNumber},
		{"float", `3.14`, TypeNumber},
		{"negative", `-1e3`, TypeNumber},
		{"true", `true`, TypeBoolean},
		{"false", `false`, TypeBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := InferJSON([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.Type)
			assert.Nil(t, s.Items)
			assert.Nil(t, s.Properties)
		})
	}
}

func TestInferJSON_EmptyArrayDefaultsToStringItems(t *testing.T) {
	s, err := InferJSON([]byte(`[]`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"array","items":{"type":"string"}}`, schemaJSON(t, s))
}

func TestInferJSON_ArrayUsesFirstElementOnly(t *testing.T) {
	s, err := InferJSON([]byte(`[1, 2, 3]`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"array","items":{"type":"number"}}`, schemaJSON(t, s))

	// Heterogeneous arrays are not unioned; the first element wins.
	s, err = InferJSON([]byte(`["a", 1, true]`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"array","items":{"type":"string"}}`, schemaJSON(t, s))
}

func TestInferJSON_ObjectRequiredFollowsDocumentOrder(t *testing.T) {
	s, err := InferJSON([]byte(`{"b": 1, "a": "x", "c": null}`))
	require.NoError(t, err)

	assert.Equal(t, TypeObject, s.Type)
	assert.Equal(t, []string{"b", "a", "c"}, s.Required)

	var keys []string
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"b", "a", "c"}, keys)
	assert.JSONEq(t,
		`{"type":"object","properties":{"b":{"type":"number"},"a":{"type":"string"},"c":{"type":"null"}},"required":["b","a","c"]}`,
		schemaJSON(t, s))
}

func TestInferJSON_SimpleObject(t *testing.T) {
	s, err := InferJSON([]byte(`{"a":"x","b":1}`))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"object","properties":{"a":{"type":"string"},"b":{"type":"number"}},"required":["a","b"]}`,
		schemaJSON(t, s))
}

func TestInferJSON_Nested(t *testing.T) {
	s, err := InferJSON([]byte(`{"items":[{"id":1}]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"items": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {"id": {"type": "number"}},
					"required": ["id"]
				}
			}
		},
		"required": ["items"]
	}`, schemaJSON(t, s))
}

func TestInferJSON_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	s, err := InferJSON([]byte(`{"a": 1, "b": true, "a": "x"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, s.Required)
	a, ok := s.Properties.Get("a")
	require.True(t, ok)
	assert.Equal(t, TypeString, a.Type)
}

func TestInferJSON_EscapedKeys(t *testing.T) {
	s, err := InferJSON([]byte(`{"say \"hi\"": 1, "back\\slash": 2}`))
	require.NoError(t, err)
	assert.Equal(t, []string{`say "hi"`, `back\slash`}, s.Required)
}

func TestInferJSON_EmptyObject(t *testing.T) {
	s, err := InferJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, TypeObject, s.Type)
	assert.Equal(t, 0, s.Properties.Len())
	assert.Empty(t, s.Required)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, schemaJSON(t, s))
}

func TestInferJSON_Invalid(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":}`, `[1,]`, `undefined`} {
		t.Run(in, func(t *testing.T) {
			_, err := InferJSON([]byte(in))
			assert.ErrorIs(t, err, ErrInvalidJSON)
		})
	}
}

func TestInfer_DecodedValues(t *testing.T) {
	var decoded any
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Alice","tags":[],"score":1.5,"ok":false,"extra":null}`), &decoded))

	s := Infer(decoded)
	// Decoded maps have no key order, so keys come out sorted.
	assert.Equal(t, []string{"extra", "name", "ok", "score", "tags"}, s.Required)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"extra": {"type": "null"},
			"name": {"type": "string"},
			"ok": {"type": "boolean"},
			"score": {"type": "number"},
			"tags": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["extra", "name", "ok", "score", "tags"]
	}`, schemaJSON(t, s))
}

func TestInfer_GoNumericKinds(t *testing.T) {
	for _, v := range []any{1, int64(2), uint8(3), float32(1.5), 2.5, json.Number("7")} {
		assert.Equal(t, TypeNumber, Infer(v).Type, "%T", v)
	}
}

func TestInfer_UnknownTypesFallBackToString(t *testing.T) {
	type custom struct{ X int }
	for _, v := range []any{custom{X: 1}, func() {}, make(chan int), []string{"a"}} {
		assert.Equal(t, TypeString, Infer(v).Type, "%T", v)
	}
}

func TestInfer_MatchesInferJSONForSortedInput(t *testing.T) {
	raw := []byte(`{"a":[{"b":true,"c":"x"}],"d":{"e":1}}`)

	fromText, err := InferJSON(raw)
	require.NoError(t, err)

	var decoded any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	fromValue := Infer(decoded)

	if diff := cmp.Diff(schemaJSON(t, fromText), schemaJSON(t, fromValue)); diff != "" {
		t.Errorf("schema mismatch (-text +value):\n%s", diff)
	}
}

func TestInfer_TypeAlwaysValid(t *testing.T) {
	valid := map[string]bool{
		TypeNull: true, TypeBoolean: true, TypeNumber: true,
		TypeString: true, TypeArray: true, TypeObject: true,
	}

	var walk func(s *jsonschema.Schema)
	walk = func(s *jsonschema.Schema) {
		assert.True(t, valid[s.Type], "unexpected type %q", s.Type)
		if s.Items != nil {
			walk(s.Items)
		}
		if s.Properties != nil {
			for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
				walk(pair.Value)
			}
		}
	}

	s, err := InferJSON([]byte(`{"a":[[[]]],"b":{"c":[null]},"d":[{"e":[1]}]}`))
	require.NoError(t, err)
	walk(s)
}
