package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAny(t *testing.T) {
	type doc struct {
		Title string   `json:"title"`
		Links []string `json:"links"`
	}

	v, err := ToAny(doc{Title: "x", Links: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "x", "links": []any{"a"}}, v)
}

func TestItemResult_OmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(ItemResult{Success: false, Error: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"boom"}`, string(b))
}

func TestItemResult_UnfilteredIsNotSerialized(t *testing.T) {
	b, err := json.Marshal(ItemResult{Success: true, Data: 1, Unfiltered: map[string]any{"n": 1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":1}`, string(b))
}

func TestBatchOutput_WithoutFilter(t *testing.T) {
	out := &BatchOutput{
		RunID: "r1",
		Node:  "map",
		Items: []ItemResult{
			{Success: true, Data: 2, Unfiltered: map[string]any{"links": []any{"a", "b"}}},
			{Success: true, Data: "plain"},
			{Success: false, Error: "boom"},
		},
	}

	raw := out.WithoutFilter()
	assert.Equal(t, "r1", raw.RunID)
	assert.Equal(t, map[string]any{"links": []any{"a", "b"}}, raw.Items[0].Data)
	assert.Nil(t, raw.Items[0].Unfiltered)
	assert.Equal(t, "plain", raw.Items[1].Data)
	assert.Equal(t, "boom", raw.Items[2].Error)

	// The original is untouched.
	assert.Equal(t, 2, out.Items[0].Data)
}
