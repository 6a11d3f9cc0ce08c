// Package types provides shared types for firecrawl-mcp.
// These types are used across multiple packages and are designed for external consumption.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any to satisfy the MCP SDK's
// schema validation, or when a value is handed to a jq filter.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ItemResult is the output record produced for one input item.
// Exactly one of Data (on success) or Error (on failure) is meaningful.
type ItemResult struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Code    string         `json:"code,omitempty"`
	Debug   map[string]any `json:"debug,omitempty"`

	// Unfiltered is Data before the batch filter was applied. It is only set
	// when a filter ran and is never serialized.
	Unfiltered any `json:"-"`
}

// BatchOutput is the result of running a node over a batch of items.
// Items are in input order, one per input item.
type BatchOutput struct {
	RunID   string       `json:"run_id"`
	Node    string       `json:"node"`
	Items   []ItemResult `json:"items,omitzero"`
	Summary BatchSummary `json:"summary"`
}

// WithoutFilter returns a copy of the output with every filtered item's data
// restored to the node's original result.
func (o *BatchOutput) WithoutFilter() *BatchOutput {
	cp := *o
	cp.Items = make([]ItemResult, len(o.Items))
	for i, item := range o.Items {
		if item.Unfiltered != nil {
			item.Data = item.Unfiltered
			item.Unfiltered = nil
		}
		cp.Items[i] = item
	}
	return &cp
}

// BatchSummary counts item outcomes.
type BatchSummary struct {
	Total      int   `json:"total"`
	Succeeded  int   `json:"succeeded"`
	Failed     int   `json:"failed"`
	DurationMs int64 `json:"duration_ms"`
}

// ValidationResult contains the result of validating a single value.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}
