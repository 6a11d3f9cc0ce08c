package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/firecrawl-mcp/internal/nodes"
	"github.com/usestring/firecrawl-mcp/internal/schema"
	"github.com/usestring/firecrawl-mcp/pkg/schemagen"
	"github.com/usestring/firecrawl-mcp/pkg/types"
)

// InferSchemaInput is the input for firecrawl_infer_schema.
type InferSchemaInput struct {
	Example string `json:"example" jsonschema:"Example JSON value, as JSON text"`
}

// InferSchemaOutput is the output for firecrawl_infer_schema.
type InferSchemaOutput struct {
	Schema any `json:"schema"`
}

// ToolInferSchema infers a JSON Schema from an example value. Every object
// key becomes required and arrays take the shape of their first element.
func ToolInferSchema() sdkmcp.ToolHandlerFor[InferSchemaInput, InferSchemaOutput] {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
		if strings.TrimSpace(input.Example) == "" {
			return nil, InferSchemaOutput{}, nodes.ErrInvalidInput("example is required")
		}

		inferred, err := schemagen.InferJSON([]byte(input.Example))
		if err != nil {
			return nil, InferSchemaOutput{}, nodes.ErrInvalidInput(err.Error())
		}

		// Convert to any so the SDK's output schema stays open.
		v, err := types.ToAny(inferred)
		if err != nil {
			return nil, InferSchemaOutput{}, fmt.Errorf("encoding schema: %w", err)
		}
		return nil, InferSchemaOutput{Schema: v}, nil
	}
}

// ValidateSchemaInput is the input for firecrawl_validate_schema.
type ValidateSchemaInput struct {
	Schema string `json:"schema" jsonschema:"JSON Schema, as JSON text"`
	Data   string `json:"data" jsonschema:"Data to validate, as JSON text"`
}

// ToolValidateSchema validates a JSON value against a JSON Schema, e.g. to
// check extracted data or a hand-written schema before using it in extract.
func ToolValidateSchema() sdkmcp.ToolHandlerFor[ValidateSchemaInput, types.ValidationResult] {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateSchemaInput) (*sdkmcp.CallToolResult, types.ValidationResult, error) {
		def, err := schema.ParseSchemaDefinition(input.Schema)
		if err != nil {
			return nil, types.ValidationResult{}, nodes.ErrInvalidInput("Invalid schema: " + err.Error())
		}
		validator, err := schema.CompileSchema(def)
		if err != nil {
			return nil, types.ValidationResult{}, nodes.ErrInvalidInput("Invalid schema: " + err.Error())
		}

		data, err := decodeJSON(input.Data)
		if err != nil {
			return nil, types.ValidationResult{}, nodes.ErrInvalidInput("invalid data: " + err.Error())
		}

		return nil, *validator.ValidateValue(data), nil
	}
}
