package nodes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/usestring/firecrawl-mcp/internal/schema"
	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
	"github.com/usestring/firecrawl-mcp/pkg/schemagen"
	"github.com/usestring/firecrawl-mcp/pkg/urllist"
)

// ErrCodeSchemaMismatch marks extracted data that failed result validation.
const ErrCodeSchemaMismatch = "SCHEMA_MISMATCH"

// Extract runs LLM extraction over a list of URLs per item.
type Extract struct {
	deps *Deps
}

// NewExtract creates an extract node.
func NewExtract(d *Deps) *Extract {
	return &Extract{deps: d}
}

func (n *Extract) Name() string { return NodeExtract }

// Execute extracts structured data from the item's URLs.
func (n *Extract) Execute(ctx context.Context, p ExtractParams) (*Output, error) {
	urls, opts, validator, err := p.request()
	if err != nil {
		return nil, err
	}

	debug := debugInfo(p.EnableDebugLogs, n.Name(), map[string]any{
		"urls":    urls,
		"options": opts,
	})

	result, err := n.deps.Client.Extract(ctx, urls, opts)
	if err != nil {
		return nil, WrapFirecrawlError(err)
	}

	if p.ValidateResult && validator != nil {
		res := validator.ValidateValue(result.Data)
		if !res.Valid {
			return nil, &CodedError{
				Code:    ErrCodeSchemaMismatch,
				Message: "extracted data does not match schema: " + strings.Join(res.Errors, "; "),
			}
		}
	}

	return &Output{Data: result, Debug: debug}, nil
}

// request validates the params, resolves the schema and builds the API
// request options. The returned validator is nil for simple extraction.
func (p ExtractParams) request() ([]string, *firecrawl.ExtractOptions, *schema.Validator, error) {
	urls := urllist.ParseList(p.URLs)
	if len(urls) == 0 {
		return nil, nil, nil, ErrInvalidInput("No valid URLs provided")
	}

	method := p.ExtractionMethod
	if method == "" {
		method = ExtractionSimple
	}

	opts := &firecrawl.ExtractOptions{
		Prompt:          p.ExtractionPrompt,
		EnableWebSearch: p.EnableWebSearch,
	}

	switch method {
	case ExtractionSimple:
		return urls, opts, nil, nil
	case ExtractionSchema:
	default:
		return nil, nil, nil, ErrInvalidInput(fmt.Sprintf("extraction_method must be %q or %q", ExtractionSimple, ExtractionSchema))
	}

	def, err := p.schemaDefinition()
	if err != nil {
		return nil, nil, nil, invalidSchema(err)
	}
	validator, err := schema.CompileSchema(def)
	if err != nil {
		return nil, nil, nil, invalidSchema(err)
	}
	opts.Schema = def

	return urls, opts, validator, nil
}

// schemaDefinition returns the schema selected by SchemaDefinitionType.
func (p ExtractParams) schemaDefinition() (any, error) {
	switch p.SchemaDefinitionType {
	case SchemaFromExample:
		if strings.TrimSpace(p.JSONExample) == "" {
			return nil, errors.New("json_example is required")
		}
		return schemagen.InferJSON([]byte(p.JSONExample))
	case SchemaManual, "":
		return schema.ParseSchemaDefinition(p.SchemaDefinition)
	default:
		return nil, fmt.Errorf("schema_definition_type must be %q or %q", SchemaFromExample, SchemaManual)
	}
}

func invalidSchema(err error) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("Invalid schema: %v", err),
		Cause:   err,
	}
}
