// Package schema compiles user-supplied JSON Schema definitions and validates
// extracted data against them.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/firecrawl-mcp/pkg/types"
)

const resourceName = "schema.json"

// Validator validates JSON values against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// ParseSchemaDefinition parses a schema definition written as JSON text.
// The result is a plain decoded JSON value suitable for CompileSchema and
// for sending to the Firecrawl API unchanged.
func ParseSchemaDefinition(text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("schema definition is empty")
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("parsing JSON Schema: %w", err)
	}
	if _, ok := v.(map[string]any); !ok {
		return nil, fmt.Errorf("JSON Schema must be an object, got %s", jsonKind(v))
	}
	return v, nil
}

// CompileSchema compiles a schema given as any JSON-marshalable value,
// including *invopop/jsonschema.Schema and decoded maps.
func CompileSchema(schema any) (*Validator, error) {
	// Round-trip to a clean decoded document.
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// ValidateValue validates an already-decoded value against the schema.
// Typed Go values are normalized through JSON first.
func (v *Validator) ValidateValue(value any) *types.ValidationResult {
	if v == nil || v.schema == nil {
		return &types.ValidationResult{
			Valid:  false,
			Errors: []string{"schema not compiled"},
		}
	}

	normalized, err := types.ToAny(value)
	if err != nil {
		return &types.ValidationResult{
			Valid:  false,
			Errors: []string{fmt.Sprintf("value is not JSON: %s", err.Error())},
		}
	}

	if err := v.schema.Validate(normalized); err != nil {
		return &types.ValidationResult{
			Valid:  false,
			Errors: extractValidationErrors(err),
		}
	}
	return &types.ValidationResult{Valid: true}
}

// extractValidationErrors extracts human-readable error messages from a validation error.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return extractDetailedErrors(validationErr)
	}
	return []string{err.Error()}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// extractDetailedErrors flattens a ValidationError tree into sorted,
// deduplicated "path: message" lines.
func extractDetailedErrors(err *jsonschema.ValidationError) []string {
	errorsByPath := make(map[string][]string)
	collectErrors(err, errorsByPath)

	paths := make([]string, 0, len(errorsByPath))
	for p := range errorsByPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var result []string
	for _, path := range paths {
		seen := make(map[string]bool)
		for _, msg := range errorsByPath[path] {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}
	if len(result) == 0 {
		result = append(result, err.Error())
	}
	return result
}

// collectErrors recursively collects leaf errors (those without causes).
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "object"
	}
}
