// Package schemagen infers a JSON Schema from a single example value.
//
// The inferred schema is intentionally shallow: every key present in the
// example is required, and only the first element of an array determines the
// array's item schema. Heterogeneous arrays are not unioned.
//
// An empty object serializes as {"type":"object","properties":{}} with no
// "required" key: the Schema type omits an empty required list. Both forms
// validate the same instances.
package schemagen

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/buger/jsonparser"
	"github.com/invopop/jsonschema"
)

// JSON Schema type names produced by inference.
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeArray   = "array"
	TypeObject  = "object"
)

// ErrInvalidJSON is returned by InferJSON when the example is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON example")

// Infer generates a schema from an already-decoded JSON value.
// Map keys are visited in sorted order so the output is deterministic.
// Values of unrecognized Go types are described as strings.
func Infer(sample any) *jsonschema.Schema {
	switch v := sample.(type) {
	case nil:
		return &jsonschema.Schema{Type: TypeNull}
	case bool:
		return &jsonschema.Schema{Type: TypeBoolean}
	case string:
		return &jsonschema.Schema{Type: TypeString}
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return &jsonschema.Schema{Type: TypeNumber}
	case []any:
		if len(v) == 0 {
			return emptyArraySchema()
		}
		return &jsonschema.Schema{Type: TypeArray, Items: Infer(v[0])}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		schema := newObjectSchema()
		for _, k := range keys {
			addProperty(schema, k, Infer(v[k]))
		}
		return schema
	default:
		return &jsonschema.Schema{Type: TypeString}
	}
}

// InferJSON generates a schema from raw JSON text. Object keys are visited in
// document order, so "required" lists keys in the order they were written.
// A repeated key keeps its first position and takes its last value.
func InferJSON(data []byte) (*jsonschema.Schema, error) {
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}

	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return inferRaw(value, dataType)
}

func inferRaw(value []byte, dataType jsonparser.ValueType) (*jsonschema.Schema, error) {
	switch dataType {
	case jsonparser.Null:
		return &jsonschema.Schema{Type: TypeNull}, nil
	case jsonparser.Boolean:
		return &jsonschema.Schema{Type: TypeBoolean}, nil
	case jsonparser.Number:
		return &jsonschema.Schema{Type: TypeNumber}, nil
	case jsonparser.String:
		return &jsonschema.Schema{Type: TypeString}, nil
	case jsonparser.Array:
		return inferRawArray(value)
	case jsonparser.Object:
		return inferRawObject(value)
	default:
		return &jsonschema.Schema{Type: TypeString}, nil
	}
}

func inferRawArray(value []byte) (*jsonschema.Schema, error) {
	var (
		first     []byte
		firstType jsonparser.ValueType
		seen      bool
	)
	_, err := jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
		if seen {
			return
		}
		first, firstType, seen = v, t, true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if !seen {
		return emptyArraySchema(), nil
	}

	items, err := inferRaw(first, firstType)
	if err != nil {
		return nil, err
	}
	return &jsonschema.Schema{Type: TypeArray, Items: items}, nil
}

func inferRawObject(value []byte) (*jsonschema.Schema, error) {
	schema := newObjectSchema()

	// ObjectEach hands over keys already unescaped.
	err := jsonparser.ObjectEach(value, func(key []byte, v []byte, t jsonparser.ValueType, _ int) error {
		prop, err := inferRaw(v, t)
		if err != nil {
			return err
		}
		addProperty(schema, string(key), prop)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return schema, nil
}

// emptyArraySchema describes an empty example array. Items default to string.
func emptyArraySchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:  TypeArray,
		Items: &jsonschema.Schema{Type: TypeString},
	}
}

func newObjectSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       TypeObject,
		Properties: jsonschema.NewProperties(),
		Required:   []string{},
	}
}

func addProperty(schema *jsonschema.Schema, key string, prop *jsonschema.Schema) {
	if _, exists := schema.Properties.Get(key); !exists {
		schema.Required = append(schema.Required, key)
	}
	schema.Properties.Set(key, prop)
}
