package tools

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the zero value of its output
// type passes the schema the SDK infers for it. It panics on failure, so a
// bad output type is caught when the server starts.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	if err := checkOutputSchema[Out](); err != nil {
		panic(fmt.Sprintf("AddTool %q: %v", t.Name, err))
	}
	sdkmcp.AddTool(srv, t, h)
	slog.Debug("tool registered", slog.String("tool", t.Name))
}

// CheckOutputSchema panics if the zero value of T fails the JSON schema the
// MCP SDK would infer from T.
//
// json.Marshal writes nil slices as null while the inferred schema says
// "array", and json.RawMessage is inferred as an array of integers while it
// marshals as arbitrary JSON. Both only show up when a tool returns, so they
// are checked up front.
func CheckOutputSchema[T any](toolName string) {
	if err := checkOutputSchema[T](); err != nil {
		panic(fmt.Sprintf("AddTool %q: %v", toolName, err))
	}
}

func checkOutputSchema[T any]() error {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return nil
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, nil, map[reflect.Type]bool{}); len(paths) > 0 {
		return fmt.Errorf("output type %s has json.RawMessage at %s; use any and fill it with types.ToAny",
			rt, strings.Join(paths, ", "))
	}

	// Inference or resolution failures are reported by the SDK itself.
	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}

	if err := resolved.Validate(&v); err != nil {
		return fmt.Errorf("zero value of output type %s fails schema validation: %v (JSON: %s); add omitzero to slice fields or initialize them",
			rt, err, data)
	}
	return nil
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths returns the field paths under t that hold json.RawMessage.
func rawMessagePaths(t reflect.Type, path []string, visiting map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			found = append(found, rawMessagePaths(f.Type, append(path, f.Name), visiting)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, rawMessagePaths(t.Elem(), append(path, "[]"), visiting)...)
	case reflect.Map:
		found = append(found, rawMessagePaths(t.Elem(), append(path, "[value]"), visiting)...)
	}
	return found
}
