package sanitize

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Stage identifies where decoding failed.
type Stage string

const (
	StageExtract  Stage = "extract"
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
)

// DecodeError reports why text could not be turned into a typed value.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode (%s): %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Schema names a JSON Schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Decode extracts the JSON object embedded in text, validates it against
// schema (when non-nil) and unmarshals it into dst.
func Decode(text string, schema *Schema, dst any) error {
	raw := ExtractJSON(text)
	if raw == "" {
		return &DecodeError{Stage: StageExtract, Err: fmt.Errorf("no JSON object found")}
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return &DecodeError{Stage: StageParse, Err: err}
	}

	if schema != nil {
		compiled, err := compile(schema.Name, schema.Definition)
		if err != nil {
			return &DecodeError{Stage: StageValidate, Err: err}
		}
		if err := compiled.Validate(parsed); err != nil {
			return &DecodeError{Stage: StageValidate, Err: err}
		}
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return &DecodeError{Stage: StageParse, Err: err}
	}
	return nil
}

// Validate checks raw JSON against the named schema definition.
func Validate(name string, def map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &DecodeError{Stage: StageParse, Err: err}
	}
	compiled, err := compile(name, def)
	if err != nil {
		return &DecodeError{Stage: StageValidate, Err: err}
	}
	if err := compiled.Validate(parsed); err != nil {
		return &DecodeError{Stage: StageValidate, Err: err}
	}
	return nil
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

func compile(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON, not Go map literals with
	// typed slices, so round-trip through encoding/json.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", name, err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
