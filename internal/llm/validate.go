package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// maxViolations bounds how many schema violations an error carries. A
// curriculum with a systematic mistake repeats it on every day.
const maxViolations = 8

// compiledSchemas holds compiled response schemas by name. Schema names
// are fixed per response kind, so the set stays small.
type compiledSchemas struct {
	mu     sync.Mutex
	byName map[string]*jsonschema.Schema
}

var schemas = &compiledSchemas{byName: make(map[string]*jsonschema.Schema)}

func (c *compiledSchemas) get(schema *Schema) (*jsonschema.Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if compiled, ok := c.byName[schema.Name]; ok {
		return compiled, nil
	}

	// The compiler wants a decoded JSON value, not the Go map as built.
	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", schema.Name, err)
	}

	comp := jsonschema.NewCompiler()
	url := "edupath://schemas/" + schema.Name + ".json"
	if err := comp.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", schema.Name, err)
	}
	compiled, err := comp.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	c.byName[schema.Name] = compiled
	return compiled, nil
}

// validateResponse checks raw model output against schema. A nil schema
// accepts anything. Failures are *ErrInvalidResponse naming the schema and,
// for schema mismatches, where in the document they occurred.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	invalid := func(err error, violations ...string) error {
		return &ErrInvalidResponse{Schema: schema.Name, Content: raw, Violations: violations, Err: err}
	}

	if len(raw) == 0 {
		return invalid(errors.New("empty response"))
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("invalid JSON: %w", err))
	}

	compiled, err := schemas.get(schema)
	if err != nil {
		return invalid(err)
	}

	if err := compiled.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return invalid(errors.New("response does not match schema"), violations(ve)...)
		}
		return invalid(err)
	}
	return nil
}

// violations lists the leaf failures of a validation error as
// "at '<location>': <message>" lines, sorted and capped at maxViolations.
func violations(ve *jsonschema.ValidationError) []string {
	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, e.Error())
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	sort.Strings(out)
	if n := len(out); n > maxViolations {
		out = append(out[:maxViolations], fmt.Sprintf("... and %d more", n-maxViolations))
	}
	return out
}
