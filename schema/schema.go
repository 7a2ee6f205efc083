// Package schema validates record instances against a JSON schema. It is a
// thin delegation layer: compilation and validation are performed by the
// external jsonschema engine and its errors surface verbatim.
package schema

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"sigs.k8s.io/yaml"

	"github.com/jmartinm/inspire-dojson/record"
)

// Compile turns raw schema data, JSON or YAML, into a compiled schema.
func Compile(data []byte) (*jsonschema.Schema, error) {
	const resource = "schema.json"

	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert schema to JSON: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(resource, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema: %w", err)
	}
	sch, err := c.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return sch, nil
}

// Validator validates instances against one schema, compiling it once on
// first use.
type Validator struct {
	compile func() (*jsonschema.Schema, error)
}

// New returns a Validator for the given raw schema data.
func New(data []byte) *Validator {
	return &Validator{
		compile: sync.OnceValues(func() (*jsonschema.Schema, error) {
			return Compile(data)
		}),
	}
}

// Validate checks instance against the schema. record.Value instances are
// converted to their plain Go form first. A nil return means the instance is
// valid; validation failures are returned unmodified from the engine.
func (v *Validator) Validate(instance any) error {
	sch, err := v.compile()
	if err != nil {
		return err
	}
	if val, ok := instance.(record.Value); ok {
		instance = val.Interface()
	}
	return sch.Validate(instance)
}
