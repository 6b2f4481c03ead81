// Package schema holds the JSON schema of the schedule manifest.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"gopkg.in/yaml.v3"
)

const V0URL = "https://github.com/madwolfa/databricks-demo/schedules.v0.json"

var errEmptySchema = errors.New("embedded schema is empty")

//go:embed v0.json
var v0Bytes []byte

// V0 compiles the embedded schema once and returns the shared result.
var V0 = sync.OnceValues(compileV0)

func compileV0() (*jsonschema.Schema, error) {
	b := bytes.TrimSpace(v0Bytes)
	if len(b) == 0 {
		return nil, errEmptySchema
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse embedded schema json: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(V0URL, doc); err != nil {
		return nil, fmt.Errorf("add embedded schema resource: %w", err)
	}
	s, err := c.Compile(V0URL)
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}
	return s, nil
}

// ValidateYAML checks a YAML document against s. YAML is round-tripped
// through JSON so the validator sees the same types it would for a .json
// manifest.
func ValidateYAML(s *jsonschema.Schema, yamlBytes []byte) error {
	var yamlDoc any
	if err := yaml.Unmarshal(yamlBytes, &yamlDoc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	jsonBytes, err := json.Marshal(yamlDoc)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}
	jsonDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := s.Validate(jsonDoc); err != nil {
		return &Error{Msg: formatErr(err)}
	}
	return nil
}

// Error is a schema violation. Msg is the validator's basic output as JSON.
type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

func formatErr(err error) string {
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		b, mErr := json.Marshal(ve.BasicOutput())
		if mErr != nil {
			return "schema: " + err.Error()
		}
		return "schema: " + string(b)
	}
	return "schema: " + err.Error()
}
