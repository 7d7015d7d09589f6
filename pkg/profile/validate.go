package profile

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/mkuehn/vitae/pkg/errors"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("profile.schema.json", strings.NewReader(string(schemaJSON))); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("profile.schema.json")
	})
	return schema, schemaErr
}

// Validate checks raw YAML document bytes against the profile schema.
//
// The YAML is decoded to a generic value and re-marshaled through JSON so
// the schema sees plain maps and strings; field errors come back with a
// JSON-pointer path into the document.
func Validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile profile schema")
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidData, err, "parse YAML")
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidData, err, "normalize document")
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidData, err, "normalize document")
	}

	if err := s.Validate(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidData, err, "profile does not match schema")
	}
	return nil
}
