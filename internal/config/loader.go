package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed schema.yaml
var defaultSchema []byte

// ErrUnavailable is returned when a VM description is empty after loading.
var ErrUnavailable = errors.New("virtual machine cannot be configured")

const schemaURL = "qlaunch-schema.json"

// LoadVM reads the VM description at path and validates it against the
// schema at schemaPath, or the built-in schema when schemaPath is empty.
func LoadVM(path, schemaPath string) (*VMConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	schema := defaultSchema
	if schemaPath != "" {
		schema, err = os.ReadFile(schemaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", schemaPath, err)
		}
	}

	cfg, err := ParseVM(data, schema)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("Loaded VM description %q from %s", cfg.Name, path)
	return cfg, nil
}

// ParseVM decodes a YAML (or JSON) VM description and validates it. A nil
// schema selects the built-in one.
func ParseVM(data, schema []byte) (*VMConfig, error) {
	if schema == nil {
		schema = defaultSchema
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	if isEmpty(doc) {
		return nil, ErrUnavailable
	}

	if err := validateSchema(doc, schema); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var cfg VMConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode VM description: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func isEmpty(doc any) bool {
	switch d := doc.(type) {
	case nil:
		return true
	case map[string]any:
		return len(d) == 0
	case []any:
		return len(d) == 0
	case string:
		return d == ""
	}
	return false
}

// validateSchema checks doc against a YAML or JSON schema document. Both
// are round-tripped through JSON so numbers reach the validator in the form
// it expects.
func validateSchema(doc any, schema []byte) error {
	var rawSchema any
	if err := yaml.Unmarshal(schema, &rawSchema); err != nil {
		return fmt.Errorf("failed to parse schema: %w", err)
	}

	schemaDoc, err := toJSON(rawSchema)
	if err != nil {
		return fmt.Errorf("failed to convert schema: %w", err)
	}

	instance, err := toJSON(doc)
	if err != nil {
		return fmt.Errorf("failed to convert configuration: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("failed to add schema: %w", err)
	}

	sch, err := c.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	return sch.Validate(instance)
}

func toJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}
