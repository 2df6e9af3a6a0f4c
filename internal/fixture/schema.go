package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/roach88/ordeal/internal/canon"
)

//go:embed suite.schema.json
var suiteSchemaJSON []byte

const suiteSchemaURL = "suite.schema.json"

var (
	suiteSchema *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchema compiles the embedded schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(suiteSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal suite schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(suiteSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add suite schema resource: %w", err)
			return
		}

		suiteSchema, err = compiler.Compile(suiteSchemaURL)
		if err != nil {
			compileErr = fmt.Errorf("compile suite schema: %w", err)
		}
	})
	return compileErr
}

// ValidateDocument checks a decoded YAML or JSON document against the suite
// file schema. The document is normalized to canonical JSON first, so YAML
// scalars and JSON numbers validate alike.
func ValidateDocument(doc any) error {
	if err := compileSchema(); err != nil {
		return err
	}

	data, err := canon.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := suiteSchema.Validate(v); err != nil {
		return fmt.Errorf("suite file validation failed: %w", err)
	}
	return nil
}
