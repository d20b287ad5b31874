package app

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/*.json
var schemaFiles embed.FS

// Entity schema names, matching the files under schema/.
const (
	schemaNavigation     = "navigation"
	schemaContentSection = "content-section"
	schemaBlogPost       = "blog-post"
	schemaExperience     = "experience"
	schemaEducation      = "education"
	schemaSkillCategory  = "skill-category"
	schemaSkill          = "skill"
	schemaProject        = "project"
	schemaProfile        = "profile"
)

// validator validates request payloads against the fixed per-entity JSON
// Schemas embedded in the binary.
type validator struct {
	schemas map[string]*jsonschema.Schema
}

// newValidator compiles every embedded schema. It panics on failure since a
// malformed schema is a build defect, not a runtime condition.
func newValidator() *validator {
	compiler := jsonschema.NewCompiler()
	// Formats (email, date-time) are annotations by default; the schemas
	// rely on them as constraints.
	compiler.AssertFormat()
	entries, err := fs.Glob(schemaFiles, "schema/*.json")
	if err != nil {
		panic(fmt.Sprintf("failed to enumerate schemas: %v", err))
	}

	schemas := make(map[string]*jsonschema.Schema, len(entries))
	for _, path := range entries {
		raw, err := schemaFiles.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("failed to read schema %s: %v", path, err))
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			panic(fmt.Sprintf("failed to parse schema %s: %v", path, err))
		}
		if err := compiler.AddResource(path, doc); err != nil {
			panic(fmt.Sprintf("failed to register schema %s: %v", path, err))
		}
	}
	for _, path := range entries {
		schema, err := compiler.Compile(path)
		if err != nil {
			panic(fmt.Sprintf("failed to compile schema %s: %v", path, err))
		}
		name := path[len("schema/") : len(path)-len(".json")]
		schemas[name] = schema
	}
	return &validator{schemas: schemas}
}

// payloadError is a 400-level validation failure with field-level detail.
type payloadError struct {
	details []string
}

// Error satisfies [error].
func (e *payloadError) Error() string { return "invalid payload" }

// validate checks the raw JSON body against the named entity schema. It
// returns a [payloadError] describing each violation.
func (v *validator) validate(name string, body []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown payload schema %q", name)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return &payloadError{details: []string{"body must be valid JSON"}}
	}
	err = schema.Validate(instance)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return &payloadError{details: leafCauses(verr)}
}

// leafCauses flattens a validation error tree into its leaf messages.
func leafCauses(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		return []string{verr.Error()}
	}
	var details []string
	for _, cause := range verr.Causes {
		details = append(details, leafCauses(cause)...)
	}
	return details
}
