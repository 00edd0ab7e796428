package transfer

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const singleSchema = `{
  "type": "object",
  "required": ["personalInfo", "experiences", "educations", "skills", "languages", "projects"]
}`

const collectionSchema = `{
  "type": "object",
  "required": ["cvs"],
  "properties": {
    "cvs": {"type": "array"}
  }
}`

var (
	singleLoader     = gojsonschema.NewStringLoader(singleSchema)
	collectionLoader = gojsonschema.NewStringLoader(collectionSchema)
)

// checkStructure validates the decoded document against an envelope schema
func checkStructure(envelope string, schema gojsonschema.JSONLoader, doc any) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &InvalidStructureError{Envelope: envelope, Cause: fmt.Errorf("schema check failed: %w", err)}
	}
	if result.Valid() {
		return nil
	}

	invalid := &InvalidStructureError{
		Envelope: envelope,
		Errors:   make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		invalid.Errors = append(invalid.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return invalid
}
