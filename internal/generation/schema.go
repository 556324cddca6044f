package generation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema describes the response body the client accepts
const resultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["success"],
  "properties": {
    "success":   {"type": "boolean"},
    "caption":   {"type": ["string", "null"]},
    "content":   {"type": ["string", "null"]},
    "image_url": {"type": ["string", "null"]},
    "error":     {"type": ["string", "null"]},
    "message":   {"type": ["string", "null"]}
  }
}`

// SchemaError lists the ways a response body deviates from the expected shape
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "unexpected response shape: " + strings.Join(e.Problems, "; ")
}

type resultValidator struct {
	schema *gojsonschema.Schema
}

func newResultValidator() (*resultValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(resultSchema))
	if err != nil {
		return nil, fmt.Errorf("loading response schema: %w", err)
	}
	return &resultValidator{schema: schema}, nil
}

// check returns an error when body is not JSON or does not match the schema
func (v *resultValidator) check(body []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, re.String())
	}
	return &SchemaError{Problems: problems}
}
