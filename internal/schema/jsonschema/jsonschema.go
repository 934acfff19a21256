// Package jsonschema adapts standard JSON Schema documents as a validation
// backend. Schemas are compiled with github.com/santhosh-tekuri/jsonschema
// and violations are reported as the leaf causes of its error tree.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"strings"

	tekuri "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hatappo/frontmatter-lint/internal/fileutil"
	"github.com/hatappo/frontmatter-lint/internal/validator"
	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// InvalidJSONError reports a schema file that is not syntactically valid
// JSON.
type InvalidJSONError struct {
	Path string
}

func (e *InvalidJSONError) Error() string {
	return "invalid JSON in " + e.Path
}

// InvalidSchemaError reports a schema file that parses as JSON but does not
// compile as a JSON Schema.
type InvalidSchemaError struct {
	Path string
	Err  error
}

func (e *InvalidSchemaError) Error() string {
	return "invalid JSON Schema in " + e.Path + ": " + e.Err.Error()
}

func (e *InvalidSchemaError) Unwrap() error {
	return e.Err
}

// Schema is a compiled JSON Schema ready to validate frontmatter values.
type Schema struct {
	compiled *tekuri.Schema
}

// Load reads and compiles the schema at path. Malformed JSON and
// well-formed JSON that is not a valid schema fail with distinct error
// types so callers can report them differently.
func Load(path string) (*Schema, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}
	return Compile(path, data)
}

// Compile compiles raw schema bytes. The path names the resource in error
// messages and resolves any relative references.
func Compile(path string, data []byte) (*Schema, error) {
	if !json.Valid(data) {
		return nil, &InvalidJSONError{Path: path}
	}
	c := tekuri.NewCompiler()
	if err := c.AddResource(path, bytes.NewReader(data)); err != nil {
		return nil, &InvalidSchemaError{Path: path, Err: err}
	}
	compiled, err := c.Compile(path)
	if err != nil {
		return nil, &InvalidSchemaError{Path: path, Err: err}
	}
	return &Schema{compiled: compiled}, nil
}

// Validate checks v against the schema. Violations are the leaf causes of
// the compiler's error tree in evaluation order, so a failed anyOf reports
// every branch.
func (s *Schema) Validate(v value.Value) []validator.Error {
	err := s.compiled.Validate(v.Native())
	if err == nil {
		return nil
	}
	ve, ok := err.(*tekuri.ValidationError)
	if !ok {
		return []validator.Error{{
			Code:    validator.CodeJSONSchemaViolation,
			Message: "root: " + err.Error(),
		}}
	}
	var errs []validator.Error
	flatten(ve, &errs)
	return errs
}

func flatten(ve *tekuri.ValidationError, errs *[]validator.Error) {
	if len(ve.Causes) == 0 {
		path := pointerToPath(ve.InstanceLocation)
		loc := path
		if loc == "" {
			loc = "root"
		}
		*errs = append(*errs, validator.Error{
			Code:    validator.CodeJSONSchemaViolation,
			Path:    path,
			Message: loc + ": " + ve.Message,
		})
		return
	}
	for _, cause := range ve.Causes {
		flatten(cause, errs)
	}
}

// pointerToPath converts a JSON pointer into the dotted form used in error
// output: "/a/b/0" becomes "a.b[0]". All-digit segments render as array
// indexes, which is the only way frontmatter documents use them.
func pointerToPath(ptr string) string {
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		seg = strings.ReplaceAll(seg, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")
		if isIndex(seg) {
			b.WriteString("[")
			b.WriteString(seg)
			b.WriteString("]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(seg)
	}
	return b.String()
}

func isIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
