package validator

// Code identifies a class of lint failure. The string values are
// wire-stable: editor integrations and CI filters match on them, so they
// never change even where Go-side names differ.
type Code string

const (
	// CodeMissingProperty reports a required object property that is absent.
	CodeMissingProperty Code = "MISSING_PROPERTY"
	// CodeTypeMismatch reports a value whose kind or content does not match
	// the expected type.
	CodeTypeMismatch Code = "TYPE_MISMATCH"
	// CodeExtraProperty reports an object key the schema does not declare,
	// in strict mode.
	CodeExtraProperty Code = "EXTRA_PROPERTY"
	// CodeInvalidFrontmatter reports a frontmatter block that opens but
	// never closes.
	CodeInvalidFrontmatter Code = "INVALID_FRONTMATTER"
	// CodeTypeNotFound reports a schema definition name that does not exist
	// in the definition file.
	CodeTypeNotFound Code = "TYPE_NOT_FOUND"
	// CodeFileNotFound reports an unreadable target or definition file.
	CodeFileNotFound Code = "FILE_NOT_FOUND"
	// CodeSchemaNotFound reports a JSON Schema file that does not exist.
	CodeSchemaNotFound Code = "SCHEMA_NOT_FOUND"
	// CodeMissingSchemaAnnotation reports a document with no schema
	// directive when one is required.
	CodeMissingSchemaAnnotation Code = "MISSING_SCHEMA_ANNOTATION"
	// CodeInvalidJSON reports a schema file that is not valid JSON.
	CodeInvalidJSON Code = "INVALID_JSON"
	// CodeInvalidSchema reports a schema document that does not compile.
	CodeInvalidSchema Code = "INVALID_SCHEMA"
	// CodeRuleViolation reports a rule-set backend failure.
	CodeRuleViolation Code = "ZOD_VALIDATION_ERROR"
	// CodeJSONSchemaViolation reports a JSON Schema backend failure.
	CodeJSONSchemaViolation Code = "JSONSCHEMA_VALIDATION_ERROR"
	// CodeMultipleSchemasFound reports a definition file offering more than
	// one candidate schema where exactly one is needed.
	CodeMultipleSchemasFound Code = "MULTIPLE_SCHEMAS_FOUND"
	// CodeNoSchemaInFile reports a definition file offering no usable
	// schema at all.
	CodeNoSchemaInFile Code = "NO_SCHEMA_IN_FILE"
)

// Error is a single lint finding. Path is empty for the document root and
// dot/bracket-joined otherwise, like "author.links[2]". Expected and Actual
// are set for type mismatches.
type Error struct {
	Code     Code   `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// Error implements the error interface with the message and code.
func (e Error) Error() string {
	return e.Message + " [" + string(e.Code) + "]"
}
