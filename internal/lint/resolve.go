package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/hatappo/frontmatter-lint/internal/fileutil"
	"github.com/hatappo/frontmatter-lint/internal/schema"
	"github.com/hatappo/frontmatter-lint/internal/schema/jsonschema"
	"github.com/hatappo/frontmatter-lint/internal/schema/rules"
	"github.com/hatappo/frontmatter-lint/internal/validator"
	"github.com/hatappo/frontmatter-lint/pkg/frontmatter"
)

// autoSchemaNames are probed in order inside a document's directory when
// no directive names a schema.
var autoSchemaNames = []string{"schema.json", "schema.yaml", "schema.yml"}

// resolve picks the validation backend for a document in dir. Exactly one
// of the returns is non-nil, except when no schema applies and none is
// required: then both are nil and the document is skipped.
func (l *Linter) resolve(dir string, d *frontmatter.Directive) (Backend, *validator.Error) {
	if d != nil {
		path := d.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			return l.jsonBackend(path)
		case ".yaml", ".yml":
			return l.yamlBackend(path, d.Name)
		}
		// Not a schema extension we know; the directive is ignored.
		l.log.Debug("ignoring schema directive", "path", d.Path)
	}

	if !l.opts.NoAutoSchema {
		for _, name := range autoSchemaNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			l.log.Debug("auto-detected schema", "path", path)
			if name == "schema.json" {
				return l.jsonBackend(path)
			}
			return l.yamlBackend(path, "")
		}
	}

	if l.opts.RequireSchema {
		return nil, &validator.Error{
			Code:    validator.CodeMissingSchemaAnnotation,
			Message: "no schema directive and no schema file found",
		}
	}
	return nil, nil
}

func (l *Linter) jsonBackend(path string) (Backend, *validator.Error) {
	src := l.cache.load(path, loadJSONSource)
	if src.failure != nil {
		return nil, src.failure
	}
	return src.json, nil
}

func loadJSONSource(path string) *cachedSource {
	s, err := jsonschema.Load(path)
	if err == nil {
		return &cachedSource{json: s}
	}
	var invalidJSON *jsonschema.InvalidJSONError
	var invalidSchema *jsonschema.InvalidSchemaError
	switch {
	case errors.As(err, &invalidJSON):
		return &cachedSource{failure: &validator.Error{
			Code:    validator.CodeInvalidJSON,
			Message: err.Error(),
		}}
	case errors.As(err, &invalidSchema):
		return &cachedSource{failure: &validator.Error{
			Code:    validator.CodeInvalidSchema,
			Message: err.Error(),
		}}
	default:
		return &cachedSource{failure: &validator.Error{
			Code:    validator.CodeSchemaNotFound,
			Message: "schema not found: " + path,
		}}
	}
}

func (l *Linter) yamlBackend(path, name string) (Backend, *validator.Error) {
	src := l.cache.load(path, loadYAMLSource)
	if src.failure != nil {
		return nil, src.failure
	}
	hasTypes := len(src.types.Names()) > 0
	hasRules := len(src.rules.Names()) > 0
	switch {
	case hasTypes && hasRules:
		return nil, &validator.Error{
			Code:    validator.CodeMultipleSchemasFound,
			Message: path + " defines both types and rules",
		}
	case hasTypes:
		return l.typeBackend(src.types, path, name)
	case hasRules:
		return ruleBackend(src.rules, path, name)
	default:
		return nil, &validator.Error{
			Code:    validator.CodeNoSchemaInFile,
			Message: "no type or rule definitions in " + path,
		}
	}
}

func loadYAMLSource(path string) *cachedSource {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		msg := "cannot read schema file: " + path
		switch {
		case errors.Is(err, os.ErrNotExist):
			msg = "schema file not found: " + path
		case errors.Is(err, fileutil.ErrFileTooLarge):
			msg = "schema file too large: " + path
		}
		return &cachedSource{failure: &validator.Error{
			Code:    validator.CodeFileNotFound,
			Message: msg,
		}}
	}
	types, err := schema.Parse(data)
	if err != nil {
		return &cachedSource{failure: &validator.Error{
			Code:    validator.CodeInvalidSchema,
			Message: err.Error(),
		}}
	}
	sets, err := rules.Parse(data)
	if err != nil {
		return &cachedSource{failure: &validator.Error{
			Code:    validator.CodeInvalidSchema,
			Message: err.Error(),
		}}
	}
	return &cachedSource{types: types, rules: sets}
}

func (l *Linter) typeBackend(file *schema.File, path, name string) (Backend, *validator.Error) {
	if name == "" {
		names := file.Names()
		if len(names) > 1 {
			return nil, &validator.Error{
				Code:    validator.CodeMultipleSchemasFound,
				Message: path + " defines several types, name one of: " + strings.Join(names, ", "),
			}
		}
		name = names[0]
	}
	t, err := file.Resolve(name)
	if err != nil {
		var notFound *schema.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &validator.Error{
				Code:    validator.CodeTypeNotFound,
				Message: fmt.Sprintf("type %q not found in %s", notFound.Name, path),
			}
		}
		return nil, &validator.Error{
			Code:    validator.CodeInvalidSchema,
			Message: err.Error(),
		}
	}
	return structuralBackend{
		typ:  t,
		opts: validator.Options{AllowExtraProps: l.opts.AllowExtraProps},
	}, nil
}

func ruleBackend(file *rules.File, path, name string) (Backend, *validator.Error) {
	if name == "" {
		names := file.Names()
		if len(names) > 1 {
			return nil, &validator.Error{
				Code:    validator.CodeMultipleSchemasFound,
				Message: path + " defines several rule sets, name one of: " + strings.Join(names, ", "),
			}
		}
		name = names[0]
	}
	set, ok := file.Set(name)
	if !ok {
		return nil, &validator.Error{
			Code:    validator.CodeTypeNotFound,
			Message: fmt.Sprintf("rule set %q not found in %s", name, path),
		}
	}
	return set, nil
}
