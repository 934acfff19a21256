package lint

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hatappo/frontmatter-lint/internal/fileutil"
	"github.com/hatappo/frontmatter-lint/internal/logging"
	"github.com/hatappo/frontmatter-lint/internal/validator"
)

const postTypes = `types:
  Post:
    properties:
      title: string
      date: string
      tags?:
        items: string
`

const postRules = `rules:
  post:
    title:
      required: true
      kind: string
`

const postJSON = `{
  "type": "object",
  "required": ["title"],
  "properties": {"title": {"type": "string"}}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newLinter(t *testing.T, dir string, opts Options) *Linter {
	t.Helper()
	return New(WithBaseDir(dir), WithOptions(opts), WithLogger(logging.ForTest(t)))
}

func onlyCode(t *testing.T, res Result, want validator.Code) {
	t.Helper()
	if res.Valid {
		t.Fatalf("result valid, want %s", want)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", res.Errors)
	}
	if res.Errors[0].Code != want {
		t.Fatalf("code = %s, want %s (message %q)", res.Errors[0].Code, want, res.Errors[0].Message)
	}
}

func TestLintContent_TypeSchema(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.yaml", postTypes)
	l := newLinter(t, dir, Options{})

	valid := l.LintContent("hello.md", []byte("---\n# @schema post.yaml Post\ntitle: Hello\ndate: 2024-01-15\ntags:\n  - go\n---\nbody\n"))
	if !valid.Valid || len(valid.Errors) != 0 {
		t.Fatalf("result = %+v, want valid", valid)
	}

	invalid := l.LintContent("hello.md", []byte("---\n# @schema post.yaml Post\ntitle: 42\n---\nbody\n"))
	if invalid.Valid {
		t.Fatal("result valid, want errors")
	}
	if len(invalid.Errors) != 2 {
		t.Fatalf("errors = %v, want title mismatch and missing date", invalid.Errors)
	}
	if invalid.Errors[0].Code != validator.CodeTypeMismatch || invalid.Errors[0].Path != "title" {
		t.Errorf("first error = %+v, want title type mismatch", invalid.Errors[0])
	}
	if invalid.Errors[1].Code != validator.CodeMissingProperty || invalid.Errors[1].Path != "date" {
		t.Errorf("second error = %+v, want missing date", invalid.Errors[1])
	}
}

func TestLintContent_RuleSchema(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.yaml", postRules)
	l := newLinter(t, dir, Options{})

	res := l.LintContent("hello.md", []byte("---\n# @schema post.yaml\ndate: 2024-01-15\n---\n"))
	onlyCode(t, res, validator.CodeRuleViolation)
	if res.Errors[0].Message != "title: required field missing" {
		t.Errorf("message = %q", res.Errors[0].Message)
	}
}

func TestLintContent_JSONSchema(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.schema.json", postJSON)
	l := newLinter(t, dir, Options{})

	res := l.LintContent("hello.md", []byte("---\n# @schema post.schema.json\ntitle: 42\n---\n"))
	onlyCode(t, res, validator.CodeJSONSchemaViolation)
	if res.Errors[0].Path != "title" {
		t.Errorf("path = %q, want title", res.Errors[0].Path)
	}
}

func TestLintContent_TOMLFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.yaml", postTypes)
	l := newLinter(t, dir, Options{})

	res := l.LintContent("hello.md", []byte("+++\n# @schema post.yaml Post\ntitle = \"Hello\"\ndate = 2024-01-15\n+++\n"))
	if !res.Valid {
		t.Fatalf("result = %+v, want valid", res)
	}
}

func TestLintContent_NoFrontmatter(t *testing.T) {
	l := newLinter(t, t.TempDir(), Options{})
	res := l.LintContent("plain.md", []byte("# Just a heading\n\nbody text\n"))
	if !res.Valid || len(res.Errors) != 0 {
		t.Fatalf("result = %+v, want valid skip", res)
	}
}

func TestLintContent_Unterminated(t *testing.T) {
	l := newLinter(t, t.TempDir(), Options{})
	res := l.LintContent("broken.md", []byte("---\ntitle: Hello\n"))
	onlyCode(t, res, validator.CodeInvalidFrontmatter)
}

func TestLintContent_RelativeDirectivePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/schemas/post.yaml", postTypes)
	l := newLinter(t, dir, Options{})

	res := l.LintContent("docs/hello.md", []byte("---\n# @schema schemas/post.yaml Post\ntitle: Hi\ndate: x\n---\n"))
	if !res.Valid {
		t.Fatalf("result = %+v, want valid via relative schema path", res)
	}
}

func TestLintContent_ExtraProps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.yaml", postTypes)
	doc := []byte("---\n# @schema post.yaml Post\ntitle: Hi\ndate: x\nextra: y\n---\n")

	strict := newLinter(t, dir, Options{}).LintContent("hello.md", doc)
	onlyCode(t, strict, validator.CodeExtraProperty)
	if strict.Errors[0].Path != "extra" {
		t.Errorf("path = %q, want extra", strict.Errors[0].Path)
	}

	relaxed := newLinter(t, dir, Options{AllowExtraProps: true}).LintContent("hello.md", doc)
	if !relaxed.Valid {
		t.Fatalf("result = %+v, want valid with extras allowed", relaxed)
	}
}

func TestResolveFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", "{not json")
	writeFile(t, dir, "badschema.json", `{"type": 42}`)
	writeFile(t, dir, "both.yaml", "types:\n  A: string\nrules:\n  a:\n    x: {required: true}\n")
	writeFile(t, dir, "neither.yaml", "unrelated: true\n")
	writeFile(t, dir, "many.yaml", "types:\n  A: string\n  B: number\n")
	writeFile(t, dir, "post.yaml", postTypes)

	tests := []struct {
		name      string
		directive string
		want      validator.Code
	}{
		{"missing yaml file", "absent.yaml", validator.CodeFileNotFound},
		{"missing json file", "absent.json", validator.CodeSchemaNotFound},
		{"invalid json", "bad.json", validator.CodeInvalidJSON},
		{"invalid schema", "badschema.json", validator.CodeInvalidSchema},
		{"types and rules in one file", "both.yaml", validator.CodeMultipleSchemasFound},
		{"no definitions", "neither.yaml", validator.CodeNoSchemaInFile},
		{"several types unnamed", "many.yaml", validator.CodeMultipleSchemasFound},
		{"named type missing", "post.yaml Missing", validator.CodeTypeNotFound},
	}
	l := newLinter(t, dir, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := l.LintContent("doc.md", []byte("---\n# @schema "+tt.directive+"\ntitle: x\n---\n"))
			onlyCode(t, res, tt.want)
		})
	}
}

func TestResolveIgnoresUnknownExtension(t *testing.T) {
	l := newLinter(t, t.TempDir(), Options{})
	res := l.LintContent("doc.md", []byte("---\n# @schema post.txt\ntitle: x\n---\n"))
	if !res.Valid {
		t.Fatalf("result = %+v, want valid when the directive extension is not a schema kind", res)
	}
}

func TestAutoDetect(t *testing.T) {
	t.Run("json first", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "schema.json", postJSON)
		res := newLinter(t, dir, Options{}).LintContent("doc.md", []byte("---\ntitle: 42\n---\n"))
		onlyCode(t, res, validator.CodeJSONSchemaViolation)
	})

	t.Run("yaml fallback", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "schema.yaml", postTypes)
		res := newLinter(t, dir, Options{}).LintContent("doc.md", []byte("---\ntitle: 42\n---\n"))
		if res.Valid {
			t.Fatal("result valid, want structural errors from auto-detected schema")
		}
		if res.Errors[0].Code != validator.CodeTypeMismatch {
			t.Errorf("code = %s, want %s", res.Errors[0].Code, validator.CodeTypeMismatch)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "schema.yaml", postTypes)
		res := newLinter(t, dir, Options{NoAutoSchema: true}).LintContent("doc.md", []byte("---\ntitle: 42\n---\n"))
		if !res.Valid {
			t.Fatalf("result = %+v, want valid with auto-detection off", res)
		}
	})

	t.Run("required but absent", func(t *testing.T) {
		res := newLinter(t, t.TempDir(), Options{RequireSchema: true}).LintContent("doc.md", []byte("---\ntitle: 42\n---\n"))
		onlyCode(t, res, validator.CodeMissingSchemaAnnotation)
	})

	t.Run("no frontmatter stays valid even when required", func(t *testing.T) {
		res := newLinter(t, t.TempDir(), Options{RequireSchema: true}).LintContent("doc.md", []byte("plain text\n"))
		if !res.Valid {
			t.Fatalf("result = %+v, want valid", res)
		}
	})
}

func TestLintFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.yaml", postTypes)
	writeFile(t, dir, "good.md", "---\n# @schema post.yaml Post\ntitle: Hi\ndate: x\n---\n")
	l := newLinter(t, dir, Options{})

	if res := l.LintFile("good.md"); !res.Valid {
		t.Fatalf("result = %+v, want valid", res)
	}

	res := l.LintFile("absent.md")
	onlyCode(t, res, validator.CodeFileNotFound)
	if res.Target != "absent.md" {
		t.Errorf("target = %q, want the path as given", res.Target)
	}

	huge, err := os.Create(filepath.Join(dir, "huge.md"))
	if err != nil {
		t.Fatal(err)
	}
	if err := huge.Truncate(fileutil.MaxFileSize + 1); err != nil {
		t.Fatal(err)
	}
	huge.Close()

	res = l.LintFile("huge.md")
	onlyCode(t, res, validator.CodeFileNotFound)
	if !strings.Contains(res.Errors[0].Message, "file too large") {
		t.Errorf("message = %q, want a too-large message", res.Errors[0].Message)
	}
}

func TestLintAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.yaml", postTypes)
	writeFile(t, dir, "a.md", "---\n# @schema post.yaml Post\ntitle: A\ndate: x\n---\n")
	writeFile(t, dir, "b.md", "---\n# @schema post.yaml Post\ntitle: 42\ndate: x\n---\n")
	l := New(WithBaseDir(dir), WithJobs(2), WithLogger(logging.ForTest(t)))

	results, err := l.LintAll(testContext(t), []string{"a.md", "b.md", "missing.md"})
	if err != nil {
		t.Fatalf("LintAll() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %v, want 3", results)
	}
	wantTargets := []string{"a.md", "b.md", "missing.md"}
	for i, res := range results {
		if res.Target != wantTargets[i] {
			t.Errorf("results[%d].Target = %q, want %q (input order)", i, res.Target, wantTargets[i])
		}
	}
	if !results[0].Valid {
		t.Errorf("a.md = %+v, want valid", results[0])
	}
	if results[1].Valid || results[1].Errors[0].Code != validator.CodeTypeMismatch {
		t.Errorf("b.md = %+v, want type mismatch", results[1])
	}
	if results[2].Valid || results[2].Errors[0].Code != validator.CodeFileNotFound {
		t.Errorf("missing.md = %+v, want file not found", results[2])
	}
}

func TestLintAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()
	_, err := New(WithBaseDir(t.TempDir())).LintAll(ctx, []string{"a.md"})
	if err == nil {
		t.Fatal("LintAll() succeeded on a canceled context")
	}
}

func TestInvalidateCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "schema.yaml", "unrelated: true\n")
	l := newLinter(t, dir, Options{})
	doc := []byte("---\ntitle: Hi\ndate: x\n---\n")

	onlyCode(t, l.LintContent("doc.md", doc), validator.CodeNoSchemaInFile)

	writeFile(t, dir, "schema.yaml", postTypes)
	onlyCode(t, l.LintContent("doc.md", doc), validator.CodeNoSchemaInFile)

	l.InvalidateCache()
	if res := l.LintContent("doc.md", doc); !res.Valid {
		t.Fatalf("result = %+v, want valid after cache invalidation", res)
	}
}
