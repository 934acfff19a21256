package rules

import (
	"strings"
	"testing"

	"github.com/hatappo/frontmatter-lint/internal/validator"
	"github.com/hatappo/frontmatter-lint/pkg/frontmatter"
	"github.com/hatappo/frontmatter-lint/pkg/value"
)

const postRules = `rules:
  post:
    title:
      required: true
      kind: string
      minLength: 3
      maxLength: 40
    status:
      enum: [draft, published]
    views:
      kind: number
      min: 0
      max: 1000000
    tags:
      kind: array
      minItems: 1
      maxItems: 5
    slug:
      pattern: "^[a-z0-9-]+$"
    author.name:
      required: true
  page:
    title:
      required: true
`

func parseSets(t *testing.T) *File {
	t.Helper()
	f, err := Parse([]byte(postRules))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return f
}

func TestParseNames(t *testing.T) {
	f := parseSets(t)
	got := f.Names()
	want := []string{"post", "page"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !f.Has("post") || f.Has("missing") {
		t.Error("Has() membership mismatch")
	}
}

func TestSetValidate(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		messages []string
	}{
		{
			name: "valid document",
			doc: `title: Hello World
status: draft
views: 12
tags:
  - go
slug: hello-world
author:
  name: Ann
`,
			messages: nil,
		},
		{
			name: "missing required fields",
			doc:  `status: draft`,
			messages: []string{
				"title: required field missing",
				"author.name: required field missing",
			},
		},
		{
			name: "title too short",
			doc: `title: Hi
author:
  name: Ann
`,
			messages: []string{"title: length must be at least 3"},
		},
		{
			name: "enum mismatch",
			doc: `title: Hello
status: pending
author:
  name: Ann
`,
			messages: []string{`status: must be one of draft, published, got "pending"`},
		},
		{
			name: "number out of range",
			doc: `title: Hello
views: -3
author:
  name: Ann
`,
			messages: []string{"views: must be at least 0"},
		},
		{
			name: "too few items",
			doc: `title: Hello
tags: []
author:
  name: Ann
`,
			messages: []string{"tags: must have at least 1 items"},
		},
		{
			name: "pattern mismatch",
			doc: `title: Hello
slug: Hello World
author:
  name: Ann
`,
			messages: []string{`slug: value "Hello World" does not match pattern ^[a-z0-9-]+$`},
		},
		{
			name: "kind mismatch short-circuits",
			doc: `title: 42
author:
  name: Ann
`,
			messages: []string{"title: expected string, got number"},
		},
		{
			name: "constraints skip other kinds",
			doc: `title: Hello
slug:
  - not-a-string
author:
  name: Ann
`,
			messages: nil,
		},
		{
			name: "violations follow rule order",
			doc: `status: pending
views: -1
`,
			messages: []string{
				"title: required field missing",
				`status: must be one of draft, published, got "pending"`,
				"views: must be at least 0",
				"author.name: required field missing",
			},
		},
	}

	set, ok := parseSets(t).Set("post")
	if !ok {
		t.Fatal(`Set("post") not found`)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := set.Validate(frontmatter.ParseYAML(tt.doc))
			if len(errs) != len(tt.messages) {
				t.Fatalf("Validate() = %v, want %d errors", errs, len(tt.messages))
			}
			for i, e := range errs {
				if e.Message != tt.messages[i] {
					t.Errorf("error[%d] = %q, want %q", i, e.Message, tt.messages[i])
				}
				if e.Code != validator.CodeRuleViolation {
					t.Errorf("error[%d] code = %q, want %q", i, e.Code, validator.CodeRuleViolation)
				}
			}
		})
	}
}

func TestValidateKindFields(t *testing.T) {
	set, _ := parseSets(t).Set("post")
	errs := set.Validate(frontmatter.ParseYAML("title: 42\nauthor:\n  name: Ann\n"))
	if len(errs) != 1 {
		t.Fatalf("Validate() = %v, want 1 error", errs)
	}
	if errs[0].Expected != "string" || errs[0].Actual != "number" {
		t.Errorf("expected/actual = %q/%q, want string/number", errs[0].Expected, errs[0].Actual)
	}
	if errs[0].Path != "title" {
		t.Errorf("path = %q, want %q", errs[0].Path, "title")
	}
}

func TestValidateNonObject(t *testing.T) {
	set, _ := parseSets(t).Set("page")
	errs := set.Validate(value.String("not a document"))
	if len(errs) != 1 {
		t.Fatalf("Validate() = %v, want 1 error", errs)
	}
	if errs[0].Message != "root: expected object, got string" {
		t.Errorf("message = %q", errs[0].Message)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "not yaml",
			doc:  "rules: [unclosed\n",
			want: "parsing rules document",
		},
		{
			name: "rules section not a mapping",
			doc:  "rules: 42\n",
			want: "rules section must be a mapping",
		},
		{
			name: "set not a mapping",
			doc:  "rules:\n  post: [a, b]\n",
			want: `rule set "post" must be a mapping`,
		},
		{
			name: "duplicate set",
			doc:  "rules:\n  post:\n    title: {required: true}\n  post:\n    title: {required: true}\n",
			want: `rule set "post" defined twice`,
		},
		{
			name: "bad pattern",
			doc:  "rules:\n  post:\n    slug:\n      pattern: '['\n",
			want: "bad pattern",
		},
		{
			name: "unknown kind",
			doc:  "rules:\n  post:\n    title:\n      kind: integer\n",
			want: "unknown kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestMissingRulesSection(t *testing.T) {
	f, err := Parse([]byte("types:\n  Post: string\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Names()) != 0 {
		t.Errorf("Names() = %v, want empty", f.Names())
	}
}
