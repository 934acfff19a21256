// Package rules implements the rule-set schema backend: named sets of
// field-path constraints loaded from a document's "rules" section.
//
// A rule addresses one dotted field path and bundles constraints: required,
// kind, pattern, enum, minLength, maxLength, min, max, minItems, maxItems.
// Constraints apply to values of their matching kind and are skipped
// otherwise; pairing them with kind enforces the kind itself. All
// violations carry the rule backend's single error code.
package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/hatappo/frontmatter-lint/internal/fileutil"
	"github.com/hatappo/frontmatter-lint/internal/validator"
	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// Rule is the constraint bundle for one field path.
type Rule struct {
	Path     string
	Required bool
	Kind     string
	Pattern  *regexp.Regexp
	Enum     []string
	MinLen   *int
	MaxLen   *int
	Min      *float64
	Max      *float64
	MinItems *int
	MaxItems *int
}

// Set is a named, ordered list of rules. It validates a document by
// checking every rule in declaration order.
type Set struct {
	Name  string
	Rules []Rule
}

// File is a parsed rule-set document: named sets under a top-level "rules"
// key in declaration order.
type File struct {
	names []string
	sets  map[string]*Set
}

// ParseFile reads and parses a rule-set document.
func ParseFile(path string) (*File, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

var validKinds = []string{"string", "number", "boolean", "null", "array", "object"}

type ruleSpec struct {
	Required bool     `yaml:"required"`
	Kind     string   `yaml:"kind"`
	Pattern  string   `yaml:"pattern"`
	Enum     []string `yaml:"enum"`
	MinLen   *int     `yaml:"minLength"`
	MaxLen   *int     `yaml:"maxLength"`
	Min      *float64 `yaml:"min"`
	Max      *float64 `yaml:"max"`
	MinItems *int     `yaml:"minItems"`
	MaxItems *int     `yaml:"maxItems"`
}

// Parse parses a rule-set document. A document without a "rules" section
// parses to an empty file; callers decide whether that is an error.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing rules document: %w", err)
	}
	f := &File{sets: make(map[string]*Set)}
	if len(doc.Content) == 0 {
		return f, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("rules document must be a mapping, line %d", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "rules" {
			continue
		}
		section := root.Content[i+1]
		if section.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("rules section must be a mapping, line %d", section.Line)
		}
		for j := 0; j+1 < len(section.Content); j += 2 {
			name := section.Content[j].Value
			if _, dup := f.sets[name]; dup {
				return nil, fmt.Errorf("rule set %q defined twice, line %d", name, section.Content[j].Line)
			}
			set, err := parseSet(name, section.Content[j+1])
			if err != nil {
				return nil, err
			}
			f.names = append(f.names, name)
			f.sets[name] = set
		}
	}
	return f, nil
}

func parseSet(name string, node *yaml.Node) (*Set, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("rule set %q must be a mapping, line %d", name, node.Line)
	}
	set := &Set{Name: name}
	for i := 0; i+1 < len(node.Content); i += 2 {
		path := node.Content[i].Value
		var spec ruleSpec
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return nil, fmt.Errorf("rule %q in set %q: %w", path, name, err)
		}
		rule := Rule{
			Path:     path,
			Required: spec.Required,
			Kind:     spec.Kind,
			Enum:     spec.Enum,
			MinLen:   spec.MinLen,
			MaxLen:   spec.MaxLen,
			Min:      spec.Min,
			Max:      spec.Max,
			MinItems: spec.MinItems,
			MaxItems: spec.MaxItems,
		}
		if spec.Kind != "" && !slices.Contains(validKinds, spec.Kind) {
			return nil, fmt.Errorf("rule %q in set %q: unknown kind %q", path, name, spec.Kind)
		}
		if spec.Pattern != "" {
			re, err := regexp.Compile(spec.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %q in set %q: bad pattern: %w", path, name, err)
			}
			rule.Pattern = re
		}
		set.Rules = append(set.Rules, rule)
	}
	return set, nil
}

// Names returns the set names in declaration order.
func (f *File) Names() []string {
	return f.names
}

// Has reports whether a set exists.
func (f *File) Has(name string) bool {
	_, ok := f.sets[name]
	return ok
}

// Set returns the named rule set.
func (f *File) Set(name string) (*Set, bool) {
	s, ok := f.sets[name]
	return s, ok
}

// Validate checks every rule against the document and returns all
// violations in rule declaration order.
func (s *Set) Validate(v value.Value) []validator.Error {
	m, ok := v.(*value.Mapping)
	if !ok {
		return []validator.Error{violation("", "expected object, got "+string(v.Kind()))}
	}
	var errs []validator.Error
	for i := range s.Rules {
		errs = append(errs, s.Rules[i].check(m)...)
	}
	return errs
}

func (r *Rule) check(m *value.Mapping) []validator.Error {
	v, ok := lookup(m, r.Path)
	if !ok {
		if r.Required {
			return []validator.Error{violation(r.Path, "required field missing")}
		}
		return nil
	}

	var errs []validator.Error
	if r.Kind != "" && string(v.Kind()) != r.Kind {
		// Further constraints would only cascade on the wrong kind.
		return []validator.Error{{
			Code:     validator.CodeRuleViolation,
			Path:     r.Path,
			Message:  r.Path + ": expected " + r.Kind + ", got " + string(v.Kind()),
			Expected: r.Kind,
			Actual:   string(v.Kind()),
		}}
	}

	if s, ok := v.(value.String); ok {
		str := string(s)
		if r.Pattern != nil && !r.Pattern.MatchString(str) {
			errs = append(errs, violation(r.Path, "value "+strconv.Quote(str)+" does not match pattern "+r.Pattern.String()))
		}
		if len(r.Enum) > 0 && !slices.Contains(r.Enum, str) {
			errs = append(errs, violation(r.Path, "must be one of "+strings.Join(r.Enum, ", ")+", got "+strconv.Quote(str)))
		}
		n := utf8.RuneCountInString(str)
		if r.MinLen != nil && n < *r.MinLen {
			errs = append(errs, violation(r.Path, "length must be at least "+strconv.Itoa(*r.MinLen)))
		}
		if r.MaxLen != nil && n > *r.MaxLen {
			errs = append(errs, violation(r.Path, "length must be at most "+strconv.Itoa(*r.MaxLen)))
		}
	}

	if n, ok := v.(value.Number); ok {
		if r.Min != nil && float64(n) < *r.Min {
			errs = append(errs, violation(r.Path, "must be at least "+formatFloat(*r.Min)))
		}
		if r.Max != nil && float64(n) > *r.Max {
			errs = append(errs, violation(r.Path, "must be at most "+formatFloat(*r.Max)))
		}
	}

	if arr, ok := v.(value.Array); ok {
		if r.MinItems != nil && len(arr) < *r.MinItems {
			errs = append(errs, violation(r.Path, "must have at least "+strconv.Itoa(*r.MinItems)+" items"))
		}
		if r.MaxItems != nil && len(arr) > *r.MaxItems {
			errs = append(errs, violation(r.Path, "must have at most "+strconv.Itoa(*r.MaxItems)+" items"))
		}
	}

	return errs
}

func lookup(m *value.Mapping, path string) (value.Value, bool) {
	var cur value.Value = m
	for _, seg := range strings.Split(path, ".") {
		mm, ok := cur.(*value.Mapping)
		if !ok {
			return nil, false
		}
		if cur, ok = mm.Get(seg); !ok {
			return nil, false
		}
	}
	return cur, true
}

func violation(path, detail string) validator.Error {
	loc := path
	if loc == "" {
		loc = "root"
	}
	return validator.Error{
		Code:    validator.CodeRuleViolation,
		Path:    path,
		Message: loc + ": " + detail,
	}
}

func formatFloat(f float64) string {
	return value.Number(f).String()
}
