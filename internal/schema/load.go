package schema

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hatappo/frontmatter-lint/internal/fileutil"
	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// NotFoundError reports a reference to a definition that does not exist in
// the file.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("type %q not found", e.Name)
}

// File is a parsed type-definition document: named type expressions under a
// top-level "types" key, kept in declaration order. Expressions stay raw
// until Resolve flattens them.
type File struct {
	names []string
	exprs map[string]*yaml.Node
}

// ParseFile reads and parses a type-definition document.
func ParseFile(path string) (*File, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a type-definition document. A document without a "types"
// section parses to an empty file; callers decide whether that is an error.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}
	f := &File{exprs: make(map[string]*yaml.Node)}
	if len(doc.Content) == 0 {
		return f, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema document must be a mapping, line %d", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "types" {
			continue
		}
		section := root.Content[i+1]
		if section.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("types section must be a mapping, line %d", section.Line)
		}
		for j := 0; j+1 < len(section.Content); j += 2 {
			name := section.Content[j].Value
			if _, dup := f.exprs[name]; dup {
				return nil, fmt.Errorf("type %q defined twice, line %d", name, section.Content[j].Line)
			}
			f.names = append(f.names, name)
			f.exprs[name] = section.Content[j+1]
		}
	}
	return f, nil
}

// Names returns the definition names in declaration order.
func (f *File) Names() []string {
	return f.names
}

// Has reports whether a definition exists.
func (f *File) Has(name string) bool {
	_, ok := f.exprs[name]
	return ok
}

// Resolve flattens the named definition into a plain Type tree. References
// are expanded in place; re-entering a definition already on the descent
// path substitutes Any, so self-referential definitions terminate while
// diamond-shaped reference graphs still expand fully. A reference to a
// missing definition returns a NotFoundError.
func (f *File) Resolve(name string) (*Type, error) {
	r := &resolver{file: f, active: make(map[string]bool)}
	return r.definition(name)
}

type resolver struct {
	file   *File
	active map[string]bool
}

func (r *resolver) definition(name string) (*Type, error) {
	expr, ok := r.file.exprs[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if r.active[name] {
		return &Type{Kind: Any}, nil
	}
	r.active[name] = true
	defer delete(r.active, name)

	t, err := r.expr(expr)
	if err != nil {
		return nil, err
	}
	if t.Kind == Object && t.Name == "" {
		t.Name = name
	}
	return t, nil
}

var primitives = map[string]Kind{
	"string":    String,
	"number":    Number,
	"boolean":   Boolean,
	"null":      Null,
	"undefined": Undefined,
	"any":       Any,
	"unknown":   Unknown,
}

// expr flattens one type expression: a scalar is a primitive name or a
// reference, a mapping is recognized by its distinguishing key.
func (r *resolver) expr(node *yaml.Node) (*Type, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if k, ok := primitives[node.Value]; ok {
			return &Type{Kind: k}, nil
		}
		return r.definition(node.Value)

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i].Value, node.Content[i+1]
			switch key {
			case "value":
				lit, err := literal(val)
				if err != nil {
					return nil, err
				}
				return NewLiteral(lit), nil
			case "items":
				elem, err := r.expr(val)
				if err != nil {
					return nil, err
				}
				return NewArray(elem), nil
			case "properties":
				return r.object(val)
			case "anyOf":
				members, err := r.members(val)
				if err != nil {
					return nil, err
				}
				return NewUnion(members...), nil
			case "allOf":
				members, err := r.members(val)
				if err != nil {
					return nil, err
				}
				return NewIntersection(members...), nil
			case "ref":
				return r.definition(val.Value)
			}
		}
		return nil, fmt.Errorf("type expression needs one of value, items, properties, anyOf, allOf, ref, line %d", node.Line)
	}
	return nil, fmt.Errorf("unsupported type expression, line %d", node.Line)
}

func (r *resolver) object(node *yaml.Node) (*Type, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("properties must be a mapping, line %d", node.Line)
	}
	t := &Type{Kind: Object}
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		optional := strings.HasSuffix(name, "?")
		if optional {
			name = strings.TrimSuffix(name, "?")
		}
		if seen[name] {
			return nil, fmt.Errorf("property %q declared twice, line %d", name, node.Content[i].Line)
		}
		seen[name] = true
		pt, err := r.expr(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		t.Props = append(t.Props, Property{Name: name, Type: pt, Optional: optional})
	}
	return t, nil
}

func (r *resolver) members(node *yaml.Node) ([]*Type, error) {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return nil, fmt.Errorf("member list must be a non-empty sequence, line %d", node.Line)
	}
	members := make([]*Type, 0, len(node.Content))
	for _, item := range node.Content {
		m, err := r.expr(item)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// literal converts a scalar node into the exact value it denotes, using the
// node's resolved YAML tag.
func literal(node *yaml.Node) (value.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("literal value must be a scalar, line %d", node.Line)
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		n, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad numeric literal %q, line %d", node.Value, node.Line)
		}
		return value.Number(n), nil
	case "!!bool":
		return value.Bool(node.Value == "true" || node.Value == "True" || node.Value == "TRUE"), nil
	case "!!null":
		return value.Null{}, nil
	default:
		return value.String(node.Value), nil
	}
}
