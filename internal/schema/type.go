// Package schema models the structural types frontmatter is validated
// against and loads them from schema definition files.
//
// A [Type] is a language-agnostic shape: a primitive, a literal scalar, an
// array, an object with declared properties, or a union or intersection of
// other types. [Parse] reads definition documents and [File.Resolve]
// flattens a named definition into a plain tree with no references left, so
// walking it always terminates.
package schema

import (
	"strconv"
	"strings"

	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// Kind tags the variants of a Type.
type Kind int

const (
	String Kind = iota
	Number
	Boolean
	Null
	Undefined
	Any
	Unknown
	Literal
	Array
	Object
	Union
	Intersection
)

// Type describes an expected shape. Exactly the fields relevant to Kind are
// set: Lit for Literal, Elem for Array, Props for Object, Members for Union
// and Intersection.
type Type struct {
	Kind Kind

	// Name is the definition name the type was resolved from, if any.
	// It only affects how object types render in messages.
	Name string

	// Lit is the expected scalar for Literal types.
	Lit value.Value

	// Elem is the element type for Array types.
	Elem *Type

	// Props lists an Object's properties in declaration order. Names are
	// unique within one object.
	Props []Property

	// Members lists Union or Intersection members in declaration order.
	Members []*Type
}

// Property is one declared object property.
type Property struct {
	Name     string
	Type     *Type
	Optional bool
}

// NewLiteral returns a literal type expecting exactly v.
func NewLiteral(v value.Value) *Type {
	return &Type{Kind: Literal, Lit: v}
}

// NewArray returns an array type with the given element type.
func NewArray(elem *Type) *Type {
	return &Type{Kind: Array, Elem: elem}
}

// NewObject returns an object type declaring the given properties in order.
func NewObject(props ...Property) *Type {
	return &Type{Kind: Object, Props: props}
}

// NewUnion returns a union of the given members in order.
func NewUnion(members ...*Type) *Type {
	return &Type{Kind: Union, Members: members}
}

// NewIntersection returns an intersection of the given members in order.
func NewIntersection(members ...*Type) *Type {
	return &Type{Kind: Intersection, Members: members}
}

// String renders the type the way validation messages refer to it: primitive
// names, literals as JSON, "T[]" for arrays, "A | B" for unions, "A & B" for
// intersections. Objects render as their definition name when they have one
// and "object" otherwise.
func (t *Type) String() string {
	switch t.Kind {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	case Undefined:
		return "undefined"
	case Any:
		return "any"
	case Unknown:
		return "unknown"
	case Literal:
		return renderScalar(t.Lit)
	case Array:
		elem := t.Elem.String()
		if t.Elem.Kind == Union || t.Elem.Kind == Intersection {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	case Object:
		if t.Name != "" {
			return t.Name
		}
		return "object"
	case Union:
		return joinMembers(t.Members, " | ")
	case Intersection:
		return joinMembers(t.Members, " & ")
	}
	return "unknown"
}

func joinMembers(members []*Type, sep string) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = m.String()
	}
	return strings.Join(parts, sep)
}

func renderScalar(v value.Value) string {
	switch s := v.(type) {
	case value.String:
		return strconv.Quote(string(s))
	case value.Number:
		return s.String()
	case value.Bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}
