// Package value defines the generic value tree shared by the frontmatter
// parsers and the schema backends.
//
// A [Value] is one of six kinds: string, number, boolean, null, array, or
// mapping. Parsers are the only producers; the tree is always acyclic because
// it is built from linear text. Mappings preserve insertion order and keep
// keys unique, which the validator relies on for deterministic error output.
package value

import (
	"math"
	"strconv"
)

// Kind identifies the runtime kind of a Value. The string form is what
// validation messages print, so mappings report as "object" to match the
// schema-side vocabulary.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBool    Kind = "boolean"
	KindNull    Kind = "null"
	KindArray   Kind = "array"
	KindMapping Kind = "object"
)

// Value is a single node of a parsed frontmatter tree.
type Value interface {
	// Kind reports the runtime kind of the node.
	Kind() Kind
	// Native converts the node to plain Go data: string, float64, bool,
	// nil, []any, or map[string]any. Mapping order is lost in the native
	// form; use the Mapping accessors when order matters.
	Native() any
}

// String is a scalar string value.
type String string

func (String) Kind() Kind       { return KindString }
func (s String) Native() any    { return string(s) }
func (s String) String() string { return string(s) }

// Number is a scalar numeric value. Both integers and decimals are carried
// as float64, mirroring the double-precision model of the source formats.
type Number float64

func (Number) Kind() Kind    { return KindNumber }
func (n Number) Native() any { return float64(n) }

// String renders the number without a trailing ".0" for integral values.
func (n Number) String() string {
	f := float64(n)
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Bool is a scalar boolean value.
type Bool bool

func (Bool) Kind() Kind    { return KindBool }
func (b Bool) Native() any { return bool(b) }

// Null is the explicit null value.
type Null struct{}

func (Null) Kind() Kind  { return KindNull }
func (Null) Native() any { return nil }

// Array is an ordered sequence of values.
type Array []Value

func (Array) Kind() Kind { return KindArray }

func (a Array) Native() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.Native()
	}
	return out
}

// Pair is a single key/value entry of a Mapping.
type Pair struct {
	Key   string
	Value Value
}

// Mapping is an insertion-ordered collection of unique keys.
type Mapping struct {
	pairs []Pair
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{}
}

func (*Mapping) Kind() Kind { return KindMapping }

func (m *Mapping) Native() any {
	out := make(map[string]any, len(m.pairs))
	for _, p := range m.pairs {
		out[p.Key] = p.Value.Native()
	}
	return out
}

// Set adds a key/value pair. Setting an existing key replaces its value in
// place, keeping the key's original position.
func (m *Mapping) Set(key string, v Value) {
	for i, p := range m.pairs {
		if p.Key == key {
			m.pairs[i].Value = v
			return
		}
	}
	m.pairs = append(m.pairs, Pair{Key: key, Value: v})
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	for _, p := range m.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.pairs)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns the entries in insertion order. The returned slice is shared
// with the mapping and must not be modified.
func (m *Mapping) Pairs() []Pair {
	return m.pairs
}

// Equal reports deep equality of two values. Mappings compare key order as
// well as content, so two trees are equal only if they would serialize
// identically.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case String:
		return av == b.(String)
	case Number:
		return av == b.(Number)
	case Bool:
		return av == b.(Bool)
	case Null:
		return true
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		bv := b.(*Mapping)
		if len(av.pairs) != len(bv.pairs) {
			return false
		}
		for i := range av.pairs {
			if av.pairs[i].Key != bv.pairs[i].Key {
				return false
			}
			if !Equal(av.pairs[i].Value, bv.pairs[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
