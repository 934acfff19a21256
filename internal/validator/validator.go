package validator

import (
	"strconv"

	"github.com/hatappo/frontmatter-lint/internal/schema"
	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// Options control validation strictness.
type Options struct {
	// AllowExtraProps accepts object keys the schema does not declare.
	// The default rejects them with EXTRA_PROPERTY errors.
	AllowExtraProps bool
}

// Validate walks v against t and returns every violation in deterministic
// order: declared properties in schema order with nested errors pre-order,
// then extra-property errors in the object's own key order.
func Validate(v value.Value, t *schema.Type, opts Options) []Error {
	return validate(v, t, opts, "")
}

func validate(v value.Value, t *schema.Type, opts Options, path string) []Error {
	switch t.Kind {
	case schema.Any, schema.Unknown:
		return nil

	case schema.String, schema.Number, schema.Boolean, schema.Null, schema.Undefined:
		if primitiveKind(t.Kind) == v.Kind() {
			return nil
		}
		return mismatch(path, t.String(), string(v.Kind()))

	case schema.Literal:
		if value.Equal(v, t.Lit) {
			return nil
		}
		return mismatch(path, t.String(), describe(v))

	case schema.Array:
		arr, ok := v.(value.Array)
		if !ok {
			return mismatch(path, t.String(), string(v.Kind()))
		}
		var errs []Error
		for i, item := range arr {
			errs = append(errs, validate(item, t.Elem, opts, path+"["+strconv.Itoa(i)+"]")...)
		}
		return errs

	case schema.Object:
		m, ok := v.(*value.Mapping)
		if !ok {
			return mismatch(path, "object", string(v.Kind()))
		}
		declared := make(map[string]bool, len(t.Props))
		var errs []Error
		for _, p := range t.Props {
			declared[p.Name] = true
			childPath := joinPath(path, p.Name)
			child, present := m.Get(p.Name)
			if !present {
				if !p.Optional {
					errs = append(errs, Error{
						Code:    CodeMissingProperty,
						Path:    childPath,
						Message: childPath + ": missing required property",
					})
				}
				continue
			}
			errs = append(errs, validate(child, p.Type, opts, childPath)...)
		}
		if !opts.AllowExtraProps {
			for _, key := range m.Keys() {
				if declared[key] {
					continue
				}
				childPath := joinPath(path, key)
				errs = append(errs, Error{
					Code:    CodeExtraProperty,
					Path:    childPath,
					Message: childPath + ": unexpected property",
				})
			}
		}
		return errs

	case schema.Union:
		// First satisfied member wins and its siblings' failures are
		// discarded. A value matching no member reports the union as a
		// whole, not every member's failures.
		for _, member := range t.Members {
			if len(validate(v, member, opts, path)) == 0 {
				return nil
			}
		}
		return mismatch(path, t.String(), describe(v))

	case schema.Intersection:
		// Every member must hold; failures from all members accumulate,
		// even when they overlap.
		var errs []Error
		for _, member := range t.Members {
			errs = append(errs, validate(v, member, opts, path)...)
		}
		return errs
	}
	return nil
}

func primitiveKind(k schema.Kind) value.Kind {
	switch k {
	case schema.String:
		return value.KindString
	case schema.Number:
		return value.KindNumber
	case schema.Boolean:
		return value.KindBool
	case schema.Null:
		return value.KindNull
	}
	// Undefined matches no parsed value.
	return ""
}

func mismatch(path, expected, actual string) []Error {
	return []Error{{
		Code:     CodeTypeMismatch,
		Path:     path,
		Expected: expected,
		Actual:   actual,
		Message:  renderPath(path) + ": expected " + expected + ", got " + actual,
	}}
}

// describe renders a value for a message: scalars as JSON, collections by
// their kind name.
func describe(v value.Value) string {
	switch t := v.(type) {
	case value.String:
		return strconv.Quote(string(t))
	case value.Number:
		return t.String()
	case value.Bool:
		if t {
			return "true"
		}
		return "false"
	case value.Null:
		return "null"
	default:
		return string(v.Kind())
	}
}

// joinPath appends a property segment with a dot; the root has no leading
// dot. Array indices are appended by the caller without a separator.
func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// renderPath is how a path reads inside a message; the root renders as
// "root" while the structured path field stays empty.
func renderPath(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
