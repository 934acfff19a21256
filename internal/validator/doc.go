// Package validator matches a parsed frontmatter value against a structural
// type and reports every violation as a typed, path-qualified error.
//
// Validation is a pure recursive walk with no I/O and no shared state, so
// callers may validate many documents concurrently. Error order is
// deterministic: declared properties in schema order, nested errors
// pre-order, then strict-mode extra-property errors in the object's own key
// order. Unions report a single summarized mismatch instead of every
// member's failures; intersections accumulate all members' failures.
//
// # Core Concepts
//
//   - [Code]: Stable string identifying a failure class, safe for tooling
//     to match on.
//   - [Error]: One finding with message, path, and expected/actual detail.
//   - [Options]: The strictness switch for undeclared object keys.
//
// # Basic Usage
//
//	errs := validator.Validate(doc.Parse(), postType, validator.Options{})
//	for _, e := range errs {
//		fmt.Println(e.Message)
//	}
package validator
