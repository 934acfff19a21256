// Package frontmatter extracts and parses the metadata block at the head of
// a Markdown document.
//
// A frontmatter block is delimited by lines containing only "---" (YAML) or
// "+++" (TOML) at the very start of the document. The block is parsed by a
// small built-in parser for the matching format into a generic
// [github.com/hatappo/frontmatter-lint/pkg/value.Mapping]; the parsers cover
// the subset of each format that appears in real-world frontmatter and are
// deliberately permissive: malformed lines truncate the enclosing structure
// instead of failing the whole document.
//
// # Basic Usage
//
//	doc, err := frontmatter.Extract(content)
//	if err != nil {
//		// opening delimiter without a closing one
//	}
//	if doc == nil {
//		// document has no frontmatter
//	}
//	data := doc.Parse()
//	title, _ := data.Get("title")
//
// # Schema Directives
//
// A comment line of the form
//
//	# @schema ./post.yaml Post
//
// inside the block names the schema to validate against. [Extract] records
// the directive (the last one wins if several are present) and strips
// directive lines from the data handed to the parser.
//
// # Supported Formats
//
// The YAML subset covers block mappings, block sequences, quoted and bare
// scalars, and comment lines. The TOML subset covers key/value pairs, table
// headers, inline tables, and arrays. Anchors, flow collections, multi-line
// strings, array-of-tables, and typed datetimes are not supported; date-like
// tokens stay strings. Both Unix (LF) and Windows (CRLF) line endings are
// handled.
package frontmatter
