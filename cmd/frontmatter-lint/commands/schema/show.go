package schema

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hatappo/frontmatter-lint/internal/errors"
	"github.com/hatappo/frontmatter-lint/internal/fileutil"
	typedef "github.com/hatappo/frontmatter-lint/internal/schema"
	"github.com/hatappo/frontmatter-lint/internal/schema/jsonschema"
	"github.com/hatappo/frontmatter-lint/internal/schema/rules"
)

func init() {
	Cmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <path> [name]",
	Short: "Show a schema definition in resolved form",
	Long: `Show the definitions of one schema document.

YAML type definitions print with references resolved; rule sets print
their constraints per field path. For a JSON Schema the document's
metadata is shown. A name limits the output to one definition.`,
	Example: `  # Show every definition in a document
  frontmatter-lint schema show docs/schema.yaml

  # Show one named type
  frontmatter-lint schema show docs/schema.yaml post

  # Show JSON Schema metadata
  frontmatter-lint schema show docs/schema.json

  See Also:
    frontmatter-lint schema list - List schema documents`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 2 {
		name = args[1]
	}

	text, err := describe(args[0], name)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// describe renders the schema document at path. For YAML documents a
// non-empty name selects one definition; otherwise all are rendered.
func describe(path, name string) (string, error) {
	switch filepath.Ext(path) {
	case ".json":
		return describeJSON(path)
	case ".yaml", ".yml":
		return describeYAML(path, name)
	}
	return "", errors.Newf("unsupported schema file %q", path)
}

func describeJSON(path string) (string, error) {
	if _, err := jsonschema.Load(path); err != nil {
		return "", err
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: JSON Schema\n", path)

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", errors.Wrap(err, "parsing schema")
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return b.String(), nil
	}

	for _, key := range []string{"$schema", "title", "description", "type"} {
		if v, present := obj[key]; present {
			fmt.Fprintf(&b, "  %-12s %v\n", key+":", v)
		}
	}
	if props, present := obj["properties"].(map[string]any); present {
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "  %-12s %s\n", "properties:", strings.Join(names, ", "))
	}
	if req, present := obj["required"].([]any); present {
		parts := make([]string, 0, len(req))
		for _, r := range req {
			parts = append(parts, fmt.Sprint(r))
		}
		fmt.Fprintf(&b, "  %-12s %s\n", "required:", strings.Join(parts, ", "))
	}
	return b.String(), nil
}

func describeYAML(path, name string) (string, error) {
	types, terr := typedef.ParseFile(path)
	sets, rerr := rules.ParseFile(path)
	if terr != nil && rerr != nil {
		return "", terr
	}

	var b strings.Builder
	found := false

	if terr == nil {
		for _, n := range types.Names() {
			if name != "" && n != name {
				continue
			}
			resolved, err := types.Resolve(n)
			if err != nil {
				return "", err
			}
			b.WriteString(renderType(n, resolved))
			found = true
		}
	}

	if rerr == nil {
		for _, n := range sets.Names() {
			if name != "" && n != name {
				continue
			}
			set, _ := sets.Set(n)
			fmt.Fprintf(&b, "%s (rules):\n", n)
			for _, r := range set.Rules {
				fmt.Fprintf(&b, "  %s: %s\n", r.Path, describeRule(r))
			}
			found = true
		}
	}

	if !found {
		if name != "" {
			return "", errors.Wrapf(errors.ErrNotFound, "%q in %s", name, path)
		}
		return "", errors.Newf("no type or rule definitions in %s", path)
	}
	return b.String(), nil
}

// renderType expands the top level of a definition. Nested types render
// in their short form, so referenced objects appear by name.
func renderType(name string, t *typedef.Type) string {
	var b strings.Builder
	if t.Kind != typedef.Object || len(t.Props) == 0 {
		fmt.Fprintf(&b, "%s: %s\n", name, t)
		return b.String()
	}
	fmt.Fprintf(&b, "%s:\n", name)
	for _, p := range t.Props {
		key := p.Name
		if p.Optional {
			key += "?"
		}
		fmt.Fprintf(&b, "  %s: %s\n", key, p.Type)
	}
	return b.String()
}

// describeRule summarizes a rule's constraints on one line.
func describeRule(r rules.Rule) string {
	var parts []string
	if r.Required {
		parts = append(parts, "required")
	}
	if r.Kind != "" {
		parts = append(parts, r.Kind)
	}
	if r.Pattern != nil {
		parts = append(parts, "pattern "+r.Pattern.String())
	}
	if len(r.Enum) > 0 {
		parts = append(parts, "enum "+strings.Join(r.Enum, "|"))
	}
	if r.MinLen != nil {
		parts = append(parts, fmt.Sprintf("minLength %d", *r.MinLen))
	}
	if r.MaxLen != nil {
		parts = append(parts, fmt.Sprintf("maxLength %d", *r.MaxLen))
	}
	if r.Min != nil {
		parts = append(parts, "min "+strconv.FormatFloat(*r.Min, 'f', -1, 64))
	}
	if r.Max != nil {
		parts = append(parts, "max "+strconv.FormatFloat(*r.Max, 'f', -1, 64))
	}
	if r.MinItems != nil {
		parts = append(parts, fmt.Sprintf("minItems %d", *r.MinItems))
	}
	if r.MaxItems != nil {
		parts = append(parts, fmt.Sprintf("maxItems %d", *r.MaxItems))
	}
	if len(parts) == 0 {
		return "any"
	}
	return strings.Join(parts, ", ")
}
