package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hatappo/frontmatter-lint/internal/errors"
	"github.com/hatappo/frontmatter-lint/internal/fileutil"
	typedef "github.com/hatappo/frontmatter-lint/internal/schema"
	"github.com/hatappo/frontmatter-lint/internal/schema/jsonschema"
	"github.com/hatappo/frontmatter-lint/internal/schema/rules"
)

// Kinds of schema documents reported by discovery.
const (
	kindTypes      = "types"
	kindRules      = "rules"
	kindJSONSchema = "json-schema"
	kindInvalid    = "invalid"
)

var (
	listInteractive bool
	listJSON        bool
)

func init() {
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false,
		"pick a schema document with a fuzzy finder")
	listCmd.Flags().BoolVar(&listJSON, "json", false,
		"output results as JSON")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List schema documents below a directory",
	Long: `List the schema documents found below a directory.

Discovery walks the directory tree, skipping hidden directories. A YAML
file counts as a schema document when it defines types or rule sets; a
JSON file counts when it is named schema.json.`,
	Example: `  # List schema documents below the current directory
  frontmatter-lint schema list

  # List schema documents for a content tree
  frontmatter-lint schema list docs/

  # Pick one interactively
  frontmatter-lint schema list docs/ --interactive

  See Also:
    frontmatter-lint schema show - Show a schema definition`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

// entry describes one discovered schema document.
type entry struct {
	Path  string   `json:"path"`
	Kind  string   `json:"kind"`
	Names []string `json:"definitions,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	info, err := os.Stat(dir)
	if err != nil {
		return errors.NewUserError(err, "Check the directory path")
	}
	if !info.IsDir() {
		return errors.NewUserError(errors.Newf("%s is not a directory", dir), "")
	}

	entries, err := discover(dir)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	out := cmd.OutOrStdout()

	if listInteractive {
		return runInteractiveList(out, entries)
	}
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding JSON")
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No schema documents found.")
		return nil
	}
	renderList(out, entries)
	return nil
}

// discover walks dir for schema documents, skipping hidden directories.
func discover(dir string) ([]entry, error) {
	var entries []entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if e := probe(path); e != nil {
			entries = append(entries, *e)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", dir)
	}
	return entries, nil
}

// probe classifies one file, returning nil for anything that is not a
// schema document.
func probe(path string) *entry {
	switch filepath.Ext(path) {
	case ".json":
		if filepath.Base(path) != "schema.json" {
			return nil
		}
		if _, err := jsonschema.Load(path); err != nil {
			return &entry{Path: path, Kind: kindInvalid}
		}
		return &entry{Path: path, Kind: kindJSONSchema}
	case ".yaml", ".yml":
		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			return nil
		}
		return probeYAML(path, data)
	}
	return nil
}

func probeYAML(path string, data []byte) *entry {
	types, terr := typedef.Parse(data)
	sets, rerr := rules.Parse(data)

	var names []string
	kind := ""
	if terr == nil && len(types.Names()) > 0 {
		kind = kindTypes
		names = append(names, types.Names()...)
	}
	if rerr == nil && len(sets.Names()) > 0 {
		if kind == "" {
			kind = kindRules
		} else {
			kind = kindTypes + "+" + kindRules
		}
		names = append(names, sets.Names()...)
	}
	if kind == "" {
		return nil
	}
	return &entry{Path: path, Kind: kind, Names: names}
}

func renderList(out io.Writer, entries []entry) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Path", "Kind", "Definitions"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, e := range entries {
		defs := strings.Join(e.Names, ", ")
		if defs == "" {
			defs = "-"
		}
		table.Append([]string{e.Path, e.Kind, defs})
	}
	table.Render()
}
