package lint

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Format specifies the output format for lint reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatTable produces a per-file summary table.
	FormatTable Format = "table"
)

// Reporter formats and writes lint results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the results to the output.
func (r *Reporter) Report(results []Result) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(results)
	case FormatTable:
		return r.reportTable(results)
	default:
		return r.reportText(results)
	}
}

func (r *Reporter) reportJSON(results []Result) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(results), "encoding JSON report")
}

func (r *Reporter) reportText(results []Result) error {
	invalid := 0
	for _, res := range results {
		if res.Valid {
			continue
		}
		invalid++
		fmt.Fprintf(r.out, "%s %s\n", color.RedString("✗"), res.Target)
		for _, e := range res.Errors {
			fmt.Fprintf(r.out, "  • %s %s\n", e.Message, color.New(color.FgHiBlack).Sprintf("[%s]", e.Code))
		}
	}
	if invalid == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %d file(s) valid", len(results)))
		return nil
	}
	fmt.Fprintf(r.out, "\n%s\n", color.RedString("%d of %d file(s) invalid", invalid, len(results)))
	return nil
}

func (r *Reporter) reportTable(results []Result) error {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"File", "Status", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	invalid := 0
	for _, res := range results {
		status, detail := "ok", ""
		if !res.Valid {
			invalid++
			status = "fail"
			if len(res.Errors) > 0 {
				detail = res.Errors[0].Message
				if rest := len(res.Errors) - 1; rest > 0 {
					detail += fmt.Sprintf(" (+%d more)", rest)
				}
			}
		}
		table.Append([]string{res.Target, status, detail})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d file(s)", len(results)),
		fmt.Sprintf("%d fail", invalid),
		"",
	})
	table.Render()
	return nil
}

// Invalid counts the results that failed.
func Invalid(results []Result) int {
	n := 0
	for _, res := range results {
		if !res.Valid {
			n++
		}
	}
	return n
}
