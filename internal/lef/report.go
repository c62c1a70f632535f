package lef

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// csvHeader is the fixed column set of the sizes report.
var csvHeader = table.Row{"library", "type", "name", "width_um", "height_um", "area_um2"}

// newTable builds a go-pretty table over the records, one row per cell.
func newTable(records []Record) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(csvHeader)
	for _, r := range records {
		t.AppendRow(table.Row{
			r.Library, r.Type, r.Name,
			formatUm(r.Width), formatUm(r.Height), formatUm(r.Area),
		})
	}
	return t
}

func formatUm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderTable writes the report as a bordered console table.
func RenderTable(w io.Writer, records []Record) {
	t := newTable(records)
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Render()
	fmt.Fprintf(w, "(%d cells)\n", len(records))
}

// RenderMarkdown writes the report as a markdown table.
func RenderMarkdown(w io.Writer, records []Record) {
	t := newTable(records)
	t.SetOutputMirror(w)
	t.RenderMarkdown()
}

// WriteCSV writes the report to a CSV file, creating parent directories as
// needed.
func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	csv := newTable(records).RenderCSV()
	if err := os.WriteFile(path, []byte(csv+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	return nil
}
