package output

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable prints a pretty table to stdout
func RenderTable(headers []string, rows [][]interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	headerRow := table.Row{}
	for _, h := range headers {
		headerRow = append(headerRow, h)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}

	t.Render()
}

// RenderMaps renders []map rows as returned by the report endpoints. Columns
// are the union of keys, sorted for a stable layout.
func RenderMaps(rows []map[string]any) {
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return
	}

	colSet := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			colSet[k] = true
		}
	}
	headers := make([]string, 0, len(colSet))
	for k := range colSet {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(headers))
		for i, h := range headers {
			cells[i] = row[h]
		}
		out = append(out, cells)
	}

	RenderTable(headers, out)
}
