package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/matst80/slask-table/pkg/table"
)

// NewPlainTable returns a borderless, left aligned table writer with two
// spaces between columns.
func NewPlainTable(w io.Writer) *tablewriter.Table {
	tbl := tablewriter.NewWriter(w)
	tbl.SetAutoWrapText(false)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tbl.SetAlignment(tablewriter.ALIGN_LEFT)
	tbl.SetCenterSeparator("")
	tbl.SetColumnSeparator("")
	tbl.SetRowSeparator("")
	tbl.SetHeaderLine(false)
	tbl.SetBorder(false)
	tbl.SetTablePadding("  ")
	tbl.SetNoWhiteSpace(true)
	return tbl
}

// Text writes the current page as an aligned plain text table.
func Text(w io.Writer, result *table.Result) error {
	tbl := NewPlainTable(w)

	headers := make([]string, len(result.VisibleColumns))
	for i, c := range result.VisibleColumns {
		header := c.Header
		if cs, ok := result.Column(c.Id); ok {
			header += cs.SortIndicator()
		}
		headers[i] = header
	}
	tbl.SetHeader(headers)

	for _, row := range result.Page {
		cells := make([]string, len(result.VisibleColumns))
		for i, c := range result.VisibleColumns {
			cells[i] = row.Cell(c)
		}
		if row.IsGrouped() && len(cells) > 0 {
			marker := "+"
			if row.Expanded {
				marker = "-"
			}
			cells[0] = fmt.Sprintf("%s%s %s (%d)", strings.Repeat("  ", row.Depth), marker, cells[0], row.LeafCount)
		} else if row.Depth > 0 && len(cells) > 0 {
			cells[0] = strings.Repeat("  ", row.Depth) + cells[0]
		}
		tbl.Append(cells)
	}
	tbl.Render()

	_, err := fmt.Fprintf(w, "Page %d of %d (%d of %d records)\n",
		result.PageIndex+1, result.PageCount, result.FilteredRecords, result.TotalRecords)
	return err
}
