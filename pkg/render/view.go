// Package render turns a computed table result into an HTML page or a
// plain text table.
package render

import (
	"fmt"

	"github.com/matst80/slask-table/pkg/table"
	"github.com/matst80/slask-table/pkg/types"
	"github.com/matst80/slask-table/pkg/widget"
)

// ActionPath receives the filter forms and redirects to the resulting state.
const ActionPath = "/action"

type ColumnToggle struct {
	Id      string
	Header  string
	Visible bool
	Href    string
}

type HeaderCell struct {
	Id            string
	Header        string
	SortIndicator string
	SortHref      string
	GroupHref     string
	Grouped       bool
	Widget        *widget.Widget
}

type BodyRow struct {
	Grouped    bool
	Depth      int
	Expanded   bool
	ExpandHref string
	GroupLabel string
	GroupIndex int
	LeafCount  int
	Cells      []string
}

type PageSizeOption struct {
	Size     int
	Selected bool
}

type View struct {
	Title           string
	State           string
	GlobalFilter    string
	ToggleAll       ColumnToggle
	Toggles         []ColumnToggle
	Headers         []HeaderCell
	Rows            []BodyRow
	PageNumber      int
	PageCount       int
	PreviousHref    string
	NextHref        string
	CanPreviousPage bool
	CanNextPage     bool
	PageSizes       []PageSizeOption
	TotalRecords    int
	FilteredRecords int
	ActionPath      string
}

func href(state *types.TableState) string {
	qs := state.QueryString()
	if qs == "" {
		return "?"
	}
	return "?" + qs
}

func hrefOrEmpty(state *types.TableState, err error) string {
	if err != nil {
		return ""
	}
	return href(state)
}

// NewView builds the page model. Every link carries the complete next state.
func NewView(tbl *table.Table, result *table.Result) *View {
	state := result.State
	view := &View{
		Title:           "Products",
		State:           state.QueryString(),
		GlobalFilter:    state.GlobalFilter,
		PageNumber:      result.PageIndex + 1,
		PageCount:       result.PageCount,
		CanPreviousPage: result.CanPreviousPage,
		CanNextPage:     result.CanNextPage,
		PreviousHref:    href(table.PreviousPage(state, result.PageCount)),
		NextHref:        href(table.NextPage(state, result.PageCount)),
		TotalRecords:    result.TotalRecords,
		FilteredRecords: result.FilteredRecords,
		ActionPath:      ActionPath,
		ToggleAll: ColumnToggle{
			Id:      "all",
			Header:  "Toggle All",
			Visible: result.AllColumnsVisible(),
			Href:    href(tbl.ToggleHideAll(state)),
		},
	}

	for _, size := range types.PageSizes {
		view.PageSizes = append(view.PageSizes, PageSizeOption{Size: size, Selected: size == state.PageSize})
	}

	for _, cs := range result.Columns {
		view.Toggles = append(view.Toggles, ColumnToggle{
			Id:      cs.Column.Id,
			Header:  cs.Column.Header,
			Visible: cs.Visible,
			Href:    hrefOrEmpty(tbl.ToggleHidden(state, cs.Column.Id)),
		})
		if !cs.Visible {
			continue
		}
		header := HeaderCell{
			Id:            cs.Column.Id,
			Header:        cs.Column.Header,
			SortIndicator: cs.SortIndicator(),
			Grouped:       cs.Grouped,
		}
		if !cs.Column.DisableSort {
			header.SortHref = hrefOrEmpty(tbl.ToggleSortBy(state, cs.Column.Id, false))
		}
		if !cs.Column.DisableGroupBy {
			header.GroupHref = hrefOrEmpty(tbl.ToggleGroupBy(state, cs.Column.Id))
		}
		if cs.Column.CanFilter() {
			w := widget.Build(cs.Column, cs.FilterValue, cs.PreFilteredRows)
			header.Widget = &w
		}
		view.Headers = append(view.Headers, header)
	}

	for _, row := range result.Page {
		view.Rows = append(view.Rows, newBodyRow(state, row, result.VisibleColumns))
	}
	return view
}

func newBodyRow(state *types.TableState, row *table.Row, columns []*types.Column) BodyRow {
	body := BodyRow{
		Grouped:   row.IsGrouped(),
		Depth:     row.Depth,
		Expanded:  row.Expanded,
		LeafCount: row.LeafCount,
		Cells:     make([]string, len(columns)),
	}
	if body.Grouped {
		body.ExpandHref = href(table.ToggleExpanded(state, row.Id))
		body.GroupLabel = fmt.Sprintf("%s (%d)", row.GroupValue, row.LeafCount)
	}
	for i, c := range columns {
		body.Cells[i] = row.Cell(c)
		if c.Id == row.GroupById {
			body.GroupIndex = i
		}
	}
	return body
}
