package server

import (
	"github.com/matst80/slask-table/pkg/table"
	"github.com/matst80/slask-table/pkg/types"
	"github.com/matst80/slask-table/pkg/widget"
)

type ColumnResponse struct {
	*types.Column
	Visible       bool           `json:"visible"`
	Sorted        bool           `json:"sorted"`
	SortDesc      bool           `json:"sortDesc"`
	SortIndicator string         `json:"sortIndicator,omitempty"`
	Grouped       bool           `json:"grouped"`
	Widget        *widget.Widget `json:"widget,omitempty"`
}

type RowResponse struct {
	Id         string            `json:"id"`
	Depth      int               `json:"depth"`
	Grouped    bool              `json:"grouped"`
	GroupById  string            `json:"groupById,omitempty"`
	GroupValue string            `json:"groupValue,omitempty"`
	LeafCount  int               `json:"leafCount,omitempty"`
	Expanded   bool              `json:"expanded,omitempty"`
	Cells      map[string]string `json:"cells"`
	Record     *types.Record     `json:"record,omitempty"`
}

type RowsResponse struct {
	State           string           `json:"state"`
	Columns         []ColumnResponse `json:"columns"`
	Rows            []RowResponse    `json:"rows"`
	PageIndex       int              `json:"pageIndex"`
	PageSize        int              `json:"pageSize"`
	PageCount       int              `json:"pageCount"`
	TotalRecords    int              `json:"totalRecords"`
	FilteredRecords int              `json:"filteredRecords"`
	TotalRows       int              `json:"totalRows"`
	CanPreviousPage bool             `json:"canPreviousPage"`
	CanNextPage     bool             `json:"canNextPage"`
}

type OptionsResponse struct {
	Id      string   `json:"id"`
	Options []string `json:"options"`
}

func columnResponses(result *table.Result, withWidgets bool) []ColumnResponse {
	ret := make([]ColumnResponse, 0, len(result.Columns))
	for _, cs := range result.Columns {
		c := ColumnResponse{
			Column:        cs.Column,
			Visible:       cs.Visible,
			Sorted:        cs.Sorted,
			SortDesc:      cs.SortDesc,
			SortIndicator: cs.SortIndicator(),
			Grouped:       cs.Grouped,
		}
		if withWidgets && cs.Column.CanFilter() {
			w := widget.Build(cs.Column, cs.FilterValue, cs.PreFilteredRows)
			c.Widget = &w
		}
		ret = append(ret, c)
	}
	return ret
}

func newRowsResponse(result *table.Result) RowsResponse {
	rows := make([]RowResponse, 0, len(result.Page))
	for _, row := range result.Page {
		cells := make(map[string]string, len(result.VisibleColumns))
		for _, c := range result.VisibleColumns {
			cells[c.Id] = row.Cell(c)
		}
		rows = append(rows, RowResponse{
			Id:         row.Id,
			Depth:      row.Depth,
			Grouped:    row.IsGrouped(),
			GroupById:  row.GroupById,
			GroupValue: row.GroupValue,
			LeafCount:  row.LeafCount,
			Expanded:   row.Expanded,
			Cells:      cells,
			Record:     row.Record,
		})
	}
	return RowsResponse{
		State:           result.State.QueryString(),
		Columns:         columnResponses(result, false),
		Rows:            rows,
		PageIndex:       result.PageIndex,
		PageSize:        result.PageSize,
		PageCount:       result.PageCount,
		TotalRecords:    result.TotalRecords,
		FilteredRecords: result.FilteredRecords,
		TotalRows:       result.TotalRows,
		CanPreviousPage: result.CanPreviousPage,
		CanNextPage:     result.CanNextPage,
	}
}
