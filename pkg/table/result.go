package table

import "github.com/matst80/slask-table/pkg/types"

type ColumnState struct {
	Column          *types.Column
	Visible         bool
	Sorted          bool
	SortDesc        bool
	SortIndex       int
	Grouped         bool
	FilterValue     any
	PreFilteredRows []*types.Record
}

// SortIndicator is the arrow shown next to a sorted column header.
func (c ColumnState) SortIndicator() string {
	if !c.Sorted {
		return ""
	}
	if c.SortDesc {
		return " 🔽"
	}
	return " 🔼"
}

type Result struct {
	State           *types.TableState
	Columns         []ColumnState
	VisibleColumns  []*types.Column
	Rows            []*Row
	Page            []*Row
	TotalRecords    int
	FilteredRecords int
	TotalRows       int
	PageIndex       int
	PageSize        int
	PageCount       int
	CanPreviousPage bool
	CanNextPage     bool
}

func (r *Result) Column(id string) (ColumnState, bool) {
	for _, c := range r.Columns {
		if c.Column.Id == id {
			return c, true
		}
	}
	return ColumnState{}, false
}

// AllColumnsVisible backs the checked state of the "toggle all" control.
func (r *Result) AllColumnsVisible() bool {
	return len(r.State.Hidden) == 0
}

func (r *Result) SomeColumnsHidden() bool {
	return len(r.State.Hidden) > 0 && len(r.State.Hidden) < len(r.Columns)
}
