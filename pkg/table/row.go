package table

import (
	"strconv"

	"github.com/matst80/slask-table/pkg/types"
)

// Row is either a leaf wrapping a record or a group row produced by
// grouping. Group rows carry their sub rows and aggregated column values.
type Row struct {
	Id         string         `json:"id"`
	Record     *types.Record  `json:"record,omitempty"`
	Depth      int            `json:"depth"`
	GroupById  string         `json:"groupById,omitempty"`
	GroupValue string         `json:"groupValue,omitempty"`
	SubRows    []*Row         `json:"subRows,omitempty"`
	LeafCount  int            `json:"leafCount,omitempty"`
	Aggregates map[string]any `json:"aggregates,omitempty"`
	Expanded   bool           `json:"expanded,omitempty"`
	// text keys name and label the group, values hold the typed accessor
	// value of the first leaf for sorting
	groupKeys   map[string]string
	groupValues map[string]any
}

func leafRow(r *types.Record) *Row {
	return &Row{
		Id:     strconv.Itoa(int(r.Id)),
		Record: r,
	}
}

func (r *Row) IsGrouped() bool {
	return r.Record == nil
}

// Value returns what the row shows for a column: the record value for
// leaves, the group value or aggregate for group rows.
func (r *Row) Value(column *types.Column) any {
	if r.Record != nil {
		return column.Value(r.Record)
	}
	if v, ok := r.groupValues[column.Id]; ok {
		return v
	}
	if v, ok := r.Aggregates[column.Id]; ok {
		return v
	}
	return nil
}

// Cell is the formatted text of a column for this row.
func (r *Row) Cell(column *types.Column) string {
	if r.Record != nil {
		return column.Render(column.Value(r.Record))
	}
	if r.GroupById == column.Id {
		return r.GroupValue
	}
	if v, ok := r.groupKeys[column.Id]; ok {
		return v
	}
	if v, ok := r.Aggregates[column.Id]; ok {
		return formatAggregate(v)
	}
	return ""
}

func formatAggregate(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', 2, 64)
	case int:
		return strconv.Itoa(n)
	}
	return types.ValueString(v)
}

// Leaves returns every record below the row, or the row's own record.
func (r *Row) Leaves() []*types.Record {
	if r.Record != nil {
		return []*types.Record{r.Record}
	}
	ret := make([]*types.Record, 0, r.LeafCount)
	for _, sub := range r.SubRows {
		ret = append(ret, sub.Leaves()...)
	}
	return ret
}
