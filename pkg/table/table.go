package table

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/matst80/slask-table/pkg/filter"
	"github.com/matst80/slask-table/pkg/types"
)

var tracer = otel.Tracer("slask-table-pipeline")

// Table holds the immutable inputs of the pipeline: the records, the
// column descriptors and the filter implementations.
type Table struct {
	Columns  []types.Column
	Records  []*types.Record
	Registry *filter.Registry
}

func NewTable(records []types.Record, columns []types.Column, registry *filter.Registry) *Table {
	ptrs := make([]*types.Record, len(records))
	for i := range records {
		ptrs[i] = &records[i]
	}
	cols := make([]types.Column, len(columns))
	for i, c := range columns {
		cols[i] = c.WithDefaults()
	}
	if registry == nil {
		registry = filter.NewRegistry(filter.RegistryOptions{})
	}
	return &Table{
		Columns:  cols,
		Records:  ptrs,
		Registry: registry,
	}
}

func (t *Table) Column(id string) (*types.Column, bool) {
	return types.FindColumn(t.Columns, id)
}

// OrderedColumns applies the column order and moves grouped columns first.
func (t *Table) OrderedColumns(state *types.TableState) []*types.Column {
	ret := make([]*types.Column, 0, len(t.Columns))
	add := func(id string) {
		if c, ok := t.Column(id); ok && !slices.Contains(ret, c) {
			ret = append(ret, c)
		}
	}
	for _, id := range state.GroupBy {
		add(id)
	}
	for _, id := range state.ColumnOrder {
		add(id)
	}
	for i := range t.Columns {
		add(t.Columns[i].Id)
	}
	return ret
}

func (t *Table) VisibleColumns(state *types.TableState) []*types.Column {
	return slices.DeleteFunc(t.OrderedColumns(state), func(c *types.Column) bool {
		return state.IsHidden(c.Id)
	})
}

func spanned[V any](ctx context.Context, name string, fn func() V) V {
	_, span := tracer.Start(ctx, name)
	defer span.End()
	return fn()
}

// Apply runs the pipeline: column filters, global filter, grouping,
// sorting and pagination, in that order.
func (t *Table) Apply(ctx context.Context, input *types.TableState) *Result {
	ctx, span := tracer.Start(ctx, "Apply")
	defer span.End()

	state := input.Clone()
	state.Sanitize()
	state.DropUnknown(t.Columns)

	result := &Result{
		TotalRecords: len(t.Records),
		Columns:      make([]ColumnState, 0, len(t.Columns)),
	}

	filtered := spanned(ctx, "column filters", func() []*types.Record {
		return t.filterColumns(state, result)
	})

	visible := t.VisibleColumns(state)
	filtered = spanned(ctx, "global filter", func() []*types.Record {
		return filter.Global(filtered, visible, state.GlobalFilter)
	})
	result.FilteredRecords = len(filtered)

	rows := make([]*Row, len(filtered))
	for i, r := range filtered {
		rows[i] = leafRow(r)
	}

	rows = spanned(ctx, "group", func() []*Row {
		groupBy := make([]*types.Column, 0, len(state.GroupBy))
		for _, id := range state.GroupBy {
			if c, ok := t.Column(id); ok && !c.DisableGroupBy {
				groupBy = append(groupBy, c)
			}
		}
		return groupRows(rows, groupBy, t.Columns, 0, "", nil, nil)
	})

	rows = spanned(ctx, "sort", func() []*Row {
		rules := make([]sortColumn, 0, len(state.SortBy))
		for _, rule := range state.SortBy {
			if c, ok := t.Column(rule.Id); ok && !c.DisableSort {
				rules = append(rules, sortColumn{column: c, desc: rule.Desc})
			}
		}
		return sortRows(rows, rules)
	})
	result.Rows = rows

	flat := flattenExpanded(rows, state.IsExpanded)
	result.TotalRows = len(flat)
	result.PageSize = state.PageSize
	result.PageCount = pageCount(len(flat), state.PageSize)
	state.PageIndex = clampPage(state.PageIndex, result.PageCount)
	result.PageIndex = state.PageIndex
	result.Page = slicePage(flat, state.PageIndex, state.PageSize)
	result.CanPreviousPage = state.PageIndex > 0
	result.CanNextPage = state.PageIndex < result.PageCount-1
	result.VisibleColumns = visible
	result.State = state

	byId := make(map[string]ColumnState, len(result.Columns))
	for _, cs := range result.Columns {
		byId[cs.Column.Id] = cs
	}
	result.Columns = result.Columns[:0]
	for _, c := range t.OrderedColumns(state) {
		cs := byId[c.Id]
		cs.Visible = !state.IsHidden(c.Id)
		cs.Sorted, cs.SortDesc = state.SortDirection(c.Id)
		cs.SortIndex = slices.IndexFunc(state.SortBy, func(r types.SortRule) bool { return r.Id == c.Id })
		cs.Grouped = slices.Contains(state.GroupBy, c.Id)
		result.Columns = append(result.Columns, cs)
	}

	span.SetAttributes(
		attribute.Int("records", result.TotalRecords),
		attribute.Int("filtered", result.FilteredRecords),
		attribute.Int("rows", result.TotalRows),
	)
	return result
}

// filterColumns applies every column filter in column order. Each column
// remembers the records it saw before its own filter ran.
func (t *Table) filterColumns(state *types.TableState, result *Result) []*types.Record {
	rows := t.Records
	for i := range t.Columns {
		column := &t.Columns[i]
		cs := ColumnState{Column: column, PreFilteredRows: rows}
		if value, ok := state.Get(column.Id); ok && column.CanFilter() && acceptsValue(column, value) {
			cs.FilterValue = value
			rows = t.Registry.Get(column.FilterType)(rows, column, value)
		}
		result.Columns = append(result.Columns, cs)
	}
	return rows
}
