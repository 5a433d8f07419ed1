package table

import (
	"fmt"
	"slices"

	"github.com/matst80/slask-table/pkg/types"
)

// The setters below never modify the state they are given. Changes to
// filters, grouping or sorting move back to the first page.

func acceptsValue(column *types.Column, value any) bool {
	switch value.(type) {
	case types.StringFilter:
		return column.Filter == types.WidgetDefault || column.Filter == types.WidgetSelect
	case types.RangeFilter:
		return column.Filter == types.WidgetRange
	case types.DateFilter:
		return column.Filter == types.WidgetDateRange
	}
	return false
}

func (t *Table) lookup(id string) (*types.Column, error) {
	c, ok := t.Column(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownColumn, id)
	}
	return c, nil
}

func SetGlobalFilter(state *types.TableState, text string) *types.TableState {
	next := state.Clone()
	next.GlobalFilter = text
	next.PageIndex = 0
	return next
}

// SetFilter sets the filter of one column. A nil value clears it. Plain
// strings and string slices are accepted for text and select columns.
func (t *Table) SetFilter(state *types.TableState, id string, value any) (*types.TableState, error) {
	column, err := t.lookup(id)
	if err != nil {
		return nil, err
	}
	if !column.CanFilter() {
		return nil, fmt.Errorf("%w: %s", types.ErrNotFilterable, id)
	}
	next := state.Clone()
	next.PageIndex = 0
	switch v := value.(type) {
	case nil:
		next.Remove(id)
		return next, nil
	case string:
		value = types.StringFilter{Id: id, Value: []string{v}}
	case []string:
		value = types.StringFilter{Id: id, Value: v}
	case types.StringFilter:
		v.Id = id
		value = v
	case types.RangeFilter:
		v.Id = id
		value = v
	case types.DateFilter:
		v.Id = id
		value = v
	}
	if !acceptsValue(column, value) {
		return nil, fmt.Errorf("filter value %T does not fit %s column %s", value, column.Filter, id)
	}
	next.Set(value)
	return next, nil
}

func SetAllFilters(state *types.TableState, filters types.Filters) *types.TableState {
	next := state.Clone()
	next.Filters = filters.Clone()
	next.PageIndex = 0
	return next
}

// SetPageSize keeps the row that was at the top of the page visible.
func SetPageSize(state *types.TableState, size int) (*types.TableState, error) {
	if !types.IsValidPageSize(size) {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidPageSize, size)
	}
	next := state.Clone()
	topRow := state.PageSize * state.PageIndex
	next.PageSize = size
	next.PageIndex = topRow / size
	return next, nil
}

func GotoPage(state *types.TableState, pageIndex int, pageCount int) *types.TableState {
	next := state.Clone()
	next.PageIndex = clampPage(pageIndex, pageCount)
	return next
}

func NextPage(state *types.TableState, pageCount int) *types.TableState {
	return GotoPage(state, state.PageIndex+1, pageCount)
}

func PreviousPage(state *types.TableState, pageCount int) *types.TableState {
	return GotoPage(state, state.PageIndex-1, pageCount)
}

// ToggleSortBy cycles a column through ascending, descending and unsorted.
// Without multi the column replaces any other sort.
func (t *Table) ToggleSortBy(state *types.TableState, id string, multi bool) (*types.TableState, error) {
	column, err := t.lookup(id)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if column.DisableSort {
		return next, nil
	}
	next.SortBy = toggleSort(next.SortBy, id, multi)
	next.PageIndex = 0
	return next, nil
}

func toggleSort(rules []types.SortRule, id string, multi bool) []types.SortRule {
	idx := slices.IndexFunc(rules, func(r types.SortRule) bool { return r.Id == id })
	if !multi {
		switch {
		case idx < 0:
			return []types.SortRule{{Id: id}}
		case !rules[idx].Desc:
			return []types.SortRule{{Id: id, Desc: true}}
		default:
			return []types.SortRule{}
		}
	}
	switch {
	case idx < 0:
		return append(rules, types.SortRule{Id: id})
	case !rules[idx].Desc:
		rules[idx].Desc = true
		return rules
	default:
		return slices.Delete(rules, idx, idx+1)
	}
}

func (t *Table) ToggleGroupBy(state *types.TableState, id string) (*types.TableState, error) {
	column, err := t.lookup(id)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	if column.DisableGroupBy {
		return next, nil
	}
	if idx := slices.Index(next.GroupBy, id); idx >= 0 {
		next.GroupBy = slices.Delete(next.GroupBy, idx, idx+1)
	} else {
		next.GroupBy = append(next.GroupBy, id)
	}
	next.Expanded = []string{}
	next.PageIndex = 0
	return next, nil
}

func (t *Table) ToggleHidden(state *types.TableState, id string) (*types.TableState, error) {
	if _, err := t.lookup(id); err != nil {
		return nil, err
	}
	next := state.Clone()
	if idx := slices.Index(next.Hidden, id); idx >= 0 {
		next.Hidden = slices.Delete(next.Hidden, idx, idx+1)
	} else {
		next.Hidden = append(next.Hidden, id)
	}
	return next, nil
}

// ToggleHideAll hides every column when all are shown, otherwise shows all.
func (t *Table) ToggleHideAll(state *types.TableState) *types.TableState {
	next := state.Clone()
	if len(next.Hidden) == 0 {
		next.Hidden = types.ColumnIds(t.Columns)
	} else {
		next.Hidden = []string{}
	}
	return next
}

func (t *Table) SetColumnOrder(state *types.TableState, ids []string) (*types.TableState, error) {
	for _, id := range ids {
		if _, err := t.lookup(id); err != nil {
			return nil, err
		}
	}
	next := state.Clone()
	next.ColumnOrder = slices.Clone(ids)
	return next, nil
}

func ToggleExpanded(state *types.TableState, key string) *types.TableState {
	next := state.Clone()
	if idx := slices.Index(next.Expanded, key); idx >= 0 {
		next.Expanded = slices.Delete(next.Expanded, idx, idx+1)
	} else {
		next.Expanded = append(next.Expanded, key)
	}
	return next
}
