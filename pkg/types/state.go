package types

import (
	"errors"
	"slices"
)

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrNotFilterable   = errors.New("column can not be filtered")
)

var PageSizes = []int{10, 20, 30, 40, 50}

const DefaultPageSize = 10

type SortRule struct {
	Id   string `json:"id"`
	Desc bool   `json:"desc"`
}

// TableState is the complete view state of a table. It is derived from the
// request on every call and never stored.
type TableState struct {
	Filters
	GlobalFilter string     `json:"globalFilter" schema:"q"`
	PageIndex    int        `json:"pageIndex" schema:"page"`
	PageSize     int        `json:"pageSize" schema:"size,default:10"`
	SortBy       []SortRule `json:"sortBy" schema:"-"`
	GroupBy      []string   `json:"groupBy" schema:"group"`
	Hidden       []string   `json:"hiddenColumns" schema:"hide"`
	ColumnOrder  []string   `json:"columnOrder" schema:"-"`
	Expanded     []string   `json:"expanded" schema:"expand"`
}

func NewTableState() *TableState {
	return &TableState{
		Filters: Filters{
			StringFilter: []StringFilter{},
			RangeFilter:  []RangeFilter{},
			DateFilter:   []DateFilter{},
		},
		PageSize: DefaultPageSize,
	}
}

func (s *TableState) Clone() *TableState {
	return &TableState{
		Filters:      s.Filters.Clone(),
		GlobalFilter: s.GlobalFilter,
		PageIndex:    s.PageIndex,
		PageSize:     s.PageSize,
		SortBy:       slices.Clone(s.SortBy),
		GroupBy:      slices.Clone(s.GroupBy),
		Hidden:       slices.Clone(s.Hidden),
		ColumnOrder:  slices.Clone(s.ColumnOrder),
		Expanded:     slices.Clone(s.Expanded),
	}
}

func IsValidPageSize(size int) bool {
	return slices.Contains(PageSizes, size)
}

func snapPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	for _, allowed := range PageSizes {
		if size <= allowed {
			return allowed
		}
	}
	return PageSizes[len(PageSizes)-1]
}

func (s *TableState) Sanitize() {
	s.PageIndex = max(s.PageIndex, 0)
	s.PageSize = snapPageSize(s.PageSize)
	s.SortBy = dedupeSort(s.SortBy)
	s.GroupBy = dedupe(s.GroupBy)
	s.Hidden = dedupe(s.Hidden)
	s.ColumnOrder = dedupe(s.ColumnOrder)
	s.Expanded = dedupe(s.Expanded)
	s.Filters.Sort()
}

// DropUnknown removes references to columns that are not in the table.
func (s *TableState) DropUnknown(columns []Column) {
	known := func(id string) bool {
		_, ok := FindColumn(columns, id)
		return ok
	}
	unknown := func(id string) bool { return !known(id) }
	s.SortBy = slices.DeleteFunc(s.SortBy, func(r SortRule) bool { return unknown(r.Id) })
	s.GroupBy = slices.DeleteFunc(s.GroupBy, unknown)
	s.Hidden = slices.DeleteFunc(s.Hidden, unknown)
	s.ColumnOrder = slices.DeleteFunc(s.ColumnOrder, unknown)
	s.StringFilter = slices.DeleteFunc(s.StringFilter, func(f StringFilter) bool { return unknown(f.Id) })
	s.RangeFilter = slices.DeleteFunc(s.RangeFilter, func(f RangeFilter) bool { return unknown(f.Id) })
	s.DateFilter = slices.DeleteFunc(s.DateFilter, func(f DateFilter) bool { return unknown(f.Id) })
}

func (s *TableState) IsHidden(id string) bool {
	return slices.Contains(s.Hidden, id)
}

func (s *TableState) IsExpanded(key string) bool {
	return slices.Contains(s.Expanded, key)
}

// SortDirection reports whether the column is sorted and in which direction.
func (s *TableState) SortDirection(id string) (sorted bool, desc bool) {
	for _, rule := range s.SortBy {
		if rule.Id == id {
			return true, rule.Desc
		}
	}
	return false, false
}

func dedupe(values []string) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" && !slices.Contains(ret, v) {
			ret = append(ret, v)
		}
	}
	return ret
}

func dedupeSort(rules []SortRule) []SortRule {
	ret := make([]SortRule, 0, len(rules))
	for _, r := range rules {
		if r.Id == "" || slices.ContainsFunc(ret, func(e SortRule) bool { return e.Id == r.Id }) {
			continue
		}
		ret = append(ret, r)
	}
	return ret
}
