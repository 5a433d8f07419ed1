package types

import (
	"slices"
	"strings"
	"time"
)

// StringFilter holds text for fuzzy text filters and the selected options
// for set membership filters.
type StringFilter struct {
	Id    string   `json:"id"`
	Value []string `json:"value"`
}

func (f StringFilter) Text() string {
	if len(f.Value) == 0 {
		return ""
	}
	return f.Value[0]
}

func (f StringFilter) IsEmpty() bool {
	return !slices.ContainsFunc(f.Value, func(v string) bool { return v != "" })
}

// RangeFilter is a numeric [min, max] pair, nil means the bound is unset.
type RangeFilter struct {
	Id  string   `json:"id"`
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

func (f RangeFilter) IsEmpty() bool {
	return f.Min == nil && f.Max == nil
}

// DateFilter is a [start, end] pair, nil means the bound is unset.
type DateFilter struct {
	Id    string     `json:"id"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

func (f DateFilter) IsEmpty() bool {
	return f.Start == nil && f.End == nil
}

type Filters struct {
	StringFilter []StringFilter `json:"string" schema:"-"`
	RangeFilter  []RangeFilter  `json:"range" schema:"-"`
	DateFilter   []DateFilter   `json:"date" schema:"-"`
}

func (f *Filters) Clone() Filters {
	strs := slices.Clone(f.StringFilter)
	for i := range strs {
		strs[i].Value = slices.Clone(strs[i].Value)
	}
	return Filters{
		StringFilter: strs,
		RangeFilter:  slices.Clone(f.RangeFilter),
		DateFilter:   slices.Clone(f.DateFilter),
	}
}

func (f *Filters) WithOut(id string) *Filters {
	result := f.Clone()
	result.Remove(id)
	return &result
}

func (f *Filters) Remove(id string) {
	f.StringFilter = slices.DeleteFunc(f.StringFilter, func(s StringFilter) bool { return s.Id == id })
	f.RangeFilter = slices.DeleteFunc(f.RangeFilter, func(s RangeFilter) bool { return s.Id == id })
	f.DateFilter = slices.DeleteFunc(f.DateFilter, func(s DateFilter) bool { return s.Id == id })
}

// Set replaces the filter for the value's column. Empty values clear it.
func (f *Filters) Set(value any) {
	switch v := value.(type) {
	case StringFilter:
		f.Remove(v.Id)
		if !v.IsEmpty() {
			f.StringFilter = append(f.StringFilter, v)
		}
	case RangeFilter:
		f.Remove(v.Id)
		if !v.IsEmpty() {
			f.RangeFilter = append(f.RangeFilter, v)
		}
	case DateFilter:
		f.Remove(v.Id)
		if !v.IsEmpty() {
			f.DateFilter = append(f.DateFilter, v)
		}
	}
}

// Get returns the active filter value for a column.
func (f *Filters) Get(id string) (any, bool) {
	for _, s := range f.StringFilter {
		if s.Id == id {
			return s, true
		}
	}
	for _, r := range f.RangeFilter {
		if r.Id == id {
			return r, true
		}
	}
	for _, d := range f.DateFilter {
		if d.Id == id {
			return d, true
		}
	}
	return nil, false
}

func (f *Filters) HasField(id string) bool {
	_, ok := f.Get(id)
	return ok
}

func (f *Filters) IsEmpty() bool {
	return len(f.StringFilter) == 0 && len(f.RangeFilter) == 0 && len(f.DateFilter) == 0
}

// Sort orders filters by column id so equal filter sets encode equally.
func (f *Filters) Sort() {
	slices.SortFunc(f.StringFilter, func(a, b StringFilter) int { return strings.Compare(a.Id, b.Id) })
	slices.SortFunc(f.RangeFilter, func(a, b RangeFilter) int { return strings.Compare(a.Id, b.Id) })
	slices.SortFunc(f.DateFilter, func(a, b DateFilter) int { return strings.Compare(a.Id, b.Id) })
}
