package table

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/matst80/slask-table/pkg/types"
)

type sortColumn struct {
	column *types.Column
	desc   bool
}

func isMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case types.Timestamp:
		return !t.Valid
	case string:
		return t == ""
	}
	return false
}

func timeValue(v any) (time.Time, bool) {
	if ts, ok := v.(types.Timestamp); ok && ts.Valid {
		return ts.Time, true
	}
	return time.Time{}, false
}

// compareValues orders numbers and timestamps by value and everything else
// as case insensitive text. Missing values come last when ascending.
func compareValues(a, b any) int {
	aMissing, bMissing := isMissing(a), isMissing(b)
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	case bMissing:
		return -1
	}
	if an, ok := numberValue(a); ok {
		if bn, ok := numberValue(b); ok {
			return cmp.Compare(an, bn)
		}
	}
	if at, ok := timeValue(a); ok {
		if bt, ok := timeValue(b); ok {
			return at.Compare(bt)
		}
	}
	as, bs := types.ValueString(a), types.ValueString(b)
	if c := strings.Compare(strings.ToLower(as), strings.ToLower(bs)); c != 0 {
		return c
	}
	return strings.Compare(as, bs)
}

func compareRows(a, b *Row, rules []sortColumn) int {
	for _, rule := range rules {
		c := compareValues(a.Value(rule.column), b.Value(rule.column))
		if rule.desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// sortRows sorts rows at every depth. The sort is stable so rows that
// compare equal keep their incoming order.
func sortRows(rows []*Row, rules []sortColumn) []*Row {
	if len(rules) == 0 {
		return rows
	}
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b *Row) int {
		return compareRows(a, b, rules)
	})
	for _, r := range sorted {
		if len(r.SubRows) > 0 {
			r.SubRows = sortRows(r.SubRows, rules)
		}
	}
	return sorted
}
