package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/matst80/slask-table/pkg/types"
)

func keep(records []*types.Record, match func(r *types.Record) bool) []*types.Record {
	ret := make([]*types.Record, 0, len(records))
	for _, r := range records {
		if match(r) {
			ret = append(ret, r)
		}
	}
	return ret
}

func textValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case types.StringFilter:
		return v.Text(), true
	}
	return "", false
}

// FuzzyText keeps records whose value, lower cased, contains the lower cased filter text.
func FuzzyText(records []*types.Record, column *types.Column, value any) []*types.Record {
	text, ok := textValue(value)
	if !ok || text == "" {
		return slices.Clone(records)
	}
	needle := strings.ToLower(text)
	return keep(records, func(r *types.Record) bool {
		return strings.Contains(strings.ToLower(types.ValueString(column.Value(r))), needle)
	})
}

// Includes keeps records whose value equals one of the selected options.
func Includes(records []*types.Record, column *types.Column, value any) []*types.Record {
	var options []string
	switch v := value.(type) {
	case string:
		options = []string{v}
	case []string:
		options = v
	case types.StringFilter:
		options = v.Value
	default:
		return slices.Clone(records)
	}
	if len(options) == 0 {
		return slices.Clone(records)
	}
	return keep(records, func(r *types.Record) bool {
		rowValue := types.ValueString(column.Value(r))
		return rowValue != "" && slices.Contains(options, rowValue)
	})
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func inBounds[V any](value V, lo, hi *V, strict bool, less func(a, b V) bool) bool {
	if strict && (lo == nil || hi == nil) {
		return false
	}
	if lo != nil && less(value, *lo) {
		return false
	}
	if hi != nil && less(*hi, value) {
		return false
	}
	return true
}

func lessFloat(a, b float64) bool { return a < b }

func lessTime(a, b time.Time) bool { return a.Before(b) }

// Between builds the inclusive numeric range predicate. Without strict bounds
// an unset side is unbounded.
func Between(strict bool) FilterFn {
	return func(records []*types.Record, column *types.Column, value any) []*types.Record {
		rng, ok := value.(types.RangeFilter)
		if !ok {
			return slices.Clone(records)
		}
		return keep(records, func(r *types.Record) bool {
			n, ok := numberValue(column.Value(r))
			return ok && inBounds(n, rng.Min, rng.Max, strict, lessFloat)
		})
	}
}

func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case types.Timestamp:
		return t.Time, t.Valid
	case *types.Timestamp:
		return t.Time, t.Valid
	case time.Time:
		return t, true
	}
	return time.Time{}, false
}

// DateBetween builds the inclusive date range predicate. Records with an
// unparseable timestamp never match.
func DateBetween(strict bool) FilterFn {
	return func(records []*types.Record, column *types.Column, value any) []*types.Record {
		rng, ok := value.(types.DateFilter)
		if !ok {
			return slices.Clone(records)
		}
		return keep(records, func(r *types.Record) bool {
			t, ok := timeValue(column.Value(r))
			return ok && inBounds(t, rng.Start, rng.End, strict, lessTime)
		})
	}
}

// Global keeps records where any of the given columns contains text.
func Global(records []*types.Record, columns []*types.Column, text string) []*types.Record {
	if text == "" {
		return slices.Clone(records)
	}
	needle := strings.ToLower(text)
	return keep(records, func(r *types.Record) bool {
		for _, c := range columns {
			if strings.Contains(strings.ToLower(types.ValueString(c.Value(r))), needle) {
				return true
			}
		}
		return false
	})
}
