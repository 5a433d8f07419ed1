// Package widget builds the view models of the column filter controls from
// the current filter value and the rows the column saw before filtering.
package widget

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/matst80/slask-table/pkg/types"
)

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Input is a single form control of a widget.
type Input struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Placeholder string `json:"placeholder,omitempty"`
}

type Widget struct {
	ColumnId string             `json:"columnId"`
	Kind     types.FilterWidget `json:"kind"`
	Inputs   []Input            `json:"inputs,omitempty"`
	Options  []Option           `json:"options,omitempty"`
	Caption  string             `json:"caption,omitempty"`
	Min      string             `json:"min,omitempty"`
	Max      string             `json:"max,omitempty"`
	Active   bool               `json:"active"`
}

// Build returns the widget model for a column.
func Build(column *types.Column, value any, preFiltered []*types.Record) Widget {
	switch column.Filter {
	case types.WidgetSelect:
		return Select(column, value, preFiltered)
	case types.WidgetRange:
		return Range(column, value, preFiltered)
	case types.WidgetDateRange:
		return DateRange(column, value, preFiltered)
	}
	return Default(column, value, preFiltered)
}

func selectedStrings(value any) []string {
	if f, ok := value.(types.StringFilter); ok {
		return f.Value
	}
	return nil
}

func Default(column *types.Column, value any, preFiltered []*types.Record) Widget {
	text := ""
	if f, ok := value.(types.StringFilter); ok {
		text = f.Text()
	}
	return Widget{
		ColumnId: column.Id,
		Kind:     types.WidgetDefault,
		Active:   text != "",
		Inputs: []Input{{
			Name:        "value",
			Type:        "text",
			Value:       text,
			Placeholder: fmt.Sprintf("Search %d records...", len(preFiltered)),
		}},
	}
}

// DistinctValues lists the observed values of a column in first seen order.
func DistinctValues(column *types.Column, rows []*types.Record) []string {
	seen := make(map[string]struct{})
	ret := make([]string, 0)
	for _, r := range rows {
		v := types.ValueString(column.Value(r))
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ret = append(ret, v)
	}
	return ret
}

func Select(column *types.Column, value any, preFiltered []*types.Record) Widget {
	selected := selectedStrings(value)
	isSelected := func(v string) bool {
		for _, s := range selected {
			if s == v {
				return true
			}
		}
		return false
	}
	options := []Option{{Value: "", Label: "All", Selected: len(selected) == 0}}
	for _, v := range DistinctValues(column, preFiltered) {
		options = append(options, Option{Value: v, Label: v, Selected: isSelected(v)})
	}
	return Widget{
		ColumnId: column.Id,
		Kind:     types.WidgetSelect,
		Options:  options,
		Active:   len(selected) > 0,
	}
}

// NumberBounds is the observed min and max of a numeric column, 0 and 0
// when there are no rows.
func NumberBounds(column *types.Column, rows []*types.Record) (float64, float64) {
	if len(rows) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		if n, ok := column.Value(r).(float64); ok {
			lo = min(lo, n)
			hi = max(hi, n)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBound(f *float64) string {
	if f == nil {
		return ""
	}
	return formatNumber(*f)
}

func Range(column *types.Column, value any, preFiltered []*types.Record) Widget {
	rng, _ := value.(types.RangeFilter)
	lo, hi := NumberBounds(column, preFiltered)
	return Widget{
		ColumnId: column.Id,
		Kind:     types.WidgetRange,
		Active:   !rng.IsEmpty(),
		Min:      formatNumber(lo),
		Max:      formatNumber(hi),
		Inputs: []Input{
			{Name: "min", Type: "number", Value: formatBound(rng.Min), Placeholder: fmt.Sprintf("Min (%s)", formatNumber(lo))},
			{Name: "max", Type: "number", Value: formatBound(rng.Max), Placeholder: fmt.Sprintf("Max (%s)", formatNumber(hi))},
		},
	}
}

// DateBounds is the observed min and max of a date column. Invalid dates
// are skipped, the epoch is returned when nothing is valid.
func DateBounds(column *types.Column, rows []*types.Record) (time.Time, time.Time) {
	var lo, hi time.Time
	found := false
	for _, r := range rows {
		ts, ok := column.Value(r).(types.Timestamp)
		if !ok || !ts.Valid {
			continue
		}
		if !found || ts.Time.Before(lo) {
			lo = ts.Time
		}
		if !found || ts.Time.After(hi) {
			hi = ts.Time
		}
		found = true
	}
	if !found {
		return time.Unix(0, 0).UTC(), time.Unix(0, 0).UTC()
	}
	return lo, hi
}

func dateInput(t *time.Time) string {
	if t == nil {
		return ""
	}
	return types.FormatInputDate(*t)
}

func dateCaption(t *time.Time) string {
	if t == nil {
		return "yyyy-MM-dd"
	}
	return types.FormatCaptionDate(*t)
}

func DateRange(column *types.Column, value any, preFiltered []*types.Record) Widget {
	rng, _ := value.(types.DateFilter)
	lo, hi := DateBounds(column, preFiltered)
	return Widget{
		ColumnId: column.Id,
		Kind:     types.WidgetDateRange,
		Active:   !rng.IsEmpty(),
		Min:      types.FormatInputDate(lo),
		Max:      types.FormatInputDate(hi),
		Caption:  fmt.Sprintf("Min: %s Max: %s", dateCaption(rng.Start), dateCaption(rng.End)),
		Inputs: []Input{
			{Name: "start", Type: "date", Value: dateInput(rng.Start)},
			{Name: "end", Type: "date", Value: dateInput(rng.End)},
		},
	}
}
