package types

import "slices"

type FilterWidget string

const (
	WidgetDefault   FilterWidget = "default"
	WidgetSelect    FilterWidget = "select"
	WidgetRange     FilterWidget = "range"
	WidgetDateRange FilterWidget = "dateRange"
)

const (
	FilterFuzzyText   = "fuzzyText"
	FilterIncludes    = "includes"
	FilterBetween     = "between"
	FilterDateBetween = "dateBetween"
)

type Aggregate string

const (
	AggregateNone        Aggregate = ""
	AggregateCount       Aggregate = "count"
	AggregateSum         Aggregate = "sum"
	AggregateAverage     Aggregate = "average"
	AggregateMin         Aggregate = "min"
	AggregateMax         Aggregate = "max"
	AggregateUniqueCount Aggregate = "uniqueCount"
)

// Column is the declarative mapping from a record field to its header,
// cell formatting and filter behaviour.
type Column struct {
	Id             string                 `json:"id"`
	Header         string                 `json:"header"`
	Accessor       func(r *Record) any    `json:"-"`
	Cell           func(value any) string `json:"-"`
	Filter         FilterWidget           `json:"filter"`
	FilterType     string                 `json:"filterType"`
	Aggregate      Aggregate              `json:"aggregate,omitempty"`
	DisableFilters bool                   `json:"disableFilters,omitempty"`
	DisableSort    bool                   `json:"disableSort,omitempty"`
	DisableGroupBy bool                   `json:"disableGroupBy,omitempty"`
}

func (c *Column) Value(r *Record) any {
	if c.Accessor != nil {
		return c.Accessor(r)
	}
	return r.Value(c.Id)
}

func (c *Column) Render(value any) string {
	if c.Cell != nil {
		return c.Cell(value)
	}
	return ValueString(value)
}

func (c *Column) CanFilter() bool {
	return !c.DisableFilters
}

// WithDefaults fills in the default text filter for columns that declare none.
func (c Column) WithDefaults() Column {
	if c.Filter == "" {
		c.Filter = WidgetDefault
	}
	if c.FilterType == "" {
		c.FilterType = FilterFuzzyText
	}
	if c.Header == "" {
		c.Header = c.Id
	}
	return c
}

func dateCell(value any) string {
	switch ts := value.(type) {
	case Timestamp:
		return FormatCellDate(ts)
	case *Timestamp:
		return FormatCellDate(*ts)
	}
	return InvalidDate
}

func DefaultColumns() []Column {
	columns := []Column{
		{Id: FieldName, Header: "Name", Filter: WidgetDefault, FilterType: FilterFuzzyText},
		{Id: FieldCategory, Header: "Category", Filter: WidgetSelect, FilterType: FilterIncludes, Aggregate: AggregateCount},
		{Id: FieldSubcategory, Header: "Subcategory", Filter: WidgetSelect, FilterType: FilterIncludes, Aggregate: AggregateUniqueCount},
		{Id: FieldPrice, Header: "Price", Filter: WidgetRange, FilterType: FilterBetween, Aggregate: AggregateAverage},
		{Id: FieldCreatedAt, Header: "Created At", Cell: dateCell, Filter: WidgetDateRange, FilterType: FilterDateBetween},
		{Id: FieldUpdatedAt, Header: "Updated At", Cell: dateCell},
	}
	for i := range columns {
		columns[i] = columns[i].WithDefaults()
	}
	return columns
}

func ColumnIds(columns []Column) []string {
	ret := make([]string, len(columns))
	for i, c := range columns {
		ret[i] = c.Id
	}
	return ret
}

func FindColumn(columns []Column, id string) (*Column, bool) {
	idx := slices.IndexFunc(columns, func(c Column) bool { return c.Id == id })
	if idx < 0 {
		return nil, false
	}
	return &columns[idx], true
}
