package types

import (
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

type ItemId uint32

// Timestamp keeps the source text next to the parsed instant so a value
// that fails to parse can still be shown as "Invalid Date".
type Timestamp struct {
	Raw   string
	Time  time.Time
	Valid bool
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func ParseTimestamp(raw string) Timestamp {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Timestamp{Raw: raw, Time: t.UTC(), Valid: true}
		}
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Timestamp{Raw: raw, Time: time.UnixMilli(ms).UTC(), Valid: true}
	}
	return Timestamp{Raw: raw}
}

func (t Timestamp) String() string {
	return t.Raw
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return sonic.ConfigStd.Marshal(t.Raw)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := sonic.ConfigStd.Unmarshal(data, &raw); err != nil {
		// numbers are epoch milliseconds
		raw = string(data)
	}
	*t = ParseTimestamp(raw)
	return nil
}

// Record is one immutable row of the dataset.
type Record struct {
	Id          ItemId    `json:"-"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Price       float64   `json:"price"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

const (
	FieldName        = "name"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldPrice       = "price"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

// Value returns the accessor value for a column id, nil for unknown ids.
func (r *Record) Value(id string) any {
	switch id {
	case FieldName:
		return r.Name
	case FieldCategory:
		return r.Category
	case FieldSubcategory:
		return r.Subcategory
	case FieldPrice:
		return r.Price
	case FieldCreatedAt:
		return r.CreatedAt
	case FieldUpdatedAt:
		return r.UpdatedAt
	}
	return nil
}

// ValueString is the textual form used by text filters and the global filter.
func ValueString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case Timestamp:
		return typed.Raw
	case *Timestamp:
		return typed.Raw
	}
	return ""
}
