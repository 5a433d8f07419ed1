package filter

import (
	"testing"
	"time"

	"github.com/matst80/slask-table/pkg/types"
	"github.com/stretchr/testify/assert"
)

func ptr[V any](v V) *V {
	return &v
}

func column(id string) *types.Column {
	c, _ := types.FindColumn(types.DefaultColumns(), id)
	return c
}

func priced(prices ...float64) []*types.Record {
	ret := make([]*types.Record, len(prices))
	for i, p := range prices {
		ret[i] = &types.Record{Id: types.ItemId(i), Name: "item", Price: p}
	}
	return ret
}

func prices(records []*types.Record) []float64 {
	ret := make([]float64, len(records))
	for i, r := range records {
		ret[i] = r.Price
	}
	return ret
}

func TestFuzzyText(t *testing.T) {
	records := []*types.Record{{Name: "Smart Lamp"}, {Name: "desk LAMP"}, {Name: "Chair"}}
	got := FuzzyText(records, column(types.FieldName), types.StringFilter{Id: "name", Value: []string{"lAmP"}})
	assert.Len(t, got, 2)

	for _, r := range records {
		visible := len(FuzzyText([]*types.Record{r}, column(types.FieldName), "ai")) == 1
		assert.Equal(t, visible, r.Name == "Chair")
	}
}

func TestIncludes(t *testing.T) {
	records := []*types.Record{{Category: "Office"}, {Category: "Home"}, {Category: "Office Supplies"}, {Category: ""}}
	got := Includes(records, column(types.FieldCategory), types.StringFilter{Value: []string{"Office"}})
	assert.Len(t, got, 1)
	assert.Equal(t, "Office", got[0].Category)

	got = Includes(records, column(types.FieldCategory), []string{"Office", "Home"})
	assert.Len(t, got, 2)
}

func TestBetweenExample(t *testing.T) {
	got := Between(false)(priced(10, 20, 30), column(types.FieldPrice), types.RangeFilter{Min: ptr(15.0), Max: ptr(25.0)})
	assert.Equal(t, []float64{20}, prices(got))
}

func TestBetweenInclusive(t *testing.T) {
	got := Between(false)(priced(10, 20, 30), column(types.FieldPrice), types.RangeFilter{Min: ptr(10.0), Max: ptr(20.0)})
	assert.Equal(t, []float64{10, 20}, prices(got))
}

func TestBetweenUnsetBound(t *testing.T) {
	fn := Between(false)
	assert.Equal(t, []float64{20, 30}, prices(fn(priced(10, 20, 30), column(types.FieldPrice), types.RangeFilter{Min: ptr(15.0)})))
	assert.Equal(t, []float64{10}, prices(fn(priced(10, 20, 30), column(types.FieldPrice), types.RangeFilter{Max: ptr(15.0)})))
}

func TestBetweenStrictUnsetBound(t *testing.T) {
	fn := Between(true)
	assert.Empty(t, fn(priced(10, 20, 30), column(types.FieldPrice), types.RangeFilter{Min: ptr(15.0)}))
	assert.Empty(t, fn(priced(10, 20, 30), column(types.FieldPrice), types.RangeFilter{Max: ptr(15.0)}))
	assert.Len(t, fn(priced(10, 20, 30), column(types.FieldPrice), types.RangeFilter{Min: ptr(0.0), Max: ptr(100.0)}), 3)
}

func TestBetweenSwappedBounds(t *testing.T) {
	assert.Empty(t, Between(false)(priced(10, 20, 30), column(types.FieldPrice), types.RangeFilter{Min: ptr(25.0), Max: ptr(15.0)}))
}

func TestDateBetween(t *testing.T) {
	records := []*types.Record{
		{CreatedAt: types.ParseTimestamp("2024-01-10T10:00:00Z")},
		{CreatedAt: types.ParseTimestamp("2024-02-10T10:00:00Z")},
		{CreatedAt: types.ParseTimestamp("garbage")},
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	col := column(types.FieldCreatedAt)

	assert.Len(t, DateBetween(false)(records, col, types.DateFilter{Start: &start, End: &end}), 1)
	assert.Len(t, DateBetween(false)(records, col, types.DateFilter{Start: &start}), 2, "invalid dates never match")
	assert.Empty(t, DateBetween(true)(records, col, types.DateFilter{Start: &start}))

	sameDay := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, DateBetween(false)(records, col, types.DateFilter{Start: &start, End: &sameDay}), "end bound is midnight")
}

func TestGlobal(t *testing.T) {
	records := []*types.Record{{Name: "Lamp", Category: "Home"}, {Name: "Desk", Category: "Office"}}
	cols := []*types.Column{column(types.FieldName), column(types.FieldCategory)}
	assert.Len(t, Global(records, cols, "office"), 1)
	assert.Len(t, Global(records, cols[:1], "office"), 0)
	assert.Len(t, Global(records, cols, ""), 2)
}

func TestRegistryFallback(t *testing.T) {
	r := NewRegistry(RegistryOptions{})
	assert.True(t, r.Has(types.FilterBetween))
	assert.False(t, r.Has("nope"))
	records := []*types.Record{{Name: "Lamp"}, {Name: "Desk"}}
	assert.Len(t, r.Get("nope")(records, column(types.FieldName), "lam"), 1)
}
