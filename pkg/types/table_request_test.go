package types

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableStateFromQuery(t *testing.T) {
	query := url.Values{
		"q":     {"lamp"},
		"page":  {"2"},
		"size":  {"20"},
		"sort":  {"price:desc", "name", "price:asc"},
		"group": {"category"},
		"hide":  {"updatedAt"},
		"order": {"price, name"},
		"str":   {"name:Desk", "category:Office||Home", "broken", ":x"},
		"rng":   {"price:15~25", "other:~"},
		"date":  {"createdAt:2024-01-01~"},
	}
	state, err := TableStateFromQuery(query)
	require.NoError(t, err)

	assert.Equal(t, "lamp", state.GlobalFilter)
	assert.Equal(t, 2, state.PageIndex)
	assert.Equal(t, 20, state.PageSize)
	assert.Equal(t, []SortRule{{Id: "price", Desc: true}, {Id: "name"}}, state.SortBy)
	assert.Equal(t, []string{"category"}, state.GroupBy)
	assert.Equal(t, []string{"updatedAt"}, state.Hidden)
	assert.Equal(t, []string{"price", "name"}, state.ColumnOrder)

	cat, ok := state.Get("category")
	require.True(t, ok)
	assert.Equal(t, []string{"Office", "Home"}, cat.(StringFilter).Value)

	rng, ok := state.Get("price")
	require.True(t, ok)
	assert.Equal(t, 15.0, *rng.(RangeFilter).Min)
	assert.Equal(t, 25.0, *rng.(RangeFilter).Max)
	assert.False(t, state.HasField("other"), "a range with both bounds blank is no filter")

	date, ok := state.Get("createdAt")
	require.True(t, ok)
	assert.NotNil(t, date.(DateFilter).Start)
	assert.Nil(t, date.(DateFilter).End)
}

func TestTableStateDefaults(t *testing.T) {
	state, err := TableStateFromQueryString("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, state.PageSize)
	assert.Equal(t, 0, state.PageIndex)
	assert.True(t, state.Filters.IsEmpty())
	assert.Equal(t, "", state.QueryString())
}

func TestPageSizeIsSnapped(t *testing.T) {
	cases := map[string]int{"size=0": 10, "size=11": 20, "size=50": 50, "size=1000": 50, "size=-4": 10}
	for raw, expected := range cases {
		state, err := TableStateFromQueryString(raw)
		require.NoError(t, err)
		assert.Equal(t, expected, state.PageSize, raw)
	}
}

func TestInvalidPageIsAnError(t *testing.T) {
	_, err := TableStateFromQueryString("page=abc")
	assert.Error(t, err)
}

func TestQueryStringRoundTrip(t *testing.T) {
	raw := "date=createdAt%3A2024-01-01~2024-02-01&group=category&page=1&q=desk&rng=price%3A~25&size=30&sort=price%3Adesc&str=category%3AOffice"
	state, err := TableStateFromQueryString(raw)
	require.NoError(t, err)
	again, err := TableStateFromQueryString(state.QueryString())
	require.NoError(t, err)
	assert.Equal(t, state.QueryString(), again.QueryString())
	assert.Equal(t, raw, state.QueryString())
}

func TestDropUnknown(t *testing.T) {
	state, err := TableStateFromQueryString("sort=nope&group=category&group=nope&str=nope:x&hide=price")
	require.NoError(t, err)
	state.DropUnknown(DefaultColumns())
	assert.Empty(t, state.SortBy)
	assert.Equal(t, []string{"category"}, state.GroupBy)
	assert.False(t, state.HasField("nope"))
	assert.True(t, state.IsHidden("price"))
}

func TestCloneDoesNotShareFilterValues(t *testing.T) {
	state, err := TableStateFromQueryString("str=category%3AOffice||Home&hide=price")
	require.NoError(t, err)
	clone := state.Clone()
	clone.StringFilter[0].Value[0] = "Garden"
	clone.Hidden[0] = "name"

	assert.Equal(t, []string{"Office", "Home"}, state.StringFilter[0].Value)
	assert.Equal(t, []string{"price"}, state.Hidden)
}

func TestFreeTextKeepsListSeparator(t *testing.T) {
	state := NewTableState()
	state.Set(StringFilter{Id: FieldName, Value: []string{"a||b"}})
	assert.Equal(t, "txt=name%3Aa%7C%7Cb", state.QueryString())

	again, err := TableStateFromQueryString(state.QueryString())
	require.NoError(t, err)
	value, ok := again.Get(FieldName)
	require.True(t, ok)
	assert.Equal(t, StringFilter{Id: FieldName, Value: []string{"a||b"}}, value)

	again, err = TableStateFromQueryString("str=category%3AOffice||Home")
	require.NoError(t, err)
	assert.Equal(t, "str=category%3AOffice%7C%7CHome", again.QueryString())
}
