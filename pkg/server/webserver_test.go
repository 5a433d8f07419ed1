package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/slask-table/pkg/table"
	"github.com/matst80/slask-table/pkg/tracking"
	"github.com/matst80/slask-table/pkg/types"
)

func testRecords() []types.Record {
	return []types.Record{
		{Id: 0, Name: "Lamp", Category: "Home", Subcategory: "Light", Price: 25, CreatedAt: types.ParseTimestamp("2024-03-01T10:00:00Z"), UpdatedAt: types.ParseTimestamp("2024-03-02T10:00:00Z")},
		{Id: 1, Name: "Desk", Category: "Office", Subcategory: "Furniture", Price: 300, CreatedAt: types.ParseTimestamp("2023-11-15T08:30:00Z"), UpdatedAt: types.ParseTimestamp("broken")},
		{Id: 2, Name: "Chair", Category: "Office", Subcategory: "Furniture", Price: 120, CreatedAt: types.ParseTimestamp("2023-12-01T09:00:00Z"), UpdatedAt: types.ParseTimestamp("2024-01-01T00:00:00Z")},
	}
}

func testServer() *WebServer {
	return NewWebServer(table.NewTable(testRecords(), types.DefaultColumns(), nil))
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
}

func (m *memoryCache) Get(_ context.Context, key string, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	data, ok := m.data[key]
	if !ok {
		return errors.New("miss")
	}
	return sonic.Unmarshal(data, out)
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

type recordingTracking struct {
	mu    sync.Mutex
	views []*tracking.TableView
}

func (r *recordingTracking) TrackSession(string, *http.Request) {}

func (r *recordingTracking) TrackTableView(_ string, view *tracking.TableView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, view)
}

func (r *recordingTracking) Close() error { return nil }

func TestRows(t *testing.T) {
	rec := get(t, testServer().ClientHandler(), "/api/rows?rng=price:100~&sort=price:asc")
	require.Equal(t, http.StatusOK, rec.Code)

	var res RowsResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 3, res.TotalRecords)
	assert.Equal(t, 2, res.FilteredRecords)
	assert.Equal(t, 1, res.PageCount)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Chair", res.Rows[0].Cells["name"])
	assert.Equal(t, "15-Nov-2023 08:30", res.Rows[1].Cells["createdAt"])
	assert.Equal(t, "Invalid Date", res.Rows[1].Cells["updatedAt"])
	assert.Equal(t, "rng=price%3A100~&sort=price%3Aasc", res.State)
}

func TestRowsBadQuery(t *testing.T) {
	rec := get(t, testServer().ClientHandler(), "/api/rows?page=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRowsAreCached(t *testing.T) {
	cache := &memoryCache{data: map[string][]byte{}}
	trk := &recordingTracking{}
	ws := testServer().WithCache(cache, time.Minute)
	ws.Tracking = trk
	handler := ws.ClientHandler()

	first := get(t, handler, "/api/rows?q=office")
	second := get(t, handler, "/api/rows?q=office")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Len(t, cache.data, 1)
	assert.Contains(t, cache.data, "table:rows:q=office")
	assert.Len(t, trk.views, 1)
	assert.Equal(t, 2, trk.views[0].NumberOfResults)
}

func TestColumns(t *testing.T) {
	rec := get(t, testServer().ClientHandler(), "/api/columns?hide=price")
	require.Equal(t, http.StatusOK, rec.Code)

	var columns []ColumnResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &columns))
	require.Len(t, columns, 6)
	assert.Equal(t, "name", columns[0].Id)
	assert.Equal(t, types.WidgetDefault, columns[0].Filter)
	assert.Equal(t, "Search 3 records...", columns[0].Widget.Inputs[0].Placeholder)
	assert.False(t, columns[3].Visible)
	assert.Equal(t, "Min (25)", columns[3].Widget.Inputs[0].Placeholder)
}

func TestOptions(t *testing.T) {
	handler := testServer().ClientHandler()

	rec := get(t, handler, "/api/options/category")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"category","options":["Home","Office"]}`, rec.Body.String())

	rec = get(t, handler, "/api/options/subcategory?str=category:Office")
	assert.JSONEq(t, `{"id":"subcategory","options":["Furniture"]}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, handler, "/api/options/missing").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, handler, "/api/options/price").Code)
}

func TestTablePage(t *testing.T) {
	trk := &recordingTracking{}
	ws := testServer()
	ws.Tracking = trk
	rec := get(t, ws.ClientHandler(), "/?group=category")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=UTF-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Office (2)")
	assert.NotEmpty(t, rec.Result().Cookies())
	assert.Len(t, trk.views, 1)
}

func TestAction(t *testing.T) {
	handler := testServer().ClientHandler()
	action := func(values url.Values) *httptest.ResponseRecorder {
		return get(t, handler, "/action?"+values.Encode())
	}

	rec := action(url.Values{"state": {"page=1&sort=name:asc"}, "op": {"global"}, "q": {" lamp "}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?q=lamp&sort=name%3Aasc", rec.Header().Get("Location"))

	rec = action(url.Values{"state": {""}, "op": {"filter"}, "col": {"price"}, "min": {"10"}, "max": {""}})
	assert.Equal(t, "/?rng=price%3A10~", rec.Header().Get("Location"))

	rec = action(url.Values{"state": {"rng=price:10~"}, "op": {"filter"}, "col": {"price"}})
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = action(url.Values{"state": {""}, "op": {"filter"}, "col": {"createdAt"}, "start": {"2024-01-01"}})
	assert.Equal(t, "/?date=createdAt%3A2024-01-01~", rec.Header().Get("Location"))

	rec = action(url.Values{"state": {""}, "op": {"filter"}, "col": {"category"}, "value": {"Home"}})
	assert.Equal(t, "/?str=category%3AHome", rec.Header().Get("Location"))

	rec = action(url.Values{"state": {"page=2"}, "op": {"size"}, "size": {"20"}})
	assert.Equal(t, "/?page=1&size=20", rec.Header().Get("Location"))

	rec = action(url.Values{"state": {""}, "op": {"page"}, "page": {"9"}})
	assert.Equal(t, "/", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusBadRequest, action(url.Values{"op": {"size"}, "size": {"15"}}).Code)
	assert.Equal(t, http.StatusBadRequest, action(url.Values{"op": {"filter"}, "col": {"nope"}}).Code)
	assert.Equal(t, http.StatusBadRequest, action(url.Values{"op": {"explode"}}).Code)
}

func TestDebugHandler(t *testing.T) {
	handler := DebugHandler()
	rec := get(t, handler, "/health")
	assert.Equal(t, "ok", rec.Body.String())

	get(t, testServer().ClientHandler(), "/api/rows")
	rec = get(t, handler, "/metrics")
	assert.True(t, strings.Contains(rec.Body.String(), "slasktable_views_total"))
}
