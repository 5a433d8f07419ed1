package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/render"
	"github.com/matst80/slask-table/pkg/table"
	"github.com/matst80/slask-table/pkg/tracking"
	"github.com/matst80/slask-table/pkg/types"
	"github.com/matst80/slask-table/pkg/widget"
)

type WebServer struct {
	Table    *table.Table
	Cache    *CacheHelper[RowsResponse]
	Tracking tracking.Tracking
}

func NewWebServer(tbl *table.Table) *WebServer {
	return &WebServer{Table: tbl}
}

// WithCache enables the response cache for /api/rows.
func (ws *WebServer) WithCache(cache ResponseCache, expiration time.Duration) *WebServer {
	ws.Cache = NewCacheHelper[RowsResponse](cache, "table:rows:", expiration)
	return ws
}

func (ws *WebServer) sessionTracker() common.SessionTracker {
	if ws.Tracking == nil {
		return nil
	}
	return ws.Tracking
}

func (ws *WebServer) apply(ctx context.Context, state *types.TableState, handler string) *table.Result {
	start := time.Now()
	result := ws.Table.Apply(ctx, state)
	pipelineDuration.Observe(time.Since(start).Seconds())
	tableViews.WithLabelValues(handler).Inc()
	return result
}

func (ws *WebServer) compute(r *http.Request, handler string) (*table.Result, error) {
	state, err := types.GetTableStateFromRequest(r)
	if err != nil {
		badRequests.Inc()
		return nil, err
	}
	return ws.apply(r.Context(), state, handler), nil
}

func (ws *WebServer) track(sessionId string, result *table.Result, r *http.Request) {
	if ws.Tracking != nil {
		ws.Tracking.TrackTableView(sessionId, tracking.NewTableView(result.State, result.FilteredRecords, r))
	}
}

func (ws *WebServer) TablePage(w http.ResponseWriter, r *http.Request) {
	sessionId := common.HandleSessionCookie(ws.sessionTracker(), w, r)
	result, err := ws.compute(r, "page")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ws.track(sessionId, result, r)
	defaultHeaders(w, r, false, "0")
	w.WriteHeader(http.StatusOK)
	if err = render.HTML(w, ws.Table, result); err != nil {
		zap.L().Error("failed to render table", zap.Error(err))
	}
}

func (ws *WebServer) Rows(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	state, err := types.GetTableStateFromRequest(r)
	if err != nil {
		badRequests.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	var computed *table.Result
	var response RowsResponse
	hit := ws.Cache.Handle(r.Context(), state.QueryString(), &response, func() RowsResponse {
		computed = ws.apply(r.Context(), state, "rows")
		return newRowsResponse(computed)
	})
	if hit {
		cacheHits.Inc()
	} else {
		ws.track(sessionId, computed, r)
	}
	defaultHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(response)
}

func (ws *WebServer) Columns(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	result, err := ws.compute(r, "columns")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	publicHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(columnResponses(result, true))
}

func (ws *WebServer) Options(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	id := r.PathValue("id")
	column, ok := ws.Table.Column(id)
	if !ok {
		http.Error(w, types.ErrUnknownColumn.Error(), http.StatusNotFound)
		return nil
	}
	if column.Filter != types.WidgetSelect {
		http.Error(w, "column has no options", http.StatusBadRequest)
		return nil
	}
	result, err := ws.compute(r, "options")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	cs, _ := result.Column(id)
	publicHeaders(w, r, true, "120")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(OptionsResponse{
		Id:      id,
		Options: widget.DistinctValues(column, cs.PreFilteredRows),
	})
}

var errUnknownAction = errors.New("unknown action")

// nextState applies a submitted form to the state it was rendered from.
func (ws *WebServer) nextState(ctx context.Context, query url.Values) (*types.TableState, error) {
	state, err := types.TableStateFromQueryString(query.Get("state"))
	if err != nil {
		return nil, err
	}
	switch query.Get("op") {
	case "global":
		return table.SetGlobalFilter(state, strings.TrimSpace(query.Get("q"))), nil
	case "size":
		size, err := strconv.Atoi(query.Get("size"))
		if err != nil {
			return nil, types.ErrInvalidPageSize
		}
		return table.SetPageSize(state, size)
	case "page":
		page, err := strconv.Atoi(query.Get("page"))
		if err != nil {
			return nil, err
		}
		result := ws.Table.Apply(ctx, state)
		return table.GotoPage(state, page-1, result.PageCount), nil
	case "filter":
		return ws.Table.SetFilter(state, query.Get("col"), filterValue(ws.Table, query))
	}
	return nil, errUnknownAction
}

func filterValue(tbl *table.Table, query url.Values) any {
	column, ok := tbl.Column(query.Get("col"))
	if !ok {
		return nil
	}
	switch column.Filter {
	case types.WidgetRange:
		f := types.RangeFilter{Min: parseFloat(query.Get("min")), Max: parseFloat(query.Get("max"))}
		if f.IsEmpty() {
			return nil
		}
		return f
	case types.WidgetDateRange:
		f := types.DateFilter{Start: parseDate(query.Get("start")), End: parseDate(query.Get("end"))}
		if f.IsEmpty() {
			return nil
		}
		return f
	}
	if v := strings.TrimSpace(query.Get("value")); v != "" {
		return v
	}
	return nil
}

func parseFloat(v string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseDate(v string) *time.Time {
	t, err := types.ParseInputDate(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &t
}

// Action handles the filter forms and redirects to the page for the new state.
func (ws *WebServer) Action(w http.ResponseWriter, r *http.Request) {
	next, err := ws.nextState(r.Context(), r.URL.Query())
	if err != nil {
		badRequests.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	target := "/"
	if qs := next.QueryString(); qs != "" {
		target += "?" + qs
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()
	trk := ws.sessionTracker()

	srv.HandleFunc("GET /{$}", ws.TablePage)
	srv.HandleFunc("GET "+render.ActionPath, ws.Action)
	srv.HandleFunc("/api/rows", common.JsonHandler(trk, ws.Rows))
	srv.HandleFunc("/api/columns", common.JsonHandler(trk, ws.Columns))
	srv.HandleFunc("/api/options/{id}", common.JsonHandler(trk, ws.Options))
	return srv
}

// DebugHandler serves health, metrics and pprof on a separate listener.
func DebugHandler() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.Handle("/metrics", promhttp.Handler())
	srv.HandleFunc("/debug/pprof/", pprof.Index)
	srv.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	srv.HandleFunc("/debug/pprof/profile", pprof.Profile)
	srv.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	srv.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return srv
}
