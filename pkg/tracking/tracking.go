package tracking

import (
	"net/http"

	"github.com/matst80/slask-table/pkg/types"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackTableView(sessionId string, view *TableView)
	Close() error
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

const (
	EventSession   uint16 = 0
	EventTableView uint16 = 1
)

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

// TableView summarises the state a visitor looked at.
type TableView struct {
	*BaseEvent
	*types.Filters
	Query           string           `json:"query,omitempty"`
	SortBy          []types.SortRule `json:"sort,omitempty"`
	GroupBy         []string         `json:"group,omitempty"`
	Hidden          []string         `json:"hidden,omitempty"`
	Page            int              `json:"page"`
	PageSize        int              `json:"size"`
	NumberOfResults int              `json:"noi"`
	Referer         string           `json:"referer,omitempty"`
}

func NewTableView(state *types.TableState, results int, r *http.Request) *TableView {
	filters := state.Filters.Clone()
	return &TableView{
		Filters:         &filters,
		Query:           state.GlobalFilter,
		SortBy:          state.SortBy,
		GroupBy:         state.GroupBy,
		Hidden:          state.Hidden,
		Page:            state.PageIndex,
		PageSize:        state.PageSize,
		NumberOfResults: results,
		Referer:         r.Header.Get("Referer"),
	}
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}
