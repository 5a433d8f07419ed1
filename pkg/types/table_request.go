package types

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"
)

const (
	listSeparator  = "||"
	rangeSeparator = "~"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// GetTableStateFromRequest decodes the view state carried in the URL query.
func GetTableStateFromRequest(r *http.Request) (*TableState, error) {
	return TableStateFromQuery(r.URL.Query())
}

func TableStateFromQueryString(raw string) (*TableState, error) {
	query, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, err
	}
	return TableStateFromQuery(query)
}

func TableStateFromQuery(query url.Values) (*TableState, error) {
	state := NewTableState()
	if err := decoder.Decode(state, query); err != nil {
		return nil, err
	}
	state.SortBy = decodeSort(query["sort"])
	state.ColumnOrder = decodeOrder(query.Get("order"))
	decodeFiltersFromQuery(query, &state.Filters)
	state.Sanitize()
	return state, nil
}

func decodeSort(values []string) []SortRule {
	ret := make([]SortRule, 0, len(values))
	for _, v := range values {
		id, dir, _ := strings.Cut(v, ":")
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		ret = append(ret, SortRule{Id: id, Desc: strings.EqualFold(strings.TrimSpace(dir), "desc")})
	}
	return ret
}

func decodeOrder(value string) []string {
	if value == "" {
		return []string{}
	}
	ret := make([]string, 0)
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ret = append(ret, id)
		}
	}
	return ret
}

func splitFilter(v string) (string, string, bool) {
	id, value, ok := strings.Cut(v, ":")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return "", "", false
	}
	return id, strings.TrimSpace(value), true
}

func parseFloatBound(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseDateBound(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	t, err := ParseInputDate(v)
	if err != nil {
		ts := ParseTimestamp(v)
		if !ts.Valid {
			return nil
		}
		t = ts.Time
	}
	return &t
}

// decodeFiltersFromQuery reads str=id:value[||value], txt=id:value,
// rng=id:min~max and date=id:start~end. Malformed entries are skipped, not
// reported.
func decodeFiltersFromQuery(query url.Values, result *Filters) {
	for _, v := range query["str"] {
		id, value, ok := splitFilter(v)
		if !ok || value == "" {
			continue
		}
		values := make([]string, 0, 1)
		for _, part := range strings.Split(value, listSeparator) {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		result.Set(StringFilter{Id: id, Value: values})
	}

	// txt carries free text verbatim, the list separator included
	for _, v := range query["txt"] {
		id, value, ok := splitFilter(v)
		if !ok || value == "" {
			continue
		}
		result.Set(StringFilter{Id: id, Value: []string{value}})
	}

	for _, v := range query["rng"] {
		id, value, ok := splitFilter(v)
		if !ok {
			continue
		}
		lo, hi, _ := strings.Cut(value, rangeSeparator)
		result.Set(RangeFilter{Id: id, Min: parseFloatBound(lo), Max: parseFloatBound(hi)})
	}

	for _, v := range query["date"] {
		id, value, ok := splitFilter(v)
		if !ok {
			continue
		}
		lo, hi, _ := strings.Cut(value, rangeSeparator)
		result.Set(DateFilter{Id: id, Start: parseDateBound(lo), End: parseDateBound(hi)})
	}
}

func formatFloatBound(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatDateBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatInputDate(*t)
}

// Values encodes the state back into query parameters. Defaults are left out.
func (s *TableState) Values() url.Values {
	v := url.Values{}
	if s.GlobalFilter != "" {
		v.Set("q", s.GlobalFilter)
	}
	if s.PageIndex > 0 {
		v.Set("page", strconv.Itoa(s.PageIndex))
	}
	if s.PageSize != DefaultPageSize && s.PageSize > 0 {
		v.Set("size", strconv.Itoa(s.PageSize))
	}
	for _, rule := range s.SortBy {
		dir := "asc"
		if rule.Desc {
			dir = "desc"
		}
		v.Add("sort", rule.Id+":"+dir)
	}
	for _, id := range s.GroupBy {
		v.Add("group", id)
	}
	for _, id := range s.Hidden {
		v.Add("hide", id)
	}
	if len(s.ColumnOrder) > 0 {
		v.Set("order", strings.Join(s.ColumnOrder, ","))
	}
	for _, key := range s.Expanded {
		v.Add("expand", key)
	}
	for _, f := range s.StringFilter {
		if len(f.Value) == 1 && strings.Contains(f.Value[0], listSeparator) {
			v.Add("txt", f.Id+":"+f.Value[0])
			continue
		}
		v.Add("str", f.Id+":"+strings.Join(f.Value, listSeparator))
	}
	for _, f := range s.RangeFilter {
		v.Add("rng", fmt.Sprintf("%s:%s%s%s", f.Id, formatFloatBound(f.Min), rangeSeparator, formatFloatBound(f.Max)))
	}
	for _, f := range s.DateFilter {
		v.Add("date", fmt.Sprintf("%s:%s%s%s", f.Id, formatDateBound(f.Start), rangeSeparator, formatDateBound(f.End)))
	}
	return v
}

// QueryString is the canonical encoding, used for links and cache keys.
func (s *TableState) QueryString() string {
	return s.Values().Encode()
}
