package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tableViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slasktable_views_total",
		Help: "The total number of computed table pages",
	}, []string{"handler"})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasktable_cache_hits_total",
		Help: "The total number of row responses served from cache",
	})
	badRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasktable_bad_requests_total",
		Help: "The total number of rejected table requests",
	})
	pipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slasktable_pipeline_seconds",
		Help:    "Time spent computing a table page",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)

func defaultHeaders(w http.ResponseWriter, r *http.Request, isJson bool, cacheTime string) {
	w.Header().Set("Cache-Control", "private, stale-while-revalidate="+cacheTime)
	genericHeaders(w, r, isJson)
}

func genericHeaders(w http.ResponseWriter, r *http.Request, isJson bool) {
	if isJson {
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	} else {
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	}
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}

func publicHeaders(w http.ResponseWriter, r *http.Request, isJson bool, cacheTime string) {
	w.Header().Set("Cache-Control", "public, max-age="+cacheTime)
	genericHeaders(w, r, isJson)
}
