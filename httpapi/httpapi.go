// Package httpapi exposes an opened geodb database over HTTP: a health
// check, the query endpoint, and Prometheus metrics. It holds no matching
// or format logic of its own, only dispatch onto the db and query packages.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geodb-project/geodb/db"
	"github.com/geodb-project/geodb/query"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geodb_http_requests_total",
		Help: "HTTP requests handled, by route and status class.",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geodb_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// NewHandler returns an http.Handler serving /health, /query, and /metrics
// against d. d is read-only and safe to share across request goroutines for
// the life of the handler.
func NewHandler(d *db.DB) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/query", handleQuery(d)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

func handleHealth(rw http.ResponseWriter, r *http.Request) {
	observe("/health", http.StatusOK, time.Now())
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte("ok"))
}

func handleQuery(d *db.DB) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()

		key := r.URL.Query().Get("key")

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(rw, "/query", start, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}

		res, err := query.Lookup(r.Context(), d, key, limit)
		if err != nil {
			writeError(rw, "/query", start, http.StatusBadRequest, err.Error())
			return
		}

		observe("/query", http.StatusOK, start)
		rw.Header().Set("Content-Type", "application/json")
		json.NewEncoder(rw).Encode(res)
	}
}

func writeError(rw http.ResponseWriter, route string, start time.Time, status int, msg string) {
	observe(route, status, start)
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	json.NewEncoder(rw).Encode(map[string]string{"error": msg})
}

func observe(route string, status int, start time.Time) {
	requestsTotal.WithLabelValues(route, strconv.Itoa(status/100*100)).Inc()
	requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}
