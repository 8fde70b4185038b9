package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "practice_sdk_http_requests_total",
		Help: "Count of HTTP requests by route and method.",
	},
	[]string{"route", "method"},
)

// Metrics counts requests per mux route. Unmatched requests count under the
// raw path so 404 floods remain visible.
func Metrics() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			requestsTotal.WithLabelValues(route, r.Method).Inc()
			next.ServeHTTP(w, r)
		})
	}
}
