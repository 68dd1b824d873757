// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CacheStatusHeader is set by cacheable routes to HIT, MISS or BYPASS.
// The metrics middleware counts its values per route.
const CacheStatusHeader = "X-Cache"

var (
	// Route traffic, keyed by the matched ServeMux pattern.
	routeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nasa_http_requests_total",
			Help: "Requests served, by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	routeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nasa_http_request_duration_seconds",
			Help:    "Time to serve a request, upstream round trip included on cache misses",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	routesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nasa_http_requests_in_flight",
			Help: "Requests currently being served",
		},
	)

	routeCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nasa_http_cache_results_total",
			Help: "Cacheable route responses, by route pattern and X-Cache result",
		},
		[]string{"route", "result"},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nasa_rate_limit_rejects_total",
			Help: "Requests refused with 429 by the per-client limiter",
		},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nasa_panic_recoveries_total",
			Help: "Handler panics turned into 500 envelopes",
		},
	)
)

// routeLabel is the matched pattern. Unknown paths land on "/" and share
// its series.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return r.URL.Path
}

// metricsMiddleware counts and times each request under its route pattern,
// so /mars-rovers/{rover}/photos is one series whatever the rover.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		routesInFlight.Inc()
		defer routesInFlight.Dec()

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		route := routeLabel(r)
		routeRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.Status())).Inc()
		routeLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())

		if result := wrapped.Header().Get(CacheStatusHeader); result != "" {
			routeCacheResults.WithLabelValues(route, result).Inc()
		}
	}
}
