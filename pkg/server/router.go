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
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spacedata/nasa-explorer/pkg/errors"
	"github.com/spacedata/nasa-explorer/pkg/serializer"
)

// IndexResponse describes the service at the root route.
type IndexResponse struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Environment string   `json:"environment"`
	Ready       bool     `json:"ready"`
	Timestamp   string   `json:"timestamp"`
	Routes      []string `json:"routes"`
}

// setupRoutes configures HTTP routes
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	// API endpoints with middleware
	for pattern, handler := range s.config.Handlers {
		mux.HandleFunc(pattern, s.withMiddleware(handler))
	}

	return mux
}

// routes lists every registered pattern in sorted order.
func (s *Server) routes() []string {
	routes := append(slices.Sorted(maps.Keys(s.config.Handlers)),
		"GET /health", "GET /ready", "GET /metrics")
	return slices.DeleteFunc(routes, func(p string) bool { return p == "/" })
}

// handleDefault serves the index at "/" and the not-found envelope for
// everything no other pattern matched.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
			fmt.Sprintf("Route %s not found", r.URL.RequestURI()), false, nil)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	resp := IndexResponse{
		Name:        s.config.Name,
		Version:     s.config.Version,
		Environment: s.config.Environment,
		Ready:       s.isReady(),
		Timestamp:   Timestamp(time.Now()),
		Routes:      s.routes(),
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}
