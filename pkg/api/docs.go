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

package api

import (
	"cmp"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/spacedata/nasa-explorer/pkg/cache"
	"github.com/spacedata/nasa-explorer/pkg/errors"
	"github.com/spacedata/nasa-explorer/pkg/nasa"
	"github.com/spacedata/nasa-explorer/pkg/server"
	"github.com/spacedata/nasa-explorer/pkg/validator"
)

const defaultLogLimit = 100

// EndpointDoc documents one route family.
type EndpointDoc struct {
	Description string            `json:"description"`
	Methods     []string          `json:"methods"`
	URL         string            `json:"url,omitempty"`
	Endpoints   map[string]string `json:"endpoints,omitempty"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

// Docs is the payload of the documentation route.
type Docs struct {
	Name         string                 `json:"name"`
	Version      string                 `json:"version"`
	Description  string                 `json:"description"`
	BaseURL      string                 `json:"baseUrl"`
	Endpoints    map[string]EndpointDoc `json:"endpoints"`
	RateLimiting map[string]string      `json:"rateLimiting"`
	Caching      CachingDoc             `json:"caching"`
	ErrorCodes   map[string]string      `json:"errorCodes"`
}

// CachingDoc describes the cache policy.
type CachingDoc struct {
	Enabled          bool              `json:"enabled"`
	DefaultTTL       string            `json:"defaultTTL,omitempty"`
	EndpointSpecific map[string]string `json:"endpointSpecific"`
	Bypass           string            `json:"bypass"`
}

// Stats is the payload of the stats route.
type Stats struct {
	Requests RequestStats `json:"requests"`
	Cache    *cache.Stats `json:"cache"`
}

// ClearResult is the payload of the cache clear route.
type ClearResult struct {
	Cleared bool   `json:"cleared"`
	Pattern string `json:"pattern"`
	Removed int    `json:"removed"`
}

var endpointDocs = map[string]EndpointDoc{
	"apod": {
		Description: "Astronomy Picture of the Day",
		Methods:     []string{http.MethodGet},
		URL:         "/api/nasa/apod",
		Parameters: map[string]string{
			"date":       "YYYY-MM-DD format (optional)",
			"start_date": "YYYY-MM-DD format (optional)",
			"end_date":   "YYYY-MM-DD format (optional)",
			"count":      "Number of images (1-100, optional)",
			"thumbs":     "Boolean for thumbnail images (optional)",
		},
	},
	"marsRovers": {
		Description: "Mars Rover data and photos",
		Methods:     []string{http.MethodGet},
		Endpoints: map[string]string{
			"list":     "/api/nasa/mars-rovers",
			"photos":   "/api/nasa/mars-rovers/{rover}/photos",
			"manifest": "/api/nasa/mars-rovers/{rover}/manifest",
		},
		Parameters: map[string]string{
			"rover":      joinRovers(),
			"sol":        "Mars day number (optional)",
			"earth_date": "YYYY-MM-DD format (optional)",
			"camera":     "Camera name (optional)",
			"page":       "Page number (optional)",
		},
	},
	"epic": {
		Description: "Earth imagery from DSCOVR satellite",
		Methods:     []string{http.MethodGet},
		Endpoints: map[string]string{
			"data":     "/api/nasa/epic",
			"imageUrl": "/api/nasa/epic/image-url",
			"dates":    "/api/nasa/epic/dates",
		},
		Parameters: map[string]string{
			"date":       "YYYY-MM-DD format (optional, required for image-url)",
			"identifier": "Image identifier (optional)",
			"image":      "Image name (required for image-url)",
			"enhanced":   "Boolean for enhanced images (optional)",
		},
	},
	"neo": {
		Description: "Near Earth Objects data",
		Methods:     []string{http.MethodGet},
		Endpoints: map[string]string{
			"feed":      "/api/nasa/neo",
			"hazardous": "/api/nasa/neo/hazardous",
			"summary":   "/api/nasa/neo/summary",
			"bySize":    "/api/nasa/neo/by-size",
		},
		Parameters: map[string]string{
			"start_date":   "YYYY-MM-DD format (optional)",
			"end_date":     "YYYY-MM-DD format (optional)",
			"asteroid_id":  "Specific asteroid ID (optional)",
			"min_diameter": "Minimum average diameter in km (by-size only, optional)",
			"max_diameter": "Maximum average diameter in km (by-size only, optional)",
		},
	},
	"imageSearch": {
		Description: "NASA Image and Video Library search",
		Methods:     []string{http.MethodGet},
		URL:         "/api/nasa/images",
		Parameters: map[string]string{
			"q":            "Search query (optional)",
			"center":       "NASA center (optional)",
			"description":  "Description search (optional)",
			"keywords":     "Keywords search (optional)",
			"location":     "Location search (optional)",
			"nasa_id":      "NASA ID (optional)",
			"photographer": "Photographer name (optional)",
			"title":        "Title search (optional)",
			"year_start":   "Start year (optional)",
			"year_end":     "End year (optional)",
			"media_type":   "image, video, or audio (optional)",
			"page":         "Page number (optional)",
		},
	},
	"monitoring": {
		Description: "API monitoring and statistics",
		Methods:     []string{http.MethodGet, http.MethodDelete},
		Endpoints: map[string]string{
			"stats": "/api/docs/stats",
			"logs":  "/api/docs/logs",
			"cache": "/api/docs/cache/clear",
		},
	},
}

var errorCodeDocs = map[string]string{
	string(errors.ErrCodeValidation):        "400 - Input validation failed",
	string(errors.ErrCodeNotFound):          "404 - Endpoint not found",
	string(errors.ErrCodeMethodNotAllowed):  "405 - Method not allowed",
	string(errors.ErrCodeRateLimitExceeded): "429 - Too many requests",
	string(errors.ErrCodeInternal):          "500 - Internal server error",
	"*_FETCH_ERROR":                         "502 - NASA API error for one resource family",
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// handleDocs handles GET /api/docs.
func (h *Handler) handleDocs(w http.ResponseWriter, r *http.Request) {
	families := []nasa.Family{nasa.FamilyAPOD, nasa.FamilyMarsRover, nasa.FamilyEPIC, nasa.FamilyNEO, nasa.FamilyImageSearch}
	ttls := make(map[string]string, len(families))
	for _, f := range families {
		ttls[string(f)] = f.TTL().String()
	}

	caching := CachingDoc{
		Enabled:          h.cache != nil,
		EndpointSpecific: ttls,
		Bypass:           "Add ?" + BypassParam + "=true to any request",
	}
	if h.cache != nil {
		caching.DefaultTTL = h.cache.DefaultTTL().String()
	}

	docs := Docs{
		Name:        h.info.Name,
		Version:     h.info.Version,
		Description: "A pass-through API for exploring NASA's space data",
		BaseURL:     requestBaseURL(r),
		Endpoints:   endpointDocs,
		RateLimiting: map[string]string{
			"window":      h.info.RateLimitWindow.String(),
			"maxRequests": strconv.Itoa(h.info.RateLimitMaxRequests) + " requests per window",
		},
		Caching:    caching,
		ErrorCodes: errorCodeDocs,
	}
	server.WriteSuccess(w, docs, "API documentation retrieved successfully")
}

func joinRovers() string {
	rovers := validator.Rovers
	out := ""
	for i, r := range rovers {
		switch {
		case i == 0:
			out = r
		case i == len(rovers)-1:
			out += ", or " + r
		default:
			out += ", " + r
		}
	}
	return out
}

// handleStats handles GET /api/docs/stats.
func (h *Handler) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats := Stats{Requests: h.journal.Stats()}
	if h.cache != nil {
		cs := h.cache.Stats()
		stats.Cache = &cs
	}
	server.WriteSuccess(w, stats, "Request statistics retrieved successfully")
}

// handleLogs handles GET /api/docs/logs?limit=N.
func (h *Handler) handleLogs(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLogLimit
	}
	server.WriteSuccess(w, h.journal.Recent(limit), "Recent request logs retrieved successfully")
}

// handleCacheClear handles DELETE /api/docs/cache/clear?pattern=. Without a
// pattern every entry is removed; otherwise entries whose key contains it.
func (h *Handler) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")

	removed := 0
	if h.cache != nil {
		if pattern == "" {
			removed = h.cache.Clear()
		} else {
			removed = h.cache.DeleteMatching(pattern)
		}
	}

	slog.Info("cache cleared", "pattern", cmp.Or(pattern, "all"), "removed", removed)
	server.WriteSuccess(w, ClearResult{
		Cleared: true,
		Pattern: cmp.Or(pattern, "all"),
		Removed: removed,
	}, "Cache cleared successfully")
}
