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
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
	"k8s.io/utils/clock"

	"github.com/spacedata/nasa-explorer/pkg/cache"
	"github.com/spacedata/nasa-explorer/pkg/defaults"
	"github.com/spacedata/nasa-explorer/pkg/nasa"
	"github.com/spacedata/nasa-explorer/pkg/validator"
)

// Info describes the running service in the documentation route.
type Info struct {
	Name                 string
	Version              string
	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
}

// Handler serves the NASA proxy routes.
type Handler struct {
	client  *nasa.Client
	cache   *cache.Cache[[]byte]
	clock   clock.PassiveClock
	journal *Journal
	info    Info
	flights singleflight.Group
}

// Option configures a Handler.
type Option func(*Handler)

// WithCache enables response caching. Without it every request goes upstream.
func WithCache(c *cache.Cache[[]byte]) Option {
	return func(h *Handler) {
		h.cache = c
	}
}

// WithClock sets the clock used for date-dependent validation.
func WithClock(c clock.PassiveClock) Option {
	return func(h *Handler) {
		h.clock = c
	}
}

// WithJournal sets the request journal reported by the stats and logs routes.
func WithJournal(j *Journal) Option {
	return func(h *Handler) {
		h.journal = j
	}
}

// WithInfo sets the service description shown by the docs route.
func WithInfo(i Info) Option {
	return func(h *Handler) {
		h.info = i
	}
}

// NewHandler returns a Handler that calls NASA through client.
func NewHandler(client *nasa.Client, opts ...Option) *Handler {
	h := &Handler{
		client: client,
		clock:  clock.RealClock{},
		info: Info{
			Name:                 name,
			Version:              version,
			RateLimitWindow:      defaults.RateLimitWindow,
			RateLimitMaxRequests: defaults.RateLimitMaxRequests,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.journal == nil {
		h.journal = NewJournal(DefaultJournalSize)
	}
	return h
}

// Journal returns the request journal.
func (h *Handler) Journal() *Journal {
	return h.journal
}

// Routes returns the handlers keyed by ServeMux pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /api/nasa/apod": h.serve(endpoint{
			schema:  static(validator.APOD),
			family:  nasa.FamilyAPOD,
			fetch:   h.apod,
			message: fixed("APOD data retrieved successfully"),
			failure: "Failed to fetch APOD data",
		}),
		"GET /api/nasa/mars-rovers": h.serve(endpoint{
			schema:  static(validator.Schema{}),
			family:  nasa.FamilyMarsRover,
			fetch:   h.marsRovers,
			message: fixed("Mars rovers data retrieved successfully"),
			failure: "Failed to fetch Mars rovers data",
		}),
		"GET /api/nasa/mars-rovers/{rover}/photos": h.serve(endpoint{
			schema:  static(validator.MarsRover),
			params:  []string{"rover"},
			family:  nasa.FamilyMarsRover,
			fetch:   h.marsRoverPhotos,
			message: perRover("Mars rover photos for %s retrieved successfully"),
			failure: "Failed to fetch Mars rover photos",
		}),
		"GET /api/nasa/mars-rovers/{rover}/manifest": h.serve(endpoint{
			schema:  static(validator.MarsRoverManifest),
			params:  []string{"rover"},
			family:  nasa.FamilyMarsRover,
			fetch:   h.marsRoverManifest,
			message: perRover("Mars rover manifest for %s retrieved successfully"),
			failure: "Failed to fetch Mars rover manifest",
		}),
		"GET /api/nasa/epic": h.serve(endpoint{
			schema:  static(validator.EPIC),
			family:  nasa.FamilyEPIC,
			fetch:   h.epic,
			message: fixed("EPIC data retrieved successfully"),
			failure: "Failed to fetch EPIC data",
		}),
		"GET /api/nasa/epic/image-url": h.serve(endpoint{
			schema:  static(validator.EPICImageURL),
			family:  nasa.FamilyEPIC,
			fetch:   h.epicImageURL,
			message: fixed("EPIC image URL generated successfully"),
			failure: "Failed to generate EPIC image URL",
		}),
		"GET /api/nasa/epic/dates": h.serve(endpoint{
			schema:  static(validator.Schema{}),
			family:  nasa.FamilyEPIC,
			fetch:   h.epicDates,
			message: fixed("EPIC available dates retrieved successfully"),
			failure: "Failed to fetch EPIC dates",
		}),
		"GET /api/nasa/neo": h.serve(endpoint{
			schema:  static(validator.NEO),
			family:  nasa.FamilyNEO,
			fetch:   h.neo,
			message: fixed("NEO data retrieved successfully"),
			failure: "Failed to fetch NEO data",
		}),
		"GET /api/nasa/neo/hazardous": h.serve(endpoint{
			schema:  static(validator.NEO),
			family:  nasa.FamilyNEO,
			fetch:   h.hazardousNEOs,
			message: fixed("Hazardous NEO data retrieved successfully"),
			failure: "Failed to fetch hazardous NEOs",
		}),
		"GET /api/nasa/neo/summary": h.serve(endpoint{
			schema:  static(validator.NEO),
			family:  nasa.FamilyNEO,
			fetch:   h.neoSummary,
			message: fixed("NEO summary retrieved successfully"),
			failure: "Failed to get NEO summary",
		}),
		"GET /api/nasa/neo/by-size": h.serve(endpoint{
			schema:  static(validator.NEOBySize),
			family:  nasa.FamilyNEO,
			fetch:   h.neosBySize,
			message: fixed("NEO data filtered by size retrieved successfully"),
			failure: "Failed to get NEOs by size",
		}),
		"GET /api/nasa/images": h.serve(endpoint{
			schema:  validator.ImageSearch,
			family:  nasa.FamilyImageSearch,
			fetch:   h.searchImages,
			message: fixed("NASA images search completed successfully"),
			failure: "Failed to search NASA images",
		}),

		"GET /api/docs":                h.handleDocs,
		"GET /api/docs/stats":          h.handleStats,
		"GET /api/docs/logs":           h.handleLogs,
		"DELETE /api/docs/cache/clear": h.handleCacheClear,
	}
}
