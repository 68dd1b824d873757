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
	"context"
	"log/slog"

	"github.com/spacedata/nasa-explorer/pkg/cache"
	"github.com/spacedata/nasa-explorer/pkg/config"
	"github.com/spacedata/nasa-explorer/pkg/logging"
	"github.com/spacedata/nasa-explorer/pkg/nasa"
	"github.com/spacedata/nasa-explorer/pkg/serializer"
	"github.com/spacedata/nasa-explorer/pkg/server"
)

const (
	name           = "nasad"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/spacedata/nasa-explorer/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server with cfg and blocks until ctx is canceled or
// the process receives SIGINT/SIGTERM.
func Serve(ctx context.Context, cfg *config.Config) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"environment", cfg.Environment,
	)

	if cfg.UsingDemoKey() {
		slog.Warn("using DEMO_KEY, NASA limits it to 30 requests per hour per IP",
			"env", config.EnvNASAAPIKey)
	}

	s := newServer(cfg)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newServer wires the NASA client, response cache and request journal
// into a server configured from cfg.
func newServer(cfg *config.Config) *server.Server {
	client := nasa.NewClient(
		nasa.WithAPIKey(cfg.NASAAPIKey),
		nasa.WithBaseURL(cfg.NASABaseURL),
		nasa.WithImagesBaseURL(cfg.NASAImagesBaseURL),
		nasa.WithHTTPClient(serializer.NewHTTPClient(
			serializer.WithUserAgent(name+"/"+version),
		)),
	)

	journal := NewJournal(DefaultJournalSize)
	opts := []Option{
		WithJournal(journal),
		WithInfo(Info{
			Name:                 name,
			Version:              version,
			RateLimitWindow:      cfg.RateLimitWindow,
			RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		}),
	}

	var workers []server.Option
	if cfg.CacheEnabled {
		c := cache.New[[]byte](
			cache.WithName("responses"),
			cache.WithDefaultTTL(cfg.CacheDefaultTTL),
		)
		opts = append(opts, WithCache(c))
		workers = append(workers, server.WithWorker(cacheWorker(c)))
	} else {
		slog.Info("response cache disabled")
	}

	h := NewHandler(client, opts...)

	sc := server.NewConfig()
	sc.Environment = cfg.Environment
	sc.Port = cfg.Port
	sc.CORSOrigin = cfg.CORSOrigin
	sc.RateLimit, sc.RateLimitBurst = server.RateLimitFromWindow(cfg.RateLimitMaxRequests, cfg.RateLimitWindow)
	if cfg.RateLimitWindow > 0 {
		sc.RateLimitTTL = cfg.RateLimitWindow
	}
	sc.ShutdownTimeout = cfg.ShutdownTimeout

	return server.New(append([]server.Option{
		server.WithConfig(sc),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
		server.WithAccessObserver(journal.Observe),
	}, workers...)...)
}

// cacheWorker runs the cache sweep loop for the lifetime of the server.
func cacheWorker[V any](c *cache.Cache[V]) server.Worker {
	return func(ctx context.Context) error {
		c.Start(ctx)
		<-ctx.Done()
		c.Stop()
		return nil
	}
}
