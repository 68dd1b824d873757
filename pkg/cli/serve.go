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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/spacedata/nasa-explorer/pkg/api"
	"github.com/spacedata/nasa-explorer/pkg/config"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the NASA API proxy server",
		Description: `Run the HTTP server that proxies the NASA Open APIs.

Configuration is layered: built-in defaults, then the --config file, then
environment variables (PORT, NASA_API_KEY, CORS_ORIGIN, RATE_LIMIT_WINDOW_MS,
RATE_LIMIT_MAX_REQUESTS, CACHE_ENABLED, ...), then the flags below.

Without NASA_API_KEY the server uses DEMO_KEY, which NASA limits heavily.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
			&cli.StringFlag{
				Name:  "environment",
				Usage: "Runtime environment (development, production, test)",
			},
			&cli.StringFlag{
				Name:  "cors-origin",
				Usage: "Origin allowed to call the API from a browser (empty disables CORS)",
			},
			&cli.BoolFlag{
				Name:  "cache",
				Usage: "Enable the in-memory response cache",
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "Default cache TTL for entries stored without one",
			},
			&cli.DurationFlag{
				Name:  "rate-limit-window",
				Usage: "Rate limit window per client IP (0 disables rate limiting)",
			},
			&cli.IntFlag{
				Name:  "rate-limit-max",
				Usage: "Requests allowed per client IP per window (0 disables rate limiting)",
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "Time allowed for in-flight requests to finish on shutdown",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyServeFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return api.Serve(ctx, cfg)
		},
	}
}

// applyServeFlags overrides cfg with the serve flags the user set.
func applyServeFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	if cmd.IsSet("environment") {
		cfg.Environment = cmd.String("environment")
	}
	if cmd.IsSet("cors-origin") {
		cfg.CORSOrigin = cmd.String("cors-origin")
	}
	if cmd.IsSet("cache") {
		cfg.CacheEnabled = cmd.Bool("cache")
	}
	if cmd.IsSet("cache-ttl") {
		cfg.CacheDefaultTTL = cmd.Duration("cache-ttl")
	}
	if cmd.IsSet("rate-limit-window") {
		cfg.RateLimitWindow = cmd.Duration("rate-limit-window")
	}
	if cmd.IsSet("rate-limit-max") {
		cfg.RateLimitMaxRequests = cmd.Int("rate-limit-max")
	}
	if cmd.IsSet("shutdown-timeout") {
		cfg.ShutdownTimeout = cmd.Duration("shutdown-timeout")
	}
}
