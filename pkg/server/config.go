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
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/spacedata/nasa-explorer/pkg/defaults"
)

const (
	// EnvironmentDevelopment enables verbose error messages.
	EnvironmentDevelopment = "development"
	// EnvironmentProduction hides internal error details from clients.
	EnvironmentProduction = "production"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name        string
	Version     string
	Environment string

	// Additional Handlers to be added to the server, keyed by ServeMux pattern
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration, applied per client address
	RateLimit      rate.Limit // tokens per second
	RateLimitBurst int        // bucket size
	RateLimitTTL   time.Duration

	// CORSOrigin is echoed in Access-Control-Allow-Origin. Empty disables CORS headers.
	CORSOrigin string

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return parseConfig()
}

// RateLimitFromWindow converts "max requests per window" into a token
// bucket that refills continuously and holds max tokens.
func RateLimitFromWindow(maxRequests int, window time.Duration) (rate.Limit, int) {
	if maxRequests <= 0 || window <= 0 {
		return rate.Inf, 0
	}
	return rate.Limit(float64(maxRequests) / window.Seconds()), maxRequests
}

// parseConfig returns sensible defaults
func parseConfig() *Config {
	limit, burst := RateLimitFromWindow(defaults.RateLimitMaxRequests, defaults.RateLimitWindow)

	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Environment:       EnvironmentDevelopment,
		Address:           "",
		Port:              5000,
		RateLimit:         limit,
		RateLimitBurst:    burst,
		RateLimitTTL:      defaults.RateLimitWindow,
		CORSOrigin:        "http://localhost:3000",
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	// Override with environment variables if set
	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	// Allow customization of shutdown timeout to match orchestrator grace periods
	if shutdownStr := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}
