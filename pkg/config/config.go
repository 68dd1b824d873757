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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spacedata/nasa-explorer/pkg/defaults"
	"github.com/spacedata/nasa-explorer/pkg/errors"
	"github.com/spacedata/nasa-explorer/pkg/nasa"
	"github.com/spacedata/nasa-explorer/pkg/serializer"
)

// Environment variables recognized by Load.
const (
	EnvPort                 = "PORT"
	EnvEnvironment          = "ENVIRONMENT"
	EnvNodeEnv              = "NODE_ENV"
	EnvNASAAPIKey           = "NASA_API_KEY"
	EnvNASABaseURL          = "NASA_API_BASE_URL"
	EnvNASAImagesBaseURL    = "NASA_IMAGES_BASE_URL"
	EnvCORSOrigin           = "CORS_ORIGIN"
	EnvRateLimitWindowMS    = "RATE_LIMIT_WINDOW_MS"
	EnvRateLimitMaxRequests = "RATE_LIMIT_MAX_REQUESTS"
	EnvCacheEnabled         = "CACHE_ENABLED"
	EnvCacheDefaultTTL      = "CACHE_DEFAULT_TTL"
	EnvLogLevel             = "LOG_LEVEL"
	EnvShutdownTimeout      = "SHUTDOWN_TIMEOUT_SECONDS"
)

var validate = validator.New()

// Config is the runtime configuration of the proxy.
type Config struct {
	Port        int    `json:"port" yaml:"port" validate:"min=0,max=65535"`
	Environment string `json:"environment" yaml:"environment" validate:"oneof=development production test"`

	NASAAPIKey        string `json:"nasaApiKey" yaml:"nasaApiKey" validate:"required"`
	NASABaseURL       string `json:"nasaBaseUrl" yaml:"nasaBaseUrl" validate:"required,url"`
	NASAImagesBaseURL string `json:"nasaImagesBaseUrl" yaml:"nasaImagesBaseUrl" validate:"required,url"`

	CORSOrigin string `json:"corsOrigin" yaml:"corsOrigin"`

	RateLimitWindow      time.Duration `json:"rateLimitWindow" yaml:"rateLimitWindow" validate:"gte=0"`
	RateLimitMaxRequests int           `json:"rateLimitMaxRequests" yaml:"rateLimitMaxRequests" validate:"gte=0"`

	CacheEnabled    bool          `json:"cacheEnabled" yaml:"cacheEnabled"`
	CacheDefaultTTL time.Duration `json:"cacheDefaultTtl" yaml:"cacheDefaultTtl" validate:"gt=0"`

	LogLevel        string        `json:"logLevel" yaml:"logLevel" validate:"oneof=debug info warn warning error"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout" validate:"gt=0"`
}

// Default returns a configuration that runs with no environment at all,
// using the public demo key.
func Default() *Config {
	return &Config{
		Port:                 5000,
		Environment:          "development",
		NASAAPIKey:           nasa.DemoAPIKey,
		NASABaseURL:          nasa.DefaultBaseURL,
		NASAImagesBaseURL:    nasa.DefaultImagesBaseURL,
		CORSOrigin:           "http://localhost:3000",
		RateLimitWindow:      defaults.RateLimitWindow,
		RateLimitMaxRequests: defaults.RateLimitMaxRequests,
		CacheEnabled:         true,
		CacheDefaultTTL:      defaults.CacheDefaultTTL,
		LogLevel:             "info",
		ShutdownTimeout:      defaults.ServerShutdownTimeout,
	}
}

// Load builds the configuration from defaults, then the optional file at
// path, then the process environment. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := serializer.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UsingDemoKey reports whether requests go out with the rate-limited
// public key.
func (c *Config) UsingDemoKey() bool {
	return c.NASAAPIKey == nasa.DemoAPIKey
}

// Validate normalizes and checks the configuration.
func (c *Config) Validate() error {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.NASABaseURL = strings.TrimRight(c.NASABaseURL, "/")
	c.NASAImagesBaseURL = strings.TrimRight(c.NASAImagesBaseURL, "/")

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeValidation, "invalid configuration", err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(EnvNodeEnv, &c.Environment)
	str(EnvEnvironment, &c.Environment)
	str(EnvNASAAPIKey, &c.NASAAPIKey)
	str(EnvNASABaseURL, &c.NASABaseURL)
	str(EnvNASAImagesBaseURL, &c.NASAImagesBaseURL)
	str(EnvCORSOrigin, &c.CORSOrigin)
	str(EnvLogLevel, &c.LogLevel)

	ints := []struct {
		key string
		set func(int)
	}{
		{EnvPort, func(n int) { c.Port = n }},
		{EnvRateLimitWindowMS, func(n int) { c.RateLimitWindow = time.Duration(n) * time.Millisecond }},
		{EnvRateLimitMaxRequests, func(n int) { c.RateLimitMaxRequests = n }},
		{EnvCacheDefaultTTL, func(n int) { c.CacheDefaultTTL = time.Duration(n) * time.Millisecond }},
		{EnvShutdownTimeout, func(n int) { c.ShutdownTimeout = time.Duration(n) * time.Second }},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeValidation,
				fmt.Sprintf("%s must be an integer", e.key), err, map[string]any{"value": v})
		}
		e.set(n)
	}

	if v, ok := lookup(EnvCacheEnabled); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeValidation,
				fmt.Sprintf("%s must be true or false", EnvCacheEnabled), err, map[string]any{"value": v})
		}
		c.CacheEnabled = b
	}

	return nil
}
