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

// Package config loads the proxy configuration.
//
// Values are layered: built-in defaults, then an optional YAML or JSON file,
// then environment variables. Command line flags applied by the caller come
// last, after which Validate checks the result with go-playground/validator
// struct tags.
//
// Durations in files use Go syntax ("15m"). The RATE_LIMIT_WINDOW_MS and
// CACHE_DEFAULT_TTL environment variables are milliseconds.
package config
