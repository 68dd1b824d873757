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
	"time"

	"github.com/spacedata/nasa-explorer/pkg/serializer"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status      string  `json:"status" yaml:"status"`
	Timestamp   string  `json:"timestamp" yaml:"timestamp"`
	Uptime      float64 `json:"uptime" yaml:"uptime"`
	Environment string  `json:"environment" yaml:"environment"`
}

// ReadyResponse is the readiness payload.
type ReadyResponse struct {
	Status    string `json:"status" yaml:"status"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// handleHealth handles GET /health. It reports process liveness only and
// never contacts NASA.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:      "OK",
		Timestamp:   Timestamp(time.Now()),
		Uptime:      time.Since(s.started).Seconds(),
		Environment: s.config.Environment,
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// handleReady handles GET /ready.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.isReady() {
		resp := ReadyResponse{
			Status:    "not_ready",
			Timestamp: Timestamp(time.Now()),
			Reason:    "service is initializing",
		}
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp := ReadyResponse{
		Status:    "ready",
		Timestamp: Timestamp(time.Now()),
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}
