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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	apierrors "github.com/spacedata/nasa-explorer/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code apierrors.ErrorCode
		want int
	}{
		{"validation", apierrors.ErrCodeValidation, http.StatusBadRequest},
		{"not found", apierrors.ErrCodeNotFound, http.StatusNotFound},
		{"method not allowed", apierrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limit", apierrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"apod upstream", apierrors.ErrCodeAPODFetch, http.StatusBadGateway},
		{"image search upstream", apierrors.ErrCodeImageSearch, http.StatusBadGateway},
		{"epic url", apierrors.ErrCodeEPICImageURL, http.StatusBadGateway},
		{"internal", apierrors.ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", apierrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Fatalf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		name string
		code apierrors.ErrorCode
		want bool
	}{
		{"validation", apierrors.ErrCodeValidation, false},
		{"not found", apierrors.ErrCodeNotFound, false},
		{"method not allowed", apierrors.ErrCodeMethodNotAllowed, false},
		{"rate limit", apierrors.ErrCodeRateLimitExceeded, true},
		{"upstream", apierrors.ErrCodeNEOFetch, true},
		{"internal", apierrors.ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryableFromCode(tt.code); got != tt.want {
				t.Fatalf("retryableFromCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMergeDetails(t *testing.T) {
	t.Run("both empty returns nil", func(t *testing.T) {
		if got := mergeDetails(nil, nil); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
		if got := mergeDetails(map[string]any{}, map[string]any{}); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
	})

	t.Run("merges and second overwrites", func(t *testing.T) {
		a := map[string]any{"a": 1, "shared": "old"}
		b := map[string]any{"b": 2, "shared": "new"}

		got := mergeDetails(a, b)
		if got == nil {
			t.Fatal("expected map, got nil")
		}
		if got["a"].(int) != 1 {
			t.Fatalf("expected a=1, got %#v", got["a"])
		}
		if got["b"].(int) != 2 {
			t.Fatalf("expected b=2, got %#v", got["b"])
		}
		if got["shared"].(string) != "new" {
			t.Fatalf("expected shared to be overwritten to 'new', got %#v", got["shared"])
		}
	})
}

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

func TestTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 6, 789_000_000, time.FixedZone("X", 3600))
	if got := Timestamp(ts); got != "2024-03-09T13:05:06.789Z" {
		t.Fatalf("unexpected timestamp %q", got)
	}
	if !timestampPattern.MatchString(Timestamp(time.Now())) {
		t.Fatal("timestamp does not match ISO-8601 millisecond format")
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	WriteSuccess(w, map[string]any{"title": "Pillars"}, "APOD data retrieved successfully")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if raw["success"] != true {
		t.Fatalf("expected success=true, got %#v", raw["success"])
	}
	if _, ok := raw["error"]; ok {
		t.Fatal("success envelope must not carry an error field")
	}
	if raw["message"] != "APOD data retrieved successfully" {
		t.Fatalf("unexpected message %#v", raw["message"])
	}
	if !timestampPattern.MatchString(raw["timestamp"].(string)) {
		t.Fatalf("unexpected timestamp %#v", raw["timestamp"])
	}
}

func TestWriteError_WritesErrorResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, apierrors.ErrCodeValidation, "bad request", false, map[string]any{"k": "v"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Data != nil {
		t.Fatalf("expected null data, got %#v", resp.Data)
	}
	if resp.Error != string(apierrors.ErrCodeValidation) {
		t.Fatalf("expected code %q, got %q", apierrors.ErrCodeValidation, resp.Error)
	}
	if resp.Message != "bad request" {
		t.Fatalf("expected message %q, got %q", "bad request", resp.Message)
	}
	if resp.RequestID != "req-123" {
		t.Fatalf("expected requestId %q, got %q", "req-123", resp.RequestID)
	}
	if resp.Retryable {
		t.Fatalf("expected retryable=false, got true")
	}
	if resp.Details == nil || resp.Details["k"].(string) != "v" {
		t.Fatalf("expected details to include k=v, got %#v", resp.Details)
	}
}

func TestWriteErrorFromErr_StructuredErrorMapsStatusAndDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	cause := errors.New("connection refused")
	err := apierrors.WrapWithContext(apierrors.ErrCodeAPODFetch, "Failed to fetch APOD data: connection refused",
		cause, map[string]any{"path": "/planetary/apod"})

	WriteErrorFromErr(w, req, err, "fallback", map[string]any{"extra": "yes"})

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, w.Code)
	}

	var resp Envelope
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("failed to unmarshal response: %v", uerr)
	}

	if resp.Error != string(apierrors.ErrCodeAPODFetch) {
		t.Fatalf("expected code %q, got %q", apierrors.ErrCodeAPODFetch, resp.Error)
	}
	if resp.Message != "Failed to fetch APOD data: connection refused" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if !resp.Retryable {
		t.Fatalf("expected retryable=true")
	}
	if resp.Details["path"].(string) != "/planetary/apod" {
		t.Fatalf("expected path detail, got %#v", resp.Details["path"])
	}
	if resp.Details["extra"].(string) != "yes" {
		t.Fatalf("expected extra=yes, got %#v", resp.Details["extra"])
	}
	if resp.RequestID == "" {
		t.Fatal("expected a generated request id")
	}
}

func TestWriteErrorFromErr_NonStructuredFallsBackToInternal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteErrorFromErr(w, req, errors.New("boom"), "fallback", map[string]any{"x": "y"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	var resp Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Error != string(apierrors.ErrCodeInternal) {
		t.Fatalf("expected code %q, got %q", apierrors.ErrCodeInternal, resp.Error)
	}
	if resp.Message != "fallback" {
		t.Fatalf("expected fallback message, got %q", resp.Message)
	}
	if resp.Details == nil || resp.Details["x"].(string) != "y" {
		t.Fatalf("expected details to include x=y, got %#v", resp.Details)
	}
}
