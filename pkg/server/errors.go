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
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spacedata/nasa-explorer/pkg/errors"
	"github.com/spacedata/nasa-explorer/pkg/serializer"
)

// TimestampFormat is ISO-8601 UTC with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Envelope is the uniform response body for every API route.
type Envelope struct {
	Success   bool           `json:"success"`
	Data      any            `json:"data"`
	Error     string         `json:"error,omitempty"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	RequestID string         `json:"requestId,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// Timestamp formats t for envelope and health payloads.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// NewSuccess builds a success envelope stamped with the current time.
func NewSuccess(data any, message string) Envelope {
	return Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: Timestamp(time.Now()),
	}
}

// WriteSuccess writes a 200 success envelope.
func WriteSuccess(w http.ResponseWriter, data any, message string) {
	serializer.RespondJSON(w, http.StatusOK, NewSuccess(data, message))
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code errors.ErrorCode) int {
	switch {
	case code == errors.ErrCodeValidation:
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case code == errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case code.IsUpstream():
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code errors.ErrorCode) bool {
	return code == errors.ErrCodeRateLimitExceeded || code.IsUpstream()
}

func mergeDetails(base, extra map[string]any) map[string]any {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFrom(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	resp := Envelope{
		Success:   false,
		Data:      nil,
		Error:     string(code),
		Message:   message,
		Timestamp: Timestamp(time.Now()),
		RequestID: requestID,
		Retryable: retryable,
		Details:   details,
	}

	serializer.RespondJSON(w, statusCode, resp)
}

// WriteErrorFromErr writes a failure envelope derived from err. Structured
// errors supply code, message and context; anything else is reported as an
// internal error with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extra map[string]any) {
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), mergeDetails(se.Context, extra))
		return
	}
	WriteError(w, r, http.StatusInternalServerError, errors.ErrCodeInternal,
		fallbackMessage, false, extra)
}
