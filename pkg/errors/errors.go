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

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
// The value is what clients see in the envelope "error" field.
type ErrorCode string

const (
	// ErrCodeValidation indicates malformed or out-of-range input.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeNotFound indicates no route or resource matched.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL_SERVER_ERROR"
	// ErrCodeRateLimitExceeded indicates the client exceeded an enforced request limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeMethodNotAllowed indicates the HTTP method is not allowed for the resource.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
)

// Upstream failure codes, one per NASA resource family.
const (
	ErrCodeAPODFetch         ErrorCode = "APOD_FETCH_ERROR"
	ErrCodeMarsRoversFetch   ErrorCode = "MARS_ROVERS_FETCH_ERROR"
	ErrCodeMarsRoverFetch    ErrorCode = "MARS_ROVER_FETCH_ERROR"
	ErrCodeMarsManifestFetch ErrorCode = "MARS_ROVER_MANIFEST_FETCH_ERROR"
	ErrCodeEPICFetch         ErrorCode = "EPIC_FETCH_ERROR"
	ErrCodeEPICImageURL      ErrorCode = "EPIC_IMAGE_URL_ERROR"
	ErrCodeNEOFetch          ErrorCode = "NEO_FETCH_ERROR"
	ErrCodeImageSearch       ErrorCode = "NASA_IMAGE_SEARCH_ERROR"
)

var upstreamCodes = map[ErrorCode]struct{}{
	ErrCodeAPODFetch:         {},
	ErrCodeMarsRoversFetch:   {},
	ErrCodeMarsRoverFetch:    {},
	ErrCodeMarsManifestFetch: {},
	ErrCodeEPICFetch:         {},
	ErrCodeEPICImageURL:      {},
	ErrCodeNEOFetch:          {},
	ErrCodeImageSearch:       {},
}

// IsUpstream reports whether the code identifies a NASA-side failure.
func (c ErrorCode) IsUpstream() bool {
	_, ok := upstreamCodes[c]
	return ok
}

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the code of the first StructuredError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
