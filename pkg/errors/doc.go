// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Codes double as the envelope "error" field, so the vocabulary is fixed:
// one code per NASA resource family plus VALIDATION_ERROR, NOT_FOUND and
// INTERNAL_SERVER_ERROR.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeAPODFetch,
//	    "Failed to fetch APOD",
//	    cause,
//	    map[string]any{
//	        "upstreamStatus": 503,
//	        "path": "/planetary/apod",
//	    },
//	)
package errors
