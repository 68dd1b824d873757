// Package api provides the HTTP API layer of the NASA explorer service.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with the NASA proxy routes, the response cache and the
// request journal. Every proxy route runs the same pipeline:
//
//  1. Validate path and query parameters; failures return 400 and never
//     reach NASA.
//  2. Look up the verbatim request URI in the response cache.
//  3. On a miss, call NASA once per key (concurrent misses share the call)
//     and wrap the payload in the success envelope.
//  4. Store the encoded envelope with the resource family TTL.
//
// Add ?noCache=true to skip steps 2 and 4. The X-Cache response header
// reports HIT, MISS or BYPASS.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	return api.Serve(ctx, cfg)
//
// # Endpoints
//
// NASA proxy endpoints (rate limited, cached):
//   - GET /api/nasa/apod
//   - GET /api/nasa/mars-rovers
//   - GET /api/nasa/mars-rovers/{rover}/photos
//   - GET /api/nasa/mars-rovers/{rover}/manifest
//   - GET /api/nasa/epic
//   - GET /api/nasa/epic/image-url
//   - GET /api/nasa/epic/dates
//   - GET /api/nasa/neo
//   - GET /api/nasa/neo/hazardous
//   - GET /api/nasa/neo/summary
//   - GET /api/nasa/neo/by-size
//   - GET /api/nasa/images
//
// Documentation and monitoring endpoints (rate limited, not cached):
//   - GET /api/docs
//   - GET /api/docs/stats
//   - GET /api/docs/logs?limit=N
//   - DELETE /api/docs/cache/clear?pattern=P
//
// System endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
package api
