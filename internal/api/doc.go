// Package api hosts the HTTP server, middleware, and REST handlers. Notable routes:
//   - GET /healthz and /readyz for Kubernetes probes; readyz pings the cache.
//   - GET /metrics for Prometheus scraping.
//   - GET /v1/occupations?title=...&refresh=true for a single lookup.
//   - POST /v1/occupations/compare with {"titles": [...]} for a comparison.
//   - GET /v1/bls/status for the statistics API connectivity probe.
package api
