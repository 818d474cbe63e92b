// Package metric provides Prometheus metrics for the storefront API client.
//
// Metrics include:
//
//   - shopfront_client_requests_total{method,code}
//   - shopfront_client_request_duration_seconds{method}
//   - shopfront_client_session_invalidations_total
//   - shopfront_client_login_redirects_total
//
// The shell exposes them at /metrics when started with --metrics-addr.
package metric
