// Package prometheus provides Prometheus collectors for meetauth metrics.
//
// [NewPrometheusExporter] accepts a [meetauth.Service] and exposes an [http.Handler]
// that renders all meetauth counters and histograms in Prometheus text exposition
// format. Counter names are prefixed meetauth_*_total; the single histogram is
// meetauth_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate service state.
package prometheus
