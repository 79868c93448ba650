package internaldefs

import (
	meetauth "github.com/meetsdev/meetauth"
)

// CounterDef defines a public type used by meetauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   meetauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by meetauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   meetauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: meetauth.MetricAuthSuccess, Name: "meetauth_auth_success_total", Help: "Successful authentication attempts."},
	{ID: meetauth.MetricAuthFailure, Name: "meetauth_auth_failure_total", Help: "Failed authentication attempts."},
	{ID: meetauth.MetricAuthUserNotFound, Name: "meetauth_auth_user_not_found_total", Help: "Authentication attempts against unknown usernames."},
	{ID: meetauth.MetricRefreshSuccess, Name: "meetauth_refresh_success_total", Help: "Successful refresh rotations."},
	{ID: meetauth.MetricRefreshFailure, Name: "meetauth_refresh_failure_total", Help: "Failed refresh operations."},
	{ID: meetauth.MetricRefreshReuseDetected, Name: "meetauth_refresh_reuse_detected_total", Help: "Detected refresh token reuses."},
	{ID: meetauth.MetricRegisterSuccess, Name: "meetauth_register_success_total", Help: "Successful account registrations."},
	{ID: meetauth.MetricRegisterDuplicate, Name: "meetauth_register_duplicate_total", Help: "Registrations rejected as duplicate usernames."},
	{ID: meetauth.MetricTokenPairIssued, Name: "meetauth_token_pair_issued_total", Help: "Issued access and refresh token pairs."},
	{ID: meetauth.MetricCurrentUserSuccess, Name: "meetauth_current_user_success_total", Help: "Access tokens resolved to an account."},
	{ID: meetauth.MetricCurrentUserRejected, Name: "meetauth_current_user_rejected_total", Help: "Access tokens rejected during resolution."},
	{ID: meetauth.MetricStoreUnavailable, Name: "meetauth_store_unavailable_total", Help: "Operations failed by token store unavailability."},
}

// HistogramDefs is an exported constant or variable used by the authentication engine.
var HistogramDefs = []HistogramDef{
	{ID: meetauth.MetricValidateLatency, Name: "meetauth_validate_latency_seconds", Help: "Access token validation latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
