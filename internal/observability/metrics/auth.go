package metrics

// Auth metric names. Transport faults get their own tag so the
// dashboards can separate "backend said no" from "backend unreachable"
// even though users see the same outcome.

import (
	"github.com/justicia-ai/leia-auth/internal/observability/statsd"
)

const (
	metricLoginSuccess   = "auth.login.success"
	metricLoginFailure   = "auth.login.failure"
	metricLogout         = "auth.logout"
	metricLandingOutcome = "auth.landing.outcome"
)

// AuthRecorder emits auth-flow counters to a StatsD sink.
type AuthRecorder struct {
	sink statsd.Sink
}

// NewAuthRecorder wraps a sink; a nil sink yields a no-op recorder.
func NewAuthRecorder(sink statsd.Sink) *AuthRecorder {
	return &AuthRecorder{sink: sink}
}

// LoginSuccess counts a successful credential login.
func (r *AuthRecorder) LoginSuccess() {
	r.count(metricLoginSuccess, nil)
}

// LoginFailure counts a rejected or failed credential login.
func (r *AuthRecorder) LoginFailure(transportFault bool) {
	r.count(metricLoginFailure, faultTags(transportFault))
}

// Logout counts a logout.
func (r *AuthRecorder) Logout() {
	r.count(metricLogout, nil)
}

// LandingOutcome counts a redirect-landing terminal outcome by kind.
func (r *AuthRecorder) LandingOutcome(kind string, transportFault bool) {
	tags := faultTags(transportFault)
	tags["kind"] = kind
	r.count(metricLandingOutcome, tags)
}

func (r *AuthRecorder) count(name string, tags map[string]string) {
	if r == nil || r.sink == nil {
		return
	}
	r.sink.Count(name, 1, tags)
}

func faultTags(transportFault bool) map[string]string {
	if transportFault {
		return map[string]string{"fault": "transport"}
	}
	return map[string]string{"fault": "none"}
}
