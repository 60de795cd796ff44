package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMetric struct {
	name string
	tags map[string]string
}

type captureSink struct {
	counts []capturedMetric
}

func (s *captureSink) Count(name string, _ int64, tags map[string]string) {
	s.counts = append(s.counts, capturedMetric{name: name, tags: tags})
}

func (s *captureSink) Timing(string, time.Duration, map[string]string) {}

func TestAuthRecorder_EmitsTaggedCounters(t *testing.T) {
	sink := &captureSink{}
	rec := NewAuthRecorder(sink)

	rec.LoginSuccess()
	rec.LoginFailure(true)
	rec.Logout()
	rec.LandingOutcome("established", false)

	require.Len(t, sink.counts, 4)
	assert.Equal(t, "auth.login.success", sink.counts[0].name)

	assert.Equal(t, "auth.login.failure", sink.counts[1].name)
	assert.Equal(t, "transport", sink.counts[1].tags["fault"])

	assert.Equal(t, "auth.landing.outcome", sink.counts[3].name)
	assert.Equal(t, "established", sink.counts[3].tags["kind"])
	assert.Equal(t, "none", sink.counts[3].tags["fault"])
}

func TestAuthRecorder_NilSafe(t *testing.T) {
	var rec *AuthRecorder
	rec.LoginSuccess()
	rec.LoginFailure(false)
	rec.Logout()
	rec.LandingOutcome("malformed", false)

	NewAuthRecorder(nil).LoginSuccess()
}
