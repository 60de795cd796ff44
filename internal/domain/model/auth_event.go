package model

import (
	"errors"
	"strings"
	"time"
)

// AuthEventKind classifies an entry in the auth audit trail.
type AuthEventKind string

const (
	AuthEventLoginSucceeded     AuthEventKind = "login_succeeded"
	AuthEventLoginFailed        AuthEventKind = "login_failed"
	AuthEventLogout             AuthEventKind = "logout"
	AuthEventLandingEstablished AuthEventKind = "landing_established"
	AuthEventLandingFailed      AuthEventKind = "landing_failed"
	AuthEventLandingMalformed   AuthEventKind = "landing_malformed"
)

// AuthEvent is a single audit record for a session lifecycle action.
// TransportFault distinguishes network-unreachable failures from
// backend rejections; the distinction is internal-only and never
// changes what the user sees.
type AuthEvent struct {
	ID             string        `json:"id"`
	Kind           AuthEventKind `json:"kind"`
	Email          string        `json:"email,omitempty"`
	Reason         string        `json:"reason,omitempty"`
	TransportFault bool          `json:"transport_fault"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Validate checks required fields before persistence.
func (e AuthEvent) Validate() error {
	if strings.TrimSpace(string(e.Kind)) == "" {
		return errors.New("auth event kind is required")
	}
	switch e.Kind {
	case AuthEventLoginSucceeded, AuthEventLoginFailed, AuthEventLogout,
		AuthEventLandingEstablished, AuthEventLandingFailed, AuthEventLandingMalformed:
		return nil
	default:
		return errors.New("unknown auth event kind: " + string(e.Kind))
	}
}
