package auth

// Package auth contains domain-level types for sessions and roles.
// It is pure and free of framework/adapter concerns.

import "time"

// Role is the coarse access class of a signed-in user.
// Kept in string form for easy persistence and JSON payloads.
type Role string

const (
	// RoleUser is the unprivileged role for registered clients.
	RoleUser Role = "user"
	// RoleLawyer is the professional role, subdivided by ProfessionalType.
	RoleLawyer Role = "lawyer"
)

// ProfessionalType sub-classifies the lawyer role and selects the
// navigation variant and label shown to professionals.
type ProfessionalType string

const (
	ProfessionalAbogado    ProfessionalType = "abogado"
	ProfessionalNotario    ProfessionalType = "notario"
	ProfessionalProcurador ProfessionalType = "procurador"
)

// UserProfile is the profile the identity API returns for an
// authenticated user. Adapters map backend payloads into this shape.
type UserProfile struct {
	ID               string           `json:"id"`
	Email            string           `json:"email"`
	FullName         string           `json:"full_name"`
	IsActive         bool             `json:"is_active"`
	IsVerified       bool             `json:"is_verified"`
	Role             Role             `json:"role"`
	ProfessionalType ProfessionalType `json:"professional_type,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Session is the authoritative record of who, if anyone, is logged in.
// Token and User are persisted as a pair; a state with one half present
// and the other absent is invalid and is treated as logged-out.
type Session struct {
	// IsLoading is true only during the one-time startup hydration.
	IsLoading bool
	// Token is the opaque bearer credential for the identity API.
	Token string
	// User is absent when nobody is signed in.
	User *UserProfile
}

// IsAuthenticated is derived: true iff both persisted halves are present.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the session's role, defaulting to the unprivileged role
// when no user is present. Callers must gate access on IsAuthenticated,
// not on Role.
func (s Session) Role() Role {
	if s.User == nil || s.User.Role == "" {
		return RoleUser
	}
	return s.User.Role
}

// ProfessionalType returns the professional sub-classification, which is
// meaningful only when Role() == RoleLawyer.
func (s Session) ProfessionalType() ProfessionalType {
	if s.User == nil {
		return ""
	}
	return s.User.ProfessionalType
}
