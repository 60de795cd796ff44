package roles

// Package roles derives the role-specific view of a session. Resolve is
// a pure function of the current session and the navigation tables; it
// holds no state and is recomputed on every session change.

import (
	"github.com/justicia-ai/leia-auth/config"
	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
)

// Dashboard landing routes per role.
const (
	DashboardLawyer = "/dashboard/profesional"
	DashboardUser   = "/dashboard/usuario"
)

// ClientLabel is the description shown for the unprivileged role.
const ClientLabel = "Cliente"

// View is the derived, never-persisted role view of a session.
type View struct {
	Role             domainauth.Role             `json:"role"`
	IsUser           bool                        `json:"is_user"`
	IsLawyer         bool                        `json:"is_lawyer"`
	ProfessionalType domainauth.ProfessionalType `json:"professional_type,omitempty"`
	Navigation       []config.NavItem            `json:"navigation"`
	DashboardHome    string                      `json:"dashboard_home"`
	RoleLabel        string                      `json:"role_label"`
	RoleDescription  string                      `json:"role_description"`
	IsLoading        bool                        `json:"is_loading"`
}

// Resolve computes the role view for a session. The role defaults to
// the unprivileged one when no user is present, so callers must gate
// access on the session's IsAuthenticated, never on the resolved role.
func Resolve(sess domainauth.Session, nav config.NavigationConfig) View {
	role := sess.Role()
	isLawyer := role == domainauth.RoleLawyer
	pt := sess.ProfessionalType()

	view := View{
		Role:             role,
		IsUser:           !isLawyer,
		IsLawyer:         isLawyer,
		ProfessionalType: pt,
		IsLoading:        sess.IsLoading,
	}

	if isLawyer {
		view.Navigation = nav.ForProfessionalType(string(pt))
		view.DashboardHome = DashboardLawyer
		view.RoleLabel = nav.FallbackLabel
		view.RoleDescription = nav.LabelFor(string(pt))
		return view
	}

	view.Navigation = nav.UserDefault
	view.DashboardHome = DashboardUser
	view.RoleLabel = ClientLabel
	view.RoleDescription = ClientLabel
	return view
}
