package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justicia-ai/leia-auth/config"
	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
)

func userSession(role domainauth.Role, pt domainauth.ProfessionalType) domainauth.Session {
	return domainauth.Session{
		Token: "tok",
		User: &domainauth.UserProfile{
			ID:               "u-1",
			Email:            "persona@example.com",
			Role:             role,
			ProfessionalType: pt,
		},
	}
}

func TestResolve_ClientRole(t *testing.T) {
	nav := config.DefaultNavigation()
	view := Resolve(userSession(domainauth.RoleUser, ""), nav)

	assert.Equal(t, domainauth.RoleUser, view.Role)
	assert.True(t, view.IsUser)
	assert.False(t, view.IsLawyer)
	assert.Equal(t, DashboardUser, view.DashboardHome)
	assert.Equal(t, "Cliente", view.RoleLabel)
	assert.Equal(t, "Cliente", view.RoleDescription)
	assert.Equal(t, nav.UserDefault, view.Navigation)
}

func TestResolve_ProfessionalTypes(t *testing.T) {
	nav := config.DefaultNavigation()

	tests := []struct {
		pt          domainauth.ProfessionalType
		description string
	}{
		{domainauth.ProfessionalAbogado, "Abogado"},
		{domainauth.ProfessionalNotario, "Notario"},
		{domainauth.ProfessionalProcurador, "Procurador"},
	}
	for _, tc := range tests {
		t.Run(string(tc.pt), func(t *testing.T) {
			view := Resolve(userSession(domainauth.RoleLawyer, tc.pt), nav)

			assert.True(t, view.IsLawyer)
			assert.False(t, view.IsUser)
			assert.Equal(t, DashboardLawyer, view.DashboardHome)
			assert.Equal(t, tc.description, view.RoleDescription)
			assert.Equal(t, nav.Professional[string(tc.pt)], view.Navigation)
		})
	}
}

func TestResolve_UnknownProfessionalTypeFallsBack(t *testing.T) {
	nav := config.DefaultNavigation()
	view := Resolve(userSession(domainauth.RoleLawyer, "mediador"), nav)

	assert.Equal(t, DashboardLawyer, view.DashboardHome)
	assert.Equal(t, nav.FallbackLabel, view.RoleDescription)
	assert.Equal(t, nav.ProfessionalFallback, view.Navigation)
}

func TestResolve_AnonymousDefaultsToClient(t *testing.T) {
	nav := config.DefaultNavigation()
	view := Resolve(domainauth.Session{}, nav)

	// The default role makes anonymous rendering safe, but it is no
	// substitute for authentication gating.
	assert.Equal(t, domainauth.RoleUser, view.Role)
	assert.True(t, view.IsUser)
	assert.Equal(t, DashboardUser, view.DashboardHome)
	require.NotEmpty(t, view.Navigation)
}

func TestResolve_EmptyRoleDefaultsToClient(t *testing.T) {
	view := Resolve(userSession("", ""), config.DefaultNavigation())
	assert.Equal(t, domainauth.RoleUser, view.Role)
}

func TestResolve_PropagatesLoading(t *testing.T) {
	view := Resolve(domainauth.Session{IsLoading: true}, config.DefaultNavigation())
	assert.True(t, view.IsLoading)
}
