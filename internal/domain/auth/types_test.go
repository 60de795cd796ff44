package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsAuthenticated(t *testing.T) {
	user := &UserProfile{ID: "u-1", Email: "a@b.c"}

	tests := []struct {
		name string
		sess Session
		want bool
	}{
		{"empty", Session{}, false},
		{"loading", Session{IsLoading: true}, false},
		{"token only", Session{Token: "tok"}, false},
		{"user only", Session{User: user}, false},
		{"both halves", Session{Token: "tok", User: user}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sess.IsAuthenticated())
		})
	}
}

func TestSession_RoleDefaults(t *testing.T) {
	assert.Equal(t, RoleUser, Session{}.Role())
	assert.Equal(t, RoleUser, Session{User: &UserProfile{}}.Role())
	assert.Equal(t, RoleLawyer, Session{User: &UserProfile{Role: RoleLawyer}}.Role())
}

func TestSession_ProfessionalType(t *testing.T) {
	assert.Empty(t, Session{}.ProfessionalType())
	sess := Session{User: &UserProfile{Role: RoleLawyer, ProfessionalType: ProfessionalNotario}}
	assert.Equal(t, ProfessionalNotario, sess.ProfessionalType())
}
