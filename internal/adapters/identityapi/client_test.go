package identityapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	apperrors "github.com/justicia-ai/leia-auth/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler, claims ClaimPaths) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL, Claims: claims})
	require.NoError(t, err)
	return client, server
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = New(Config{BaseURL: "http://localhost:8000", Claims: ClaimPaths{Role: "profile.["}})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAuthenticate_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test@example.com", body["email"])
		assert.Equal(t, "TestPass123", body["password"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"user": map[string]any{
				"id":        "u-1",
				"email":     "test@example.com",
				"full_name": "Test User",
				"is_active": true,
				"role":      "user",
			},
		})
	}), ClaimPaths{})

	cred, err := client.Authenticate(context.Background(), "test@example.com", "TestPass123")
	require.NoError(t, err)
	assert.Equal(t, "test-token", cred.Token)
	assert.Equal(t, "test@example.com", cred.User.Email)
	assert.Equal(t, domainauth.RoleUser, cred.User.Role)
}

func TestAuthenticate_RejectionCarriesBackendDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
	}), ClaimPaths{})

	_, err := client.Authenticate(context.Background(), "test@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsCredentialRejected(err))
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestAuthenticate_RejectionWithoutDetailUsesGenericMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}), ClaimPaths{})

	_, err := client.Authenticate(context.Background(), "test@example.com", "TestPass123")
	require.Error(t, err)
	assert.True(t, apperrors.IsCredentialRejected(err))
	assert.Equal(t, "No se pudo iniciar sesión", err.Error())
}

func TestAuthenticate_TransportFault(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)
	server.Close()

	_, err = client.Authenticate(context.Background(), "test@example.com", "TestPass123")
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
	assert.False(t, apperrors.IsCredentialRejected(err))
}

func TestFetchProfile_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/me", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u-2","email":"notario@example.com","role":"lawyer","professional_type":"notario"}`))
	}), ClaimPaths{})

	user, err := client.FetchProfile(context.Background(), "test-token")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleLawyer, user.Role)
	assert.Equal(t, domainauth.ProfessionalNotario, user.ProfessionalType)
}

func TestFetchProfile_InvalidToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), ClaimPaths{})

	_, err := client.FetchProfile(context.Background(), "expired")
	require.Error(t, err)
	assert.True(t, apperrors.IsTokenInvalid(err))
}

func TestFetchProfile_EmptyToken(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler(), ClaimPaths{})

	_, err := client.FetchProfile(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsTokenInvalid(err))
}

func TestDecodeProfile_ClaimPathOverrides(t *testing.T) {
	// Backend nests role information under a profile object; claim
	// paths map it onto the domain shape.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "u-3",
			"email": "letrada@example.com",
			"profile": {"kind": "lawyer", "specialty": "abogado", "display_name": "María Pérez"}
		}`))
	}), ClaimPaths{
		Role:             "profile.kind",
		ProfessionalType: "profile.specialty",
		FullName:         "profile.display_name",
	})

	user, err := client.FetchProfile(context.Background(), "test-token")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleLawyer, user.Role)
	assert.Equal(t, domainauth.ProfessionalAbogado, user.ProfessionalType)
	assert.Equal(t, "María Pérez", user.FullName)
}
