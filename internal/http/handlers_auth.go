package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/justicia-ai/leia-auth/internal/ports"
	"github.com/justicia-ai/leia-auth/internal/service"
)

// AuthHandlers provides HTTP handlers for session operations: the JSON
// API, the external-provider flow, and the redirect landing.
type AuthHandlers struct {
	Svc          *service.AuthService
	Provider     ports.AuthProvider
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest is the credential login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles credential login.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_credentials",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	snap, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": snap.IsAuthenticated(),
		"user":          snap.User,
		"view":          h.Svc.RoleView(),
	})
}

// Logout handles logout.
// POST /api/auth/logout.
// Logout always succeeds from the caller's perspective; storage
// failures are logged server-side and never surface here.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Logout(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"redirect_to": LoginRoute,
	})
}

// Session returns the current session snapshot and its role view.
// GET /api/auth/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	snap := h.Svc.Session()
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": snap.IsAuthenticated(),
		"is_loading":    snap.IsLoading,
		"user":          snap.User,
		"view":          h.Svc.RoleView(),
	})
}

// Navigation returns the navigation entries for the current role.
// GET /api/navigation.
func (h *AuthHandlers) Navigation(w http.ResponseWriter, r *http.Request) {
	view := h.Svc.RoleView()
	WriteJSON(w, http.StatusOK, map[string]any{
		"role":             view.Role,
		"role_description": view.RoleDescription,
		"dashboard_home":   view.DashboardHome,
		"items":            view.Navigation,
	})
}

// BeginProviderLogin starts the external-provider flow.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) BeginProviderLogin(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	authURL, state, nonce, err := h.Provider.Begin(r.Context(), ports.BeginInput{RedirectURL: redirectURI})
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     err,
		})
		return
	}

	h.setOAuthCookies(w, r, oauthCookieParams{State: state, Nonce: nonce, RedirectURI: redirectURI})
	http.Redirect(w, r, authURL, http.StatusFound)
}

// ProviderCallback completes the external-provider flow and forwards
// onto the redirect landing. Provider-reported errors and exchange
// failures are forwarded too; the landing owns the terminal outcome.
// GET /auth/oidc/callback?code=<code>&state=<state>.
func (h *AuthHandlers) ProviderCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.clearOAuthCookies(w, r)
		http.Redirect(w, r, landingURL(url.Values{"error": {errParam}}), http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		h.clearOAuthCookies(w, r)
		http.Redirect(w, r, landingURL(url.Values{"error": {"missing_code_or_state"}}), http.StatusFound)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != state {
		h.clearOAuthCookies(w, r)
		http.Redirect(w, r, landingURL(url.Values{"error": {"invalid_state"}}), http.StatusFound)
		return
	}
	nonce := ""
	if nonceCookie, cookieErr := r.Cookie("oauth_nonce"); cookieErr == nil {
		nonce = nonceCookie.Value
	}

	identity, err := h.Provider.Exchange(r.Context(), ports.ExchangeInput{Code: code, State: state, Nonce: nonce})
	if err != nil {
		h.clearOAuthCookies(w, r)
		h.logger().WarnContext(r.Context(), "provider exchange failed", "error", err)
		http.Redirect(w, r, landingURL(url.Values{"error": {"exchange_failed"}}), http.StatusFound)
		return
	}

	// State and nonce are spent; the post-login redirect cookie stays
	// until the landing consumes it.
	h.clearCookie(w, r, "oauth_state")
	h.clearCookie(w, r, "oauth_nonce")

	http.Redirect(w, r, landingURL(url.Values{
		"token": {identity.Token},
		"user":  {identity.EmailHint},
	}), http.StatusFound)
}

// Landing handles the redirect landing: the single convergence point
// where provider redirects rejoin the session lifecycle.
// GET /auth/callback?token=<token>&user=<email>   (success redirects)
// GET /auth/callback?error=<reason>               (provider failures).
func (h *AuthHandlers) Landing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	outcome := h.Svc.CompleteRedirectLanding(r.Context(), service.Landing{
		Token:      q.Get("token"),
		EmailHint:  q.Get("user"),
		ErrorParam: q.Get("error"),
	})

	if outcome.Established() {
		http.Redirect(w, r, h.postLoginTarget(w, r, outcome.RedirectTo), http.StatusSeeOther)
		return
	}

	// Transient failure page: show the message, then bounce to the
	// fallback route after the outcome's delay.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Refresh", fmt.Sprintf("%d;url=%s", int(outcome.Delay.Seconds()), outcome.RedirectTo))
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, outcome.Message)
}

// postLoginTarget consumes the post_login_redirect cookie set when the
// provider flow began. A valid same-origin path overrides the role's
// dashboard home; an absent or unsafe value falls back to it.
func (h *AuthHandlers) postLoginTarget(w http.ResponseWriter, r *http.Request, fallback string) string {
	cookie, err := r.Cookie("post_login_redirect")
	if err != nil {
		return fallback
	}
	h.clearCookie(w, r, "post_login_redirect")
	if target := safeRedirectPath(cookie.Value); target != "/" {
		return target
	}
	return fallback
}

// landingURL builds the landing route with the given query parameters.
func landingURL(q url.Values) string {
	u := url.URL{Path: "/auth/callback", RawQuery: q.Encode()}
	return u.String()
}

// oauthCookieParams groups values needed to set OAuth cookies.
type oauthCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

// setOAuthCookies stores OAuth state, nonce, and the post-login redirect in secure cookies.
func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	cd := h.CookieDomain

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    p.State,
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_nonce",
		Value:    p.Nonce,
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "post_login_redirect",
		Value:    p.RedirectURI,
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})
}

func (h *AuthHandlers) clearOAuthCookies(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, r, "oauth_state")
	h.clearCookie(w, r, "oauth_nonce")
	h.clearCookie(w, r, "post_login_redirect")
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when
// setting cookies to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
