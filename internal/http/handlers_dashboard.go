package httpx

import (
	"net/http"
)

// DashboardHandlers serves the role-gated dashboard landing endpoints.
// Each responds with the role view the guards resolved for the request;
// the actual dashboard frontends consume these as their bootstrap data.
type DashboardHandlers struct{}

// Usuario is the client dashboard home.
// GET /dashboard/usuario.
func (h *DashboardHandlers) Usuario(w http.ResponseWriter, r *http.Request) {
	h.render(w, r)
}

// Profesional is the professional dashboard home.
// GET /dashboard/profesional.
func (h *DashboardHandlers) Profesional(w http.ResponseWriter, r *http.Request) {
	h.render(w, r)
}

func (h *DashboardHandlers) render(w http.ResponseWriter, r *http.Request) {
	view, ok := ViewFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, LoginRoute, http.StatusSeeOther)
		return
	}
	sess, _ := SessionFromContext(r.Context())
	WriteJSON(w, http.StatusOK, map[string]any{
		"user": sess.User,
		"view": view,
	})
}
