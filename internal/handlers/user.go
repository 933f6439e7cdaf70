package handlers

import (
	"net/http"

	"github.com/miky2184/chargeability-manager-api/internal/middleware"
)

// ==========================
// User Handler
// ==========================
type UserHandler struct{}

// Me returns the authenticated user resolved by the auth middleware.
// The password hash is excluded by the model's json tags.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.Unauthorized(w)
		return
	}
	WriteJSON(w, user)
}
