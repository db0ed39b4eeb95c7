package devserver

import (
	"log/slog"
	"net/http"

	apperrors "github.com/3ricLu/Symptomfy-sub001/pkg/errors"
	"github.com/3ricLu/Symptomfy-sub001/pkg/httputil"
	"github.com/3ricLu/Symptomfy-sub001/pkg/middleware"
)

// ProfileHandler serves the role-specific profile endpoints. Each endpoint
// answers only for its own role; the wrong role gets a 403, which the client
// uses to rule the role out.
type ProfileHandler struct {
	users  *UserStore
	logger *slog.Logger
}

// NewProfileHandler creates the profile HTTP handler.
func NewProfileHandler(users *UserStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, logger: logger}
}

// Patient handles GET /api/patient.
func (h *ProfileHandler) Patient(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireRole(w, r, "patient")
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"user_id":       user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"date_of_birth": user.DateOfBirth,
	})
}

// Doctor handles GET /api/doctor.
func (h *ProfileHandler) Doctor(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireRole(w, r, "doctor")
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"user_id":   user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"specialty": user.Specialty,
	})
}

// Admin handles GET /api/admin.
func (h *ProfileHandler) Admin(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireRole(w, r, "admin")
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"level":   user.AdminLevel,
	})
}

func (h *ProfileHandler) requireRole(w http.ResponseWriter, r *http.Request, role string) (*User, bool) {
	userID := middleware.UserIDFromContext(r.Context())
	user, err := h.users.GetByID(userID)
	if err != nil {
		httputil.WriteError(w, r, apperrors.Unauthorized("unknown user"), h.logger)
		return nil, false
	}
	if user.Role != role {
		httputil.WriteError(w, r, apperrors.Forbidden("profile belongs to a different role"), h.logger)
		return nil, false
	}
	return user, true
}
