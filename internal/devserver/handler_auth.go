package devserver

import (
	"log/slog"
	"net/http"

	"github.com/3ricLu/Symptomfy-sub001/pkg/httputil"
	"github.com/3ricLu/Symptomfy-sub001/pkg/validator"
	apperrors "github.com/3ricLu/Symptomfy-sub001/pkg/errors"
)

// AuthHandler implements the auth endpoints of the stub backend.
type AuthHandler struct {
	users  *UserStore
	jwt    *JWTManager
	logger *slog.Logger
}

// NewAuthHandler creates the auth HTTP handler.
func NewAuthHandler(users *UserStore, jwt *JWTManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Login handles POST /api/auth.
//
// Token keys are hyphenated here; the real backend's login endpoint
// spells them this way and clients depend on it.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req loginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	access, refresh, err := h.issueTokens(user)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "login",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"access-token":  access,
		"refresh-token": refresh,
	})
}

// Register handles POST /api/user. New accounts are patients.
//
// Token keys use underscores here, unlike login.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req registerRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	user, err := h.users.Create(req.Email, req.Password, req.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	access, refresh, err := h.issueTokens(user)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "user registered",
		slog.String("user_id", user.ID),
	)

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Refresh handles POST /api/user/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req refreshRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	claims, err := h.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		httputil.WriteError(w, r, apperrors.Unauthorized("invalid or expired refresh token"), h.logger)
		return
	}

	user, err := h.users.GetByID(claims.UserID)
	if err != nil {
		httputil.WriteError(w, r, apperrors.Unauthorized("unknown user"), h.logger)
		return
	}

	access, refresh, err := h.issueTokens(user)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "tokens refreshed",
		slog.String("user_id", user.ID),
	)

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"access-token":  access,
		"refresh-token": refresh,
	})
}

func (h *AuthHandler) issueTokens(user *User) (access, refresh string, err error) {
	access, err = h.jwt.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err = h.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
