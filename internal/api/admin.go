package api

import (
	"errors"
	"log/slog"
	"net/http"

	"homepage/internal/auth"
)

type AdminHandler struct {
	auth *auth.Service
}

func NewAdminHandler(authService *auth.Service) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// POST /api/admin/login — a probe rather than a gated route: it runs the
// auth check itself and reports the outcome, so the front-end can validate
// credentials before storing them.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	ok, err := h.auth.Authenticate(r.Context(), r)
	if err != nil {
		slog.Error("error checking credentials", "error", err)
		internalError(w, err)
		return
	}
	if !ok {
		writeStatus(w, http.StatusUnauthorized, false, "invalid credentials")
		return
	}
	writeStatus(w, http.StatusOK, true, "login successful")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// PUT /api/admin/password
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	err := h.auth.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword)
	if errors.Is(err, auth.ErrWrongPassword) {
		badRequest(w, err.Error())
		return
	}
	if err != nil {
		slog.Error("error changing password", "error", err)
		internalError(w, err)
		return
	}
	writeStatus(w, http.StatusOK, true, "password updated")
}
