package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"homepage/internal/entitlement"
	"homepage/internal/models"
)

type EntitlementHandler struct {
	svc *entitlement.Service
}

func NewEntitlementHandler(svc *entitlement.Service) *EntitlementHandler {
	return &EntitlementHandler{svc: svc}
}

type redeemRequest struct {
	Code  string `json:"code" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type redeemResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Value   string `json:"value"`
}

// POST /api/redeem — marks the code used and echoes its type and value. The
// entitlement itself is applied out of band by whoever interprets them.
func (h *EntitlementHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	code, err := h.svc.Redeem(r.Context(), req.Code, req.Email)
	if errors.Is(err, entitlement.ErrCodeInvalid) {
		badRequest(w, err.Error())
		return
	}
	if err != nil {
		slog.Error("error redeeming code", "error", err)
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, redeemResponse{
		Success: true,
		Message: "code redeemed",
		Type:    code.Type,
		Value:   code.Value,
	})
}

type vipCheckResponse struct {
	IsVip      bool       `json:"isVip"`
	Level      string     `json:"level,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	Expired    bool       `json:"expired,omitempty"`
}

// GET /api/vip/check?email=
func (h *EntitlementHandler) CheckVip(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		badRequest(w, "email is required")
		return
	}

	status, err := h.svc.CheckVip(r.Context(), email)
	if err != nil {
		slog.Error("error checking vip status", "error", err)
		internalError(w, err)
		return
	}

	resp := vipCheckResponse{IsVip: status.IsVip, Expired: status.Expired}
	if status.IsVip {
		resp.Level = status.Level
		resp.ExpiryDate = &status.ExpiryDate
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/verified/check?email=
func (h *EntitlementHandler) CheckVerified(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		badRequest(w, "email is required")
		return
	}

	verified, err := h.svc.IsVerified(r.Context(), email)
	if err != nil {
		slog.Error("error checking verified status", "error", err)
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isVerified": verified})
}

// GET /api/admin/redeem-codes
func (h *EntitlementHandler) ListCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.svc.ListCodes(r.Context())
	if err != nil {
		slog.Error("error listing redeem codes", "error", err)
		internalError(w, err)
		return
	}
	if codes == nil {
		codes = []models.RedeemCode{}
	}
	writeJSON(w, http.StatusOK, codes)
}

type createCodesRequest struct {
	Type        string `json:"type" validate:"required"`
	Value       string `json:"value" validate:"required"`
	Count       int    `json:"count" validate:"gte=0,lte=100"`
	Description string `json:"description"`
}

type createCodesResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Codes   []models.RedeemCode `json:"codes"`
}

// POST /api/admin/redeem-codes — batch generation; count defaults to 1.
func (h *EntitlementHandler) CreateCodes(w http.ResponseWriter, r *http.Request) {
	var req createCodesRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	codes, err := h.svc.CreateCodes(r.Context(), req.Type, req.Value, req.Description, req.Count)
	if err != nil {
		slog.Error("error creating redeem codes", "error", err)
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createCodesResponse{
		Success: true,
		Message: "codes created",
		Codes:   codes,
	})
}

type deleteCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// DELETE /api/admin/redeem-codes
func (h *EntitlementHandler) DeleteCode(w http.ResponseWriter, r *http.Request) {
	var req deleteCodeRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	err := h.svc.DeleteCode(r.Context(), req.Code)
	if errors.Is(err, entitlement.ErrNotFound) {
		badRequest(w, "code not found")
		return
	}
	if err != nil {
		slog.Error("error deleting redeem code", "error", err)
		internalError(w, err)
		return
	}
	writeStatus(w, http.StatusOK, true, "code deleted")
}

// GET /api/admin/vip-users
func (h *EntitlementHandler) ListVipUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListVipUsers(r.Context())
	if err != nil {
		slog.Error("error listing vip users", "error", err)
		internalError(w, err)
		return
	}
	if users == nil {
		users = []models.VipUser{}
	}
	writeJSON(w, http.StatusOK, users)
}

type grantVipRequest struct {
	Email string `json:"email" validate:"required,email"`
	Level string `json:"level" validate:"required"`
	Days  int    `json:"days" validate:"gte=0,lte=3650"`
}

// POST /api/admin/vip-users — upsert by email; days defaults to 30.
func (h *EntitlementHandler) GrantVip(w http.ResponseWriter, r *http.Request) {
	var req grantVipRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if req.Days == 0 {
		req.Days = 30
	}

	if _, err := h.svc.GrantVip(r.Context(), req.Email, req.Level, req.Days); err != nil {
		slog.Error("error granting vip", "error", err)
		internalError(w, err)
		return
	}
	writeStatus(w, http.StatusOK, true, "vip granted")
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// DELETE /api/admin/vip-users
func (h *EntitlementHandler) RevokeVip(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	err := h.svc.RevokeVip(r.Context(), req.Email)
	if errors.Is(err, entitlement.ErrNotFound) {
		badRequest(w, "vip user not found")
		return
	}
	if err != nil {
		slog.Error("error revoking vip", "error", err)
		internalError(w, err)
		return
	}
	writeStatus(w, http.StatusOK, true, "vip revoked")
}

// GET /api/admin/verified-users
func (h *EntitlementHandler) ListVerifiedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListVerifiedUsers(r.Context())
	if err != nil {
		slog.Error("error listing verified users", "error", err)
		internalError(w, err)
		return
	}
	if users == nil {
		users = []models.VerifiedUser{}
	}
	writeJSON(w, http.StatusOK, users)
}

type addVerifiedRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

// POST /api/admin/verified-users — strict create, no upsert.
func (h *EntitlementHandler) AddVerified(w http.ResponseWriter, r *http.Request) {
	var req addVerifiedRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	_, err := h.svc.AddVerified(r.Context(), req.Email, req.Name)
	if errors.Is(err, entitlement.ErrDuplicate) {
		badRequest(w, "email is already verified")
		return
	}
	if err != nil {
		slog.Error("error adding verified user", "error", err)
		internalError(w, err)
		return
	}
	writeStatus(w, http.StatusOK, true, "verified user added")
}

// DELETE /api/admin/verified-users
func (h *EntitlementHandler) RemoveVerified(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	err := h.svc.RemoveVerified(r.Context(), req.Email)
	if errors.Is(err, entitlement.ErrNotFound) {
		badRequest(w, "verified user not found")
		return
	}
	if err != nil {
		slog.Error("error removing verified user", "error", err)
		internalError(w, err)
		return
	}
	writeStatus(w, http.StatusOK, true, "verified user removed")
}
