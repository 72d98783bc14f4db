package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"homepage/internal/models"
)

func TestCreateCodesBatchThenList(t *testing.T) {
	server, _ := newTestServer(t)

	body := `{"type":"vip","value":"VIP1","count":2}`
	rr := doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/redeem-codes", strings.NewReader(body))))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusOK, rr.Body.String())
	}

	var created createCodesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}
	if !created.Success {
		t.Fatalf("success = false, body=%q", rr.Body.String())
	}
	if len(created.Codes) != 2 {
		t.Fatalf("len(codes) = %d, want 2", len(created.Codes))
	}
	for _, c := range created.Codes {
		if c.Used {
			t.Fatalf("new code %q marked used", c.Code)
		}
	}

	rr = doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodGet, "/api/admin/redeem-codes", nil)))
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rr.Code, http.StatusOK)
	}

	var listed []models.RedeemCode
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}
	if len(listed) != 2 {
		t.Fatalf("len(listed) = %d, want both created codes", len(listed))
	}
}

func TestRedeemFlow(t *testing.T) {
	server, _ := newTestServer(t)

	body := `{"type":"vip","value":"VIP1","count":1}`
	rr := doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/redeem-codes", strings.NewReader(body))))
	var created createCodesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}
	code := created.Codes[0].Code

	redeemBody := fmt.Sprintf(`{"code":%q,"email":"user@example.com"}`, code)
	rr = doRequest(t, server, httptest.NewRequest(http.MethodPost, "/api/redeem", strings.NewReader(redeemBody)))
	if rr.Code != http.StatusOK {
		t.Fatalf("redeem status = %d, want %d, body=%q", rr.Code, http.StatusOK, rr.Body.String())
	}

	var redeemed redeemResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &redeemed); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}
	if !redeemed.Success || redeemed.Type != "vip" || redeemed.Value != "VIP1" {
		t.Fatalf("redeem response = %+v, want success with type/value echoed", redeemed)
	}

	// Second redemption of the same code fails.
	rr = doRequest(t, server, httptest.NewRequest(http.MethodPost, "/api/redeem", strings.NewReader(redeemBody)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("second redeem status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestRedeemValidation(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing code", `{"email":"user@example.com"}`},
		{"missing email", `{"code":"AAAA-BBBB-CCCC-DDDD"}`},
		{"bad email", `{"code":"AAAA-BBBB-CCCC-DDDD","email":"not-an-email"}`},
		{"not json", `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, server, httptest.NewRequest(http.MethodPost, "/api/redeem", strings.NewReader(tt.body)))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
			}
		})
	}
}

func TestRedeemDoesNotGrantVip(t *testing.T) {
	server, registry := newTestServer(t)

	body := `{"type":"vip","value":"VIP1","count":1}`
	rr := doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/redeem-codes", strings.NewReader(body))))
	var created createCodesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}

	redeemBody := fmt.Sprintf(`{"code":%q,"email":"user@example.com"}`, created.Codes[0].Code)
	rr = doRequest(t, server, httptest.NewRequest(http.MethodPost, "/api/redeem", strings.NewReader(redeemBody)))
	if rr.Code != http.StatusOK {
		t.Fatalf("redeem status = %d, want %d, body=%q", rr.Code, http.StatusOK, rr.Body.String())
	}

	// Redemption only reports type/value; applying the entitlement is the
	// caller's job.
	users, err := registry.VipUsers(context.Background())
	if err != nil {
		t.Fatalf("VipUsers() error = %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("len(vip users) = %d, want 0 after redemption", len(users))
	}
}

func TestVipCheckEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rr := doRequest(t, server, httptest.NewRequest(http.MethodGet, "/api/vip/check", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing email status = %d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = doRequest(t, server, httptest.NewRequest(http.MethodGet, "/api/vip/check?email=user@example.com", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusOK, rr.Body.String())
	}
	var check vipCheckResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &check); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}
	if check.IsVip {
		t.Fatalf("isVip = true for unknown email, body=%q", rr.Body.String())
	}

	grantBody := `{"email":"user@example.com","level":"gold","days":30}`
	rr = doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/vip-users", strings.NewReader(grantBody))))
	if rr.Code != http.StatusOK {
		t.Fatalf("grant status = %d, want %d, body=%q", rr.Code, http.StatusOK, rr.Body.String())
	}

	rr = doRequest(t, server, httptest.NewRequest(http.MethodGet, "/api/vip/check?email=user@example.com", nil))
	if err := json.Unmarshal(rr.Body.Bytes(), &check); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}
	if !check.IsVip || check.Level != "gold" || check.ExpiryDate == nil {
		t.Fatalf("check = %+v, want vip with level and expiry", check)
	}
}

func TestVerifiedCheckAndDuplicate(t *testing.T) {
	server, _ := newTestServer(t)

	addBody := `{"email":"user@example.com","name":"Alice"}`
	rr := doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/verified-users", strings.NewReader(addBody))))
	if rr.Code != http.StatusOK {
		t.Fatalf("add status = %d, want %d, body=%q", rr.Code, http.StatusOK, rr.Body.String())
	}

	rr = doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/verified-users", strings.NewReader(addBody))))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("duplicate add status = %d, want %d, body=%q", rr.Code, http.StatusBadRequest, rr.Body.String())
	}

	rr = doRequest(t, server, httptest.NewRequest(http.MethodGet, "/api/verified/check?email=user@example.com", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("check status = %d, want %d", rr.Code, http.StatusOK)
	}
	var check map[string]bool
	if err := json.Unmarshal(rr.Body.Bytes(), &check); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}
	if !check["isVerified"] {
		t.Fatalf("isVerified = false, body=%q", rr.Body.String())
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	server, registry := newTestServer(t)

	rr := doRequest(t, server, httptest.NewRequest(http.MethodGet, "/api/admin/vip-users", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d, body=%q", rr.Code, http.StatusUnauthorized, rr.Body.String())
	}

	var resp StatusResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body=%q", err, rr.Body.String())
	}
	if resp.Success {
		t.Fatalf("success = true on 401, body=%q", rr.Body.String())
	}
	if resp.Message == "" {
		t.Fatalf("message empty on 401, body=%q", rr.Body.String())
	}

	// The gate short-circuits before the handler: a rejected mutation must
	// leave the store untouched.
	grantBody := `{"email":"user@example.com","level":"gold","days":30}`
	rr = doRequest(t, server, httptest.NewRequest(http.MethodPost, "/api/admin/vip-users", strings.NewReader(grantBody)))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated grant status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	users, err := registry.VipUsers(context.Background())
	if err != nil {
		t.Fatalf("VipUsers() error = %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("len(users) = %d, want 0 after rejected request", len(users))
	}
}

func TestDeleteVipUser(t *testing.T) {
	server, _ := newTestServer(t)

	grantBody := `{"email":"user@example.com","level":"gold","days":30}`
	rr := doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/vip-users", strings.NewReader(grantBody))))
	if rr.Code != http.StatusOK {
		t.Fatalf("grant status = %d, want %d", rr.Code, http.StatusOK)
	}

	deleteBody := `{"email":"user@example.com"}`
	rr = doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodDelete, "/api/admin/vip-users", strings.NewReader(deleteBody))))
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want %d, body=%q", rr.Code, http.StatusOK, rr.Body.String())
	}

	rr = doRequest(t, server, asAdmin(httptest.NewRequest(http.MethodDelete, "/api/admin/vip-users", strings.NewReader(deleteBody))))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("second delete status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
