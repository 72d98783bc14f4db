package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestManagePageProxiesExternalHTML(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html><body>admin panel</body></html>")
	}))
	defer upstream.Close()

	handler := NewManageHandler(upstream.URL, 5*time.Second)
	rr := httptest.NewRecorder()
	handler.ServePage(rr, httptest.NewRequest(http.MethodGet, "/manage", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "admin panel") {
		t.Fatalf("body = %q, want upstream HTML", rr.Body.String())
	}
}

func TestManagePageFallsBackOnFetchFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	upstream.Close() // connection refused from here on

	handler := NewManageHandler(upstream.URL, time.Second)
	rr := httptest.NewRecorder()
	handler.ServePage(rr, httptest.NewRequest(http.MethodGet, "/manage", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "Admin page unavailable") {
		t.Fatalf("body = %q, want fallback page", rr.Body.String())
	}
}

func TestManagePageFallsBackOnUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	handler := NewManageHandler(upstream.URL, time.Second)
	rr := httptest.NewRecorder()
	handler.ServePage(rr, httptest.NewRequest(http.MethodGet, "/manage", nil))

	if !strings.Contains(rr.Body.String(), "Admin page unavailable") {
		t.Fatalf("body = %q, want fallback page", rr.Body.String())
	}
}

func TestManagePageWithoutConfiguredURL(t *testing.T) {
	handler := NewManageHandler("", time.Second)
	rr := httptest.NewRecorder()
	handler.ServePage(rr, httptest.NewRequest(http.MethodGet, "/manage", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "Admin page unavailable") {
		t.Fatalf("body = %q, want fallback page", rr.Body.String())
	}
}
