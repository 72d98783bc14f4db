package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

// fallbackPage is served when the external admin page cannot be fetched.
const fallbackPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Manage</title></head>
<body>
<h1>Admin page unavailable</h1>
<p>The management page could not be loaded. Use the API directly or try again later.</p>
</body>
</html>`

// ManageHandler proxies the externally hosted admin HTML page.
type ManageHandler struct {
	pageURL string
	client  *http.Client
}

func NewManageHandler(pageURL string, fetchTimeout time.Duration) *ManageHandler {
	return &ManageHandler{
		pageURL: pageURL,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// GET /manage
func (h *ManageHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if h.pageURL == "" {
		io.WriteString(w, fallbackPage)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.pageURL, nil)
	if err != nil {
		slog.Error("error building manage page request", "error", err)
		io.WriteString(w, fallbackPage)
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		slog.Error("error fetching manage page", "error", err, "url", h.pageURL)
		io.WriteString(w, fallbackPage)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("manage page fetch returned non-200", "status", resp.StatusCode, "url", h.pageURL)
		io.WriteString(w, fallbackPage)
		return
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Error("error streaming manage page", "error", err)
	}
}
