package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"homepage/internal/docs"
	"homepage/internal/models"
)

// ContentHandler serves the site documents: profile, announcement, portals.
type ContentHandler struct {
	registry  *docs.Registry
	sanitizer *bluemonday.Policy
}

func NewContentHandler(registry *docs.Registry) *ContentHandler {
	return &ContentHandler{
		registry:  registry,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// GET /api/profile
func (h *ContentHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.registry.Profile(r.Context())
	if err != nil {
		slog.Error("error loading profile", "error", err)
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// PUT /api/profile — the stored document is replaced wholesale.
func (h *ContentHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	profile.Bio = h.sanitizer.Sanitize(profile.Bio)

	if err := h.registry.SaveProfile(r.Context(), profile); err != nil {
		slog.Error("error saving profile", "error", err)
		internalError(w, err)
		return
	}
	writeStatus(w, http.StatusOK, true, "profile updated")
}

// GET /api/announcement
func (h *ContentHandler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement, err := h.registry.Announcement(r.Context())
	if err != nil {
		slog.Error("error loading announcement", "error", err)
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, announcement)
}

type updateAnnouncementRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Enabled *bool   `json:"enabled"`
}

// PUT /api/announcement — partial update; updatedAt is always server-set.
func (h *ContentHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req updateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	announcement, err := h.registry.Announcement(r.Context())
	if err != nil {
		slog.Error("error loading announcement", "error", err)
		internalError(w, err)
		return
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = h.sanitizer.Sanitize(*req.Content)
	}
	if req.Enabled != nil {
		announcement.Enabled = *req.Enabled
	}
	announcement.UpdatedAt = time.Now().UTC()

	if err := h.registry.SaveAnnouncement(r.Context(), announcement); err != nil {
		slog.Error("error saving announcement", "error", err)
		internalError(w, err)
		return
	}
	writeStatus(w, http.StatusOK, true, "announcement updated")
}

// GET /api/portals — only enabled entries, in stored order.
func (h *ContentHandler) GetPortals(w http.ResponseWriter, r *http.Request) {
	portals, err := h.registry.Portals(r.Context())
	if err != nil {
		slog.Error("error loading portals", "error", err)
		internalError(w, err)
		return
	}

	enabled := make([]models.Portal, 0, len(portals))
	for _, p := range portals {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	writeJSON(w, http.StatusOK, enabled)
}

// GET /api/admin/portals — the full list, disabled entries included.
func (h *ContentHandler) GetAllPortals(w http.ResponseWriter, r *http.Request) {
	portals, err := h.registry.Portals(r.Context())
	if err != nil {
		slog.Error("error loading portals", "error", err)
		internalError(w, err)
		return
	}
	if portals == nil {
		portals = []models.Portal{}
	}
	writeJSON(w, http.StatusOK, portals)
}

// PUT /api/portals — the submitted list replaces the stored one entirely.
// Entries without an id get one assigned; ids are otherwise taken as given.
func (h *ContentHandler) UpdatePortals(w http.ResponseWriter, r *http.Request) {
	var portals []models.Portal
	if err := json.NewDecoder(r.Body).Decode(&portals); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	for i := range portals {
		if portals[i].ID == "" {
			portals[i].ID = uuid.NewString()
		}
	}

	if err := h.registry.SavePortals(r.Context(), portals); err != nil {
		slog.Error("error saving portals", "error", err)
		internalError(w, err)
		return
	}
	writeStatus(w, http.StatusOK, true, "portals updated")
}
