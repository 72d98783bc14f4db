package api

import (
	"net/http"

	"homepage/internal/docs"
)

type HealthHandler struct {
	registry *docs.Registry
}

func NewHealthHandler(registry *docs.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	storeStatus := "ok"
	status := http.StatusOK

	if err := h.registry.Ping(r.Context()); err != nil {
		storeStatus = "error"
		status = http.StatusServiceUnavailable
	}

	result := "ok"
	if status != http.StatusOK {
		result = "degraded"
	}

	writeJSON(w, status, map[string]any{
		"status": result,
		"checks": map[string]string{
			"store": storeStatus,
		},
	})
}
