package api

import (
	"encoding/json"
	"net/http"
)

// StatusResponse is the uniform mutation-result shape.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeStatus(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, StatusResponse{Success: success, Message: message})
}

func badRequest(w http.ResponseWriter, message string) {
	writeStatus(w, http.StatusBadRequest, false, message)
}

func unauthorized(w http.ResponseWriter) {
	writeStatus(w, http.StatusUnauthorized, false, "unauthorized")
}

// internalError exposes the underlying error message to the caller. That
// leak is documented, long-standing behavior of this API and is kept as is.
func internalError(w http.ResponseWriter, err error) {
	writeStatus(w, http.StatusInternalServerError, false, err.Error())
}

func routeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}
