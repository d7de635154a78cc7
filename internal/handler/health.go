package handler

import (
	"net/http"
	"time"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	environment string
}

// NewHealthHandler creates a HealthHandler reporting the given environment.
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment}
}

type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

// HandleHealth reports server liveness.
//
// HTTP: GET /api/health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		Environment: h.environment,
	})
}

// apiEndpoints is the listing returned by the JSON 404 fallback, so a caller
// poking at a wrong path learns what the API actually offers.
var apiEndpoints = []string{
	"GET /api/health",
	"GET /api/remix-types",
	"POST /api/remix",
	"POST /api/save-tweet",
	"GET /api/saved-tweets",
	"DELETE /api/saved-tweets/{id}",
}

type notFoundResponse struct {
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// HandleNotFound is the router's fallback for unknown paths.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, notFoundResponse{
		Error:     "not_found",
		Message:   "endpoint not found: " + r.Method + " " + r.URL.Path,
		Endpoints: apiEndpoints,
	})
}
