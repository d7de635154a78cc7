// Package handler contains the HTTP request handlers for the remix API.
//
// Handlers are the glue between HTTP and the services: they decode JSON,
// call a service method, and encode the result or map the error. They never
// touch SQL or the completion SDK.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/content-remix/internal/model"
	"github.com/sakif/content-remix/internal/service"
)

// RemixHandler serves the transform gateway endpoints.
type RemixHandler struct {
	svc          *service.RemixService
	exposeDetail bool
	logger       *slog.Logger
}

// NewRemixHandler creates a RemixHandler. exposeDetail should be true only
// outside production — it controls whether upstream error detail strings
// appear in responses.
func NewRemixHandler(svc *service.RemixService, exposeDetail bool, logger *slog.Logger) *RemixHandler {
	return &RemixHandler{
		svc:          svc,
		exposeDetail: exposeDetail,
		logger:       logger,
	}
}

// remixRequest is the body of POST /api/remix. Type is optional and
// defaults to "improve" in the service.
type remixRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// remixTypesResponse wraps the mode listing for GET /api/remix-types.
type remixTypesResponse struct {
	Types []model.RemixType `json:"types"`
}

// HandleTypes returns the fixed enumeration of supported remix types.
//
// HTTP: GET /api/remix-types
func (h *RemixHandler) HandleTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, remixTypesResponse{Types: h.svc.Types()})
}

// HandleRemix transforms the submitted text with the requested mode.
//
// HTTP: POST /api/remix
// REQUEST BODY: {"text": "...", "type": "summarize"}
func (h *RemixHandler) HandleRemix(w http.ResponseWriter, r *http.Request) {
	var req remixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid remix request body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := h.svc.Remix(r.Context(), req.Text, req.Type)
	if err != nil {
		writeError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
