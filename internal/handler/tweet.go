package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/content-remix/internal/model"
	"github.com/sakif/content-remix/internal/service"
)

// TweetHandler serves the saved-tweet endpoints.
type TweetHandler struct {
	svc          *service.TweetService
	exposeDetail bool
	logger       *slog.Logger
}

// NewTweetHandler creates a TweetHandler.
func NewTweetHandler(svc *service.TweetService, exposeDetail bool, logger *slog.Logger) *TweetHandler {
	return &TweetHandler{
		svc:          svc,
		exposeDetail: exposeDetail,
		logger:       logger,
	}
}

// saveTweetRequest is the body of POST /api/save-tweet. TweetType is
// optional and defaults to "unique".
type saveTweetRequest struct {
	Content   string `json:"content"`
	TweetType string `json:"tweetType"`
}

type saveTweetResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type listTweetsResponse struct {
	Tweets []model.Tweet `json:"tweets"`
}

type deleteTweetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleSave persists a tweet.
//
// HTTP: POST /api/save-tweet
// REQUEST BODY: {"content": "...", "tweetType": "thread"}
func (h *TweetHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req saveTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid save-tweet request body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "request body must be valid JSON",
		})
		return
	}

	tweet, err := h.svc.Save(r.Context(), req.Content, req.TweetType)
	if err != nil {
		writeError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusCreated, saveTweetResponse{
		Success: true,
		ID:      tweet.ID,
		Message: "Tweet saved successfully",
	})
}

// HandleList returns all saved tweets, newest first.
//
// HTTP: GET /api/saved-tweets
func (h *TweetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, listTweetsResponse{Tweets: tweets})
}

// HandleDelete removes a saved tweet by id.
//
// HTTP: DELETE /api/saved-tweets/{id}
//
// The raw path segment goes straight to the service, which owns the
// "positive integer" parsing rule — so every caller gets the same 400.
func (h *TweetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, deleteTweetResponse{
		Success: true,
		Message: "Tweet deleted",
	})
}
