package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/repositories"
)

// ReviewHandler exposes the human moderation queue. Uploads land here when
// automated checks could not clear them outright.
type ReviewHandler struct {
	Sessions SessionManager
	Videos   VideoStore
}

// Queue handles GET /api/v1/moderation/queue.
func (h ReviewHandler) Queue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Sessions == nil || h.Videos == nil {
		logger.Error("moderation dependencies unavailable", "hasSessions", h.Sessions != nil, "hasVideos", h.Videos != nil)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "moderation services unavailable"})
		return
	}

	if _, err := h.Sessions.Authenticate(ctx, bearerToken(r)); err != nil {
		logger.Warn("moderation queue authentication failed", "error", err)
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	videos, err := h.Videos.ListPendingReview(ctx, listLimit(r))
	if err != nil {
		logger.Error("list review queue", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to load the review queue"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, videoListResponse{Videos: newVideoResponses(videos)})
}

// Publish handles POST /api/v1/moderation/publish: a moderator approving a
// held upload.
func (h ReviewHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Sessions == nil || h.Videos == nil {
		logger.Error("moderation dependencies unavailable", "hasSessions", h.Sessions != nil, "hasVideos", h.Videos != nil)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "moderation services unavailable"})
		return
	}

	if _, err := h.Sessions.Authenticate(ctx, bearerToken(r)); err != nil {
		logger.Warn("moderation publish authentication failed", "error", err)
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid publish payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.VideoID = strings.TrimSpace(req.VideoID)
	if req.VideoID == "" {
		logger.Warn("publish missing video id")
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "videoId is required"})
		return
	}

	if err := h.Videos.SetPublished(ctx, req.VideoID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.Warn("publish unknown video", "videoId", req.VideoID)
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
			return
		}
		logger.Error("publish video", "videoId", req.VideoID, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to publish video"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "published"})
}

type publishRequest struct {
	VideoID string `json:"videoId"`
}
