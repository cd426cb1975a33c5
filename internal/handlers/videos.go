package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/models"
)

// defaultListLimit caps listings when the caller does not ask for a size.
const defaultListLimit = 50

// VideoHandler provides the public video listing endpoint.
type VideoHandler struct {
	Videos VideoStore
}

// List handles GET /api/v1/videos. Only published videos appear; uploads held
// for review stay hidden until a moderator approves them.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Videos == nil {
		logger.Error("video store unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "video services unavailable"})
		return
	}

	videos, err := h.Videos.ListPublished(ctx, listLimit(r))
	if err != nil {
		logger.Error("list published videos", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to load videos"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, videoListResponse{Videos: newVideoResponses(videos)})
}

func listLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	return limit
}

type videoResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     float64   `json:"duration"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
}

type videoListResponse struct {
	Videos []videoResponse `json:"videos"`
}

func newVideoResponse(video models.Video) videoResponse {
	return videoResponse{
		ID:           video.ID,
		OwnerID:      video.OwnerID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		IsPublished:  video.IsPublished,
		CreatedAt:    video.CreatedAt,
	}
}

func newVideoResponses(videos []models.Video) []videoResponse {
	responses := make([]videoResponse, 0, len(videos))
	for _, video := range videos {
		responses = append(responses, newVideoResponse(video))
	}
	return responses
}
