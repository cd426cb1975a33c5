package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/mediastore"
	"github.com/clipstream/backend/internal/pipeline"
	"github.com/clipstream/backend/internal/uploads"
)

// multipartMemoryLimit bounds how much of a parsed form is held in memory;
// larger parts spill to disk before staging.
const multipartMemoryLimit = 32 << 20

// UploadHandler accepts multipart video submissions and runs them through the
// moderation pipeline.
type UploadHandler struct {
	Sessions SessionManager
	Staging  *uploads.Staging
	Pipeline UploadPipeline
	MaxBytes int64
}

// Create handles POST /api/v1/videos.
func (h UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Sessions == nil || h.Staging == nil || h.Pipeline == nil {
		logger.Error("upload dependencies unavailable",
			"hasSessions", h.Sessions != nil, "hasStaging", h.Staging != nil, "hasPipeline", h.Pipeline != nil)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "upload services unavailable"})
		return
	}

	ownerID, err := h.Sessions.Authenticate(ctx, bearerToken(r))
	if err != nil {
		logger.Warn("upload authentication failed", "error", err)
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	ctx, span := logging.StartSpan(ctx, "video.upload")
	defer span.End()
	logger = logging.FromContext(ctx)
	r = r.WithContext(ctx)

	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("upload exceeds size limit", "limit", tooLarge.Limit)
			respondJSON(ctx, w, http.StatusRequestEntityTooLarge, map[string]string{"error": "upload exceeds size limit"})
			return
		}
		logger.Warn("invalid multipart payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid multipart request body"})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))

	videoPath, err := h.stageFile(r, "video")
	if err != nil {
		logger.Warn("stage video file", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "a video file is required"})
		return
	}

	thumbnailPath, err := h.stageFile(r, "thumbnail")
	if err != nil {
		logger.Warn("stage thumbnail file", "error", err)
		_ = mediastore.RemoveLocal(videoPath)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "a thumbnail image is required"})
		return
	}

	result, err := h.Pipeline.Submit(ctx, pipeline.Request{
		OwnerID:       ownerID,
		Title:         title,
		Description:   description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		h.respondPipelineError(w, r, err)
		return
	}

	payload := uploadResponse{
		Video:       newVideoResponse(result.Video),
		IsPublished: result.Video.IsPublished,
	}
	if result.State == pipeline.StateReviewPending {
		payload.Message = "your upload is awaiting review and will appear once approved"
	}

	respondJSON(ctx, w, http.StatusCreated, payload)
}

func (h UploadHandler) stageFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return h.Staging.Stage(file, fileName(header))
}

func (h UploadHandler) respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var validation *pipeline.ValidationError
	if errors.As(err, &validation) {
		logger.Info("upload rejected by local checks", "reasons", validation.Reasons)
		respondJSON(ctx, w, http.StatusBadRequest, rejectionResponse{
			Error:   "upload rejected",
			Reasons: validation.Reasons,
		})
		return
	}

	var content *pipeline.ContentError
	if errors.As(err, &content) {
		logger.Info("upload rejected by content analysis", "asset", content.Asset, "reason", content.Reason)
		respondJSON(ctx, w, http.StatusUnprocessableEntity, rejectionResponse{
			Error:   "upload rejected by content analysis",
			Reasons: []string{content.Reason},
		})
		return
	}

	var upload *pipeline.UploadError
	if errors.As(err, &upload) {
		logger.Error("upload to media store failed", "asset", upload.Asset, "error", upload.Err)
		respondJSON(ctx, w, http.StatusBadGateway, map[string]string{"error": "media storage is currently unavailable"})
		return
	}

	var persist *pipeline.PersistError
	if errors.As(err, &persist) {
		logger.Error("persist uploaded video record", "error", persist.Err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to save the uploaded video"})
		return
	}

	logger.Error("upload failed", "error", err)
	respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "upload failed"})
}

func fileName(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	return header.Filename
}

func bearerToken(r *http.Request) string {
	value := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if len(value) > len(prefix) && strings.EqualFold(value[:len(prefix)], prefix) {
		return strings.TrimSpace(value[len(prefix):])
	}
	return ""
}

type uploadResponse struct {
	Video       videoResponse `json:"video"`
	IsPublished bool          `json:"isPublished"`
	Message     string        `json:"message,omitempty"`
}

type rejectionResponse struct {
	Error   string   `json:"error"`
	Reasons []string `json:"reasons"`
}
