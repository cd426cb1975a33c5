package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clipstream/backend/internal/mediastore"
	"github.com/clipstream/backend/internal/models"
	"github.com/clipstream/backend/internal/moderation"
)

// State is the terminal outcome of a pipeline run.
type State string

const (
	StateRejected      State = "rejected"
	StateReviewPending State = "review_pending"
	StatePublished     State = "published"
)

// Request is one upload submission. Both file paths must exist when Submit
// is called; the pipeline consumes (and removes) them regardless of outcome.
type Request struct {
	OwnerID       string
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// Result reports a successful terminal state together with the persisted
// record.
type Result struct {
	Video models.Video
	State State
}

// MediaStore is the durable storage client the pipeline uploads through.
type MediaStore interface {
	Upload(ctx context.Context, localPath string, kind mediastore.AssetKind) (mediastore.UploadOutcome, error)
	Delete(ctx context.Context, asset mediastore.Asset)
}

// VideoCreator persists the final video record.
type VideoCreator interface {
	Create(ctx context.Context, video models.Video) error
}

// DurationProber extracts the duration of a local video file.
type DurationProber interface {
	Probe(ctx context.Context, path string) (float64, error)
}

// Pipeline sequences local heuristics, asset upload, AI verdicts, and
// record persistence for a single upload, cleaning up partial state on
// every failure path. One Pipeline serves concurrent submissions; each run
// owns its own files and assets.
type Pipeline struct {
	local      *moderation.LocalModerator
	store      MediaStore
	videos     VideoCreator
	thresholds moderation.Thresholds
	logger     *slog.Logger

	// Prober is optional; when unset, records carry a zero duration.
	Prober DurationProber
	// NowFunc and IDFunc let tests pin record metadata.
	NowFunc func() time.Time
	IDFunc  func() string
}

// New constructs the pipeline with the default local moderator.
func New(store MediaStore, videos VideoCreator, thresholds moderation.Thresholds, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		local:      moderation.NewLocalModerator(),
		store:      store,
		videos:     videos,
		thresholds: thresholds,
		logger:     logger,
	}
}

// Submit runs one upload to a terminal state. On success the returned state
// is StatePublished or StateReviewPending and the record has been persisted
// with IsPublished set accordingly. On failure the error is one of
// *ValidationError, *UploadError, *ContentError, or *PersistError.
func (p *Pipeline) Submit(ctx context.Context, req Request) (Result, error) {
	defer p.cleanupLocal(req.VideoPath, req.ThumbnailPath)

	verdict := p.local.Evaluate(req.Title, req.Description, req.VideoPath, req.ThumbnailPath)
	if !verdict.Passed {
		return Result{State: StateRejected}, &ValidationError{Reasons: verdict.Reasons}
	}

	// Probe before uploading: the store client removes the local file.
	var duration float64
	if p.Prober != nil {
		d, err := p.Prober.Probe(ctx, req.VideoPath)
		if err != nil {
			p.logger.Warn("probe video duration", "path", req.VideoPath, "error", err)
		} else {
			duration = d
		}
	}

	video, err := p.store.Upload(ctx, req.VideoPath, mediastore.KindVideo)
	if err != nil {
		return Result{State: StateRejected}, &UploadError{Asset: "video", Err: err}
	}

	thumbnail, err := p.store.Upload(ctx, req.ThumbnailPath, mediastore.KindImage)
	if err != nil {
		p.store.Delete(context.WithoutCancel(ctx), video.Asset)
		return Result{State: StateRejected}, &UploadError{Asset: "thumbnail", Err: err}
	}

	assets := []struct {
		name    string
		outcome mediastore.UploadOutcome
	}{
		{"video", video},
		{"thumbnail", thumbnail},
	}

	for _, asset := range assets {
		if !asset.outcome.ScoresAvailable {
			continue
		}
		assessment := moderation.EvaluateScores(asset.outcome.Scores, p.thresholds)
		if !assessment.Inappropriate {
			continue
		}

		// The pair is unacceptable even when only one asset tripped.
		cleanupCtx := context.WithoutCancel(ctx)
		p.store.Delete(cleanupCtx, video.Asset)
		p.store.Delete(cleanupCtx, thumbnail.Asset)
		return Result{State: StateRejected}, &ContentError{Asset: asset.name, Reason: assessment.Reason}
	}

	// Soft signals compound: a clean AI pass never overrides a local
	// review flag, and a silent side-channel always degrades to review.
	requiresReview := verdict.RequiresReview || !video.ScoresAvailable || !thumbnail.ScoresAvailable

	record := models.Video{
		ID:                p.newID(),
		OwnerID:           req.OwnerID,
		Title:             req.Title,
		Description:       req.Description,
		VideoURL:          video.Asset.URL,
		VideoPublicID:     video.Asset.PublicID,
		ThumbnailURL:      thumbnail.Asset.URL,
		ThumbnailPublicID: thumbnail.Asset.PublicID,
		Duration:          duration,
		IsPublished:       !requiresReview,
		CreatedAt:         p.now(),
	}

	if err := p.videos.Create(ctx, record); err != nil {
		// Remote assets are retained on purpose: the media is legitimate
		// and only the record write needs an operator retry.
		p.logger.Error("persist video record after successful upload",
			"videoPublicId", record.VideoPublicID,
			"thumbnailPublicId", record.ThumbnailPublicID,
			"error", err)
		return Result{State: StateRejected}, &PersistError{Err: err}
	}

	state := StatePublished
	if requiresReview {
		state = StateReviewPending
	}

	return Result{Video: record, State: state}, nil
}

func (p *Pipeline) cleanupLocal(paths ...string) {
	for _, path := range paths {
		if err := mediastore.RemoveLocal(path); err != nil {
			p.logger.Warn("remove staged upload file", "path", path, "error", err)
		}
	}
}

func (p *Pipeline) now() time.Time {
	if p.NowFunc != nil {
		return p.NowFunc()
	}
	return time.Now().UTC()
}

func (p *Pipeline) newID() string {
	if p.IDFunc != nil {
		return p.IDFunc()
	}
	return uuid.NewString()
}
