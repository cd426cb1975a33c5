package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/clipstream/backend/internal/auth"
	"github.com/clipstream/backend/internal/config"
	"github.com/clipstream/backend/internal/db"
	"github.com/clipstream/backend/internal/handlers"
	"github.com/clipstream/backend/internal/mediastore"
	"github.com/clipstream/backend/internal/middleware"
	"github.com/clipstream/backend/internal/moderation"
	"github.com/clipstream/backend/internal/pipeline"
	"github.com/clipstream/backend/internal/repositories"
	"github.com/clipstream/backend/internal/uploads"
	"github.com/clipstream/backend/internal/videos"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(pool db.Pool, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, error) {
	store, err := mediastore.NewClient(cfg.MediaStore, logger)
	if err != nil {
		return handlers.Dependencies{}, fmt.Errorf("configure media store client: %w", err)
	}

	staging, err := uploads.NewStaging(cfg.UploadTempDir)
	if err != nil {
		return handlers.Dependencies{}, fmt.Errorf("configure upload staging: %w", err)
	}

	videoRepo := repositories.NewPostgresVideoRepository(pool)
	sessionStore := repositories.NewPostgresSessionStore(pool)

	uploadPipeline := pipeline.New(store, videoRepo, moderationThresholds(cfg.Moderation), logger)
	uploadPipeline.Prober = videos.NewFFProbeProber(cfg.FFProbePath, cfg.FFProbeTimeout)

	return handlers.Dependencies{
		Users:          repositories.NewPostgresUserRepository(pool),
		Sessions:       auth.NewManager(15*time.Minute, 24*time.Hour, sessionStore),
		Videos:         videoRepo,
		Pipeline:       uploadPipeline,
		Staging:        staging,
		AuthLimiter:    middleware.NewIPRateLimiter(10, time.Minute, 5, 10*time.Minute),
		UploadMaxBytes: cfg.UploadMaxBytes,
	}, nil
}

func moderationThresholds(cfg config.ModerationConfig) moderation.Thresholds {
	thresholds := moderation.DefaultThresholds()
	if cfg.ExplicitThreshold > 0 {
		thresholds.Explicit = cfg.ExplicitThreshold
	}
	if cfg.SuggestiveThreshold > 0 {
		thresholds.Suggestive = cfg.SuggestiveThreshold
	}
	if cfg.PartialNudityThreshold > 0 {
		thresholds.PartialNudity = cfg.PartialNudityThreshold
	}
	if cfg.ViolenceThreshold > 0 {
		thresholds.Violence = cfg.ViolenceThreshold
	}
	return thresholds
}
