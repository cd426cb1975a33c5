package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipstream/backend/internal/config"
	"github.com/clipstream/backend/internal/moderation"
)

type fakePool struct{}

func (fakePool) Acquire(context.Context) (*pgxpool.Conn, error) {
	return nil, errors.New("not implemented")
}

func (fakePool) Close() {}

func TestBuildDependencies(t *testing.T) {
	cfg := config.Config{
		UploadTempDir:  t.TempDir(),
		UploadMaxBytes: 1 << 20,
		FFProbePath:    "ffprobe",
		FFProbeTimeout: time.Second,
		MediaStore: config.MediaStoreConfig{
			CloudName: "testcloud",
			APIKey:    "key",
			APISecret: "secret",
		},
	}

	deps, err := buildDependencies(fakePool{}, cfg, slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deps.Users == nil {
		t.Fatal("expected user repository to be configured")
	}
	if deps.Sessions == nil {
		t.Fatal("expected session manager to be configured")
	}
	if deps.Videos == nil {
		t.Fatal("expected video repository to be configured")
	}
	if deps.Pipeline == nil {
		t.Fatal("expected upload pipeline to be configured")
	}
	if deps.Staging == nil {
		t.Fatal("expected upload staging to be configured")
	}
	if deps.AuthLimiter == nil {
		t.Fatal("expected auth rate limiter to be configured")
	}
	if deps.UploadMaxBytes != 1<<20 {
		t.Fatalf("unexpected upload size limit %d", deps.UploadMaxBytes)
	}
}

func TestBuildDependenciesMissingMediaStoreCredentials(t *testing.T) {
	cfg := config.Config{UploadTempDir: t.TempDir()}

	if _, err := buildDependencies(fakePool{}, cfg, slog.Default()); err == nil {
		t.Fatal("expected an error when media store credentials are missing")
	}
}

func TestModerationThresholds(t *testing.T) {
	defaults := moderationThresholds(config.ModerationConfig{})
	if defaults != moderation.DefaultThresholds() {
		t.Fatalf("expected defaults when config is zero, got %+v", defaults)
	}

	custom := moderationThresholds(config.ModerationConfig{
		ExplicitThreshold:      0.25,
		SuggestiveThreshold:    0.60,
		PartialNudityThreshold: 0.80,
		ViolenceThreshold:      0.50,
	})
	if custom.Explicit != 0.25 || custom.Suggestive != 0.60 || custom.PartialNudity != 0.80 || custom.Violence != 0.50 {
		t.Fatalf("expected configured thresholds to apply, got %+v", custom)
	}
}
