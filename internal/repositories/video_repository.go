package repositories

import (
	"context"

	"github.com/clipstream/backend/internal/models"
)

// VideoRepository exposes data access for uploaded videos.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	ListPublished(ctx context.Context, limit int) ([]models.Video, error)
	ListPendingReview(ctx context.Context, limit int) ([]models.Video, error)
	SetPublished(ctx context.Context, videoID string) error
}
