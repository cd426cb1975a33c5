package handlers

import (
	"context"

	"github.com/clipstream/backend/internal/models"
	"github.com/clipstream/backend/internal/pipeline"
)

// UserStore captures the persistence operations required by the auth handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// SessionManager issues, refreshes, and resolves authentication tokens.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (models.SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error)
	Authenticate(ctx context.Context, accessToken string) (string, error)
}

// VideoStore captures persistence for video listings and review decisions.
type VideoStore interface {
	ListPublished(ctx context.Context, limit int) ([]models.Video, error)
	ListPendingReview(ctx context.Context, limit int) ([]models.Video, error)
	SetPublished(ctx context.Context, videoID string) error
}

// UploadPipeline runs one staged upload through moderation to a terminal state.
type UploadPipeline interface {
	Submit(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}
