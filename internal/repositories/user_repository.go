package repositories

import (
	"context"

	"github.com/clipstream/backend/internal/models"
)

// UserRepository exposes the persistence operations required by the auth handlers.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
}
