package interfaces

import (
	"context"

	"github.com/photostack/photostack/internal/models"
)

// UserRepository is the entity-store surface for the users collection.
type UserRepository interface {
	GetByLogin(ctx context.Context, githubLogin string) (*models.User, error)
	GetByLogins(ctx context.Context, githubLogins []string) ([]*models.User, error)
	GetByToken(ctx context.Context, githubToken string) (*models.User, error)
	// Upsert inserts the user if the login is absent and fully replaces the
	// mutable fields if it is present. Re-authentication refreshes, never duplicates.
	Upsert(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
}
