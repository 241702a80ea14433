package interfaces

import (
	"context"

	"github.com/photostack/photostack/internal/models"
)

// PhotoRepository is the entity-store surface for the photos collection.
// List reads come back in creation-time ascending order.
type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) (string, error)
	GetByID(ctx context.Context, id string) (*models.Photo, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Photo, error)
	GetAll(ctx context.Context) ([]*models.Photo, error)
	GetByOwner(ctx context.Context, githubLogin string) ([]*models.Photo, error)
	Count(ctx context.Context) (int64, error)
	// CountMissingOwners reports photos whose owner reference no longer resolves.
	CountMissingOwners(ctx context.Context) (int64, error)
}
