package interfaces

import (
	"context"

	"github.com/photostack/photostack/internal/models"
)

// TagRepository is the entity-store surface for the photo/user tag associations.
// List reads come back in insertion order.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByPhotoID(ctx context.Context, photoID string) ([]*models.Tag, error)
	GetByUserLogin(ctx context.Context, githubLogin string) ([]*models.Tag, error)
	// CountOrphans reports tags whose photo or user no longer resolves.
	CountOrphans(ctx context.Context) (int64, error)
}
