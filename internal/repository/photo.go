package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/photostack/photostack/interfaces"
	"github.com/photostack/photostack/internal/models"
	"github.com/photostack/photostack/internal/tracing"
)

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) interfaces.PhotoRepository {
	return &photoRepository{db: db}
}

// Create inserts the photo and returns the store-assigned identifier.
func (r *photoRepository) Create(ctx context.Context, photo *models.Photo) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "photoRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	tracing.TagEntity(span, photo.ID)
	return photo.ID, nil
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "photoRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, id)

	var photo models.Photo
	err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Photo, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "photoRepository.GetByIDs")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var photos []*models.Photo
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at asc").Find(&photos).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) GetAll(ctx context.Context) ([]*models.Photo, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "photoRepository.GetAll")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var photos []*models.Photo
	err := r.db.WithContext(ctx).Order("created_at asc").Find(&photos).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) GetByOwner(ctx context.Context, githubLogin string) ([]*models.Photo, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "photoRepository.GetByOwner")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagUserLogin(span, githubLogin)

	var photos []*models.Photo
	err := r.db.WithContext(ctx).Where("github_user = ?", githubLogin).Order("created_at asc").Find(&photos).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) CountMissingOwners(ctx context.Context) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "photoRepository.CountMissingOwners")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("github_user NOT IN (?)", r.db.Model(&models.User{}).Select("github_login")).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}
	return count, nil
}

func (r *photoRepository) Count(ctx context.Context) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "photoRepository.Count")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Photo{}).Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}
	return count, nil
}
