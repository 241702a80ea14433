package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/photostack/photostack/interfaces"
	"github.com/photostack/photostack/internal/models"
	"github.com/photostack/photostack/internal/tracing"
)

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) interfaces.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "tagRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func (r *tagRepository) GetByPhotoID(ctx context.Context, photoID string) ([]*models.Tag, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "tagRepository.GetByPhotoID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, photoID)

	var tags []*models.Tag
	err := r.db.WithContext(ctx).Where("photo_id = ?", photoID).Order("id asc").Find(&tags).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) GetByUserLogin(ctx context.Context, githubLogin string) ([]*models.Tag, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "tagRepository.GetByUserLogin")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagUserLogin(span, githubLogin)

	var tags []*models.Tag
	err := r.db.WithContext(ctx).Where("user_login = ?", githubLogin).Order("id asc").Find(&tags).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) CountOrphans(ctx context.Context) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "tagRepository.CountOrphans")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).
		Where("photo_id NOT IN (?)", r.db.Model(&models.Photo{}).Select("id")).
		Or("user_login NOT IN (?)", r.db.Model(&models.User{}).Select("github_login")).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}
	return count, nil
}
