package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/photostack/photostack/interfaces"
	"github.com/photostack/photostack/internal/models"
	"github.com/photostack/photostack/internal/tracing"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) interfaces.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByLogin(ctx context.Context, githubLogin string) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetByLogin")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagUserLogin(span, githubLogin)

	var user models.User
	err := r.db.WithContext(ctx).First(&user, "github_login = ?", githubLogin).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByLogins(ctx context.Context, githubLogins []string) ([]*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetByLogins")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var users []*models.User
	err := r.db.WithContext(ctx).Where("github_login IN ?", githubLogins).Find(&users).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByToken(ctx context.Context, githubToken string) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.GetByToken")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var user models.User
	err := r.db.WithContext(ctx).First(&user, "github_token = ?", githubToken).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the user or fully replaces the mutable fields of an existing
// record with the same login. Concurrent upserts on one login are last-write-wins.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.Upsert")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagUserLogin(span, user.GithubLogin)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "github_login"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "avatar", "github_token", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "userRepository.Count")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}
	return count, nil
}
