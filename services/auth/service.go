package auth

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/photostack/photostack/interfaces"
	er "github.com/photostack/photostack/internal/errors"
	"github.com/photostack/photostack/internal/models"
	"github.com/photostack/photostack/internal/repository"
	"github.com/photostack/photostack/internal/tracing"
	"github.com/photostack/photostack/internal/utils"
)

type authService struct {
	repositories *repository.Repositories
}

func NewAuthService(repos *repository.Repositories) interfaces.AuthService {
	return &authService{repositories: repos}
}

// RequireUser resolves the request's bearer credential to a stored user.
// Callers run this before any mutation side effect; failure means nothing
// was written.
func (s *authService) RequireUser(ctx context.Context) (*models.User, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuthService.RequireUser")
	defer span.Finish()
	tracing.TagComponentService(span)

	token := utils.GetBearerTokenFromContext(ctx)
	if token == "" {
		err := errors.Wrap(er.ErrUnauthenticated, "no bearer credential presented")
		tracing.TraceErr(span, err)
		return nil, err
	}

	user, err := s.repositories.UserRepository.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = errors.Wrap(er.ErrUnauthenticated, "unknown bearer credential")
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	tracing.TagUserLogin(span, user.GithubLogin)

	return user, nil
}
