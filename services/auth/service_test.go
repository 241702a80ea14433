package auth

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	er "github.com/photostack/photostack/internal/errors"
	"github.com/photostack/photostack/internal/models"
	"github.com/photostack/photostack/internal/repository"
	"github.com/photostack/photostack/internal/utils"
)

type stubUserRepo struct {
	usersByToken map[string]*models.User
}

func (s *stubUserRepo) GetByLogin(ctx context.Context, githubLogin string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetByLogins(ctx context.Context, githubLogins []string) ([]*models.User, error) {
	return nil, nil
}

func (s *stubUserRepo) GetByToken(ctx context.Context, githubToken string) (*models.User, error) {
	if user, ok := s.usersByToken[githubToken]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Upsert(ctx context.Context, user *models.User) error { return nil }

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func testAuthService(users map[string]*models.User) *authService {
	repos := &repository.Repositories{UserRepository: &stubUserRepo{usersByToken: users}}
	return NewAuthService(repos).(*authService)
}

func ctxWithToken(token string) context.Context {
	return utils.WithCustomContext(context.Background(), &utils.CustomContext{BearerToken: token})
}

func TestRequireUserNoCredential(t *testing.T) {
	service := testAuthService(nil)

	user, err := service.RequireUser(context.Background())

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, er.ErrUnauthenticated))
}

func TestRequireUserUnknownCredential(t *testing.T) {
	service := testAuthService(nil)

	user, err := service.RequireUser(ctxWithToken("tok-ghost"))

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, er.ErrUnauthenticated))
}

func TestRequireUserKnownCredential(t *testing.T) {
	service := testAuthService(map[string]*models.User{
		"tok-ichi": {GithubLogin: "ichi", GithubToken: "tok-ichi"},
	})

	user, err := service.RequireUser(ctxWithToken("tok-ichi"))

	require.NoError(t, err)
	assert.Equal(t, "ichi", user.GithubLogin)
}
