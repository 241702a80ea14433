package graph

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	api_errors "github.com/photostack/photostack/api/errors"
	"github.com/photostack/photostack/interfaces"
	"github.com/photostack/photostack/internal/enum"
	er "github.com/photostack/photostack/internal/errors"
	"github.com/photostack/photostack/internal/models"
	"github.com/photostack/photostack/internal/repository"
	"github.com/photostack/photostack/internal/utils"
	"github.com/photostack/photostack/services"
	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------
// call-counting store fakes
// ---------------------------------------------------------------------------

type fakePhotoRepo struct {
	photos []*models.Photo
	calls  map[string]int
}

func newFakePhotoRepo(photos ...*models.Photo) *fakePhotoRepo {
	return &fakePhotoRepo{photos: photos, calls: map[string]int{}}
}

func (f *fakePhotoRepo) Create(ctx context.Context, photo *models.Photo) (string, error) {
	f.calls["Create"]++
	if photo.ID == "" {
		photo.ID = fmt.Sprintf("photo_%d", len(f.photos)+1)
	}
	if photo.Category == "" {
		photo.Category = enum.CategoryPortrait
	}
	f.photos = append(f.photos, photo)
	return photo.ID, nil
}

func (f *fakePhotoRepo) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	f.calls["GetByID"]++
	for _, photo := range f.photos {
		if photo.ID == id {
			return photo, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePhotoRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Photo, error) {
	f.calls["GetByIDs"]++
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var result []*models.Photo
	for _, photo := range f.photos {
		if wanted[photo.ID] {
			result = append(result, photo)
		}
	}
	return result, nil
}

func (f *fakePhotoRepo) GetAll(ctx context.Context) ([]*models.Photo, error) {
	f.calls["GetAll"]++
	return append([]*models.Photo{}, f.photos...), nil
}

func (f *fakePhotoRepo) GetByOwner(ctx context.Context, githubLogin string) ([]*models.Photo, error) {
	f.calls["GetByOwner"]++
	var result []*models.Photo
	for _, photo := range f.photos {
		if photo.GithubUser == githubLogin {
			result = append(result, photo)
		}
	}
	return result, nil
}

func (f *fakePhotoRepo) Count(ctx context.Context) (int64, error) {
	f.calls["Count"]++
	return int64(len(f.photos)), nil
}

func (f *fakePhotoRepo) CountMissingOwners(ctx context.Context) (int64, error) {
	f.calls["CountMissingOwners"]++
	return 0, nil
}

type fakeUserRepo struct {
	users []*models.User
	calls map[string]int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	return &fakeUserRepo{users: users, calls: map[string]int{}}
}

func (f *fakeUserRepo) GetByLogin(ctx context.Context, githubLogin string) (*models.User, error) {
	f.calls["GetByLogin"]++
	for _, user := range f.users {
		if user.GithubLogin == githubLogin {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByLogins(ctx context.Context, githubLogins []string) ([]*models.User, error) {
	f.calls["GetByLogins"]++
	wanted := make(map[string]bool, len(githubLogins))
	for _, login := range githubLogins {
		wanted[login] = true
	}
	var result []*models.User
	for _, user := range f.users {
		if wanted[user.GithubLogin] {
			result = append(result, user)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) GetByToken(ctx context.Context, githubToken string) (*models.User, error) {
	f.calls["GetByToken"]++
	for _, user := range f.users {
		if user.GithubToken == githubToken {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Upsert(ctx context.Context, user *models.User) error {
	f.calls["Upsert"]++
	for i, existing := range f.users {
		if existing.GithubLogin == user.GithubLogin {
			f.users[i] = user
			return nil
		}
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	f.calls["Count"]++
	return int64(len(f.users)), nil
}

type fakeTagRepo struct {
	tags  []*models.Tag
	calls map[string]int
}

func newFakeTagRepo(tags ...*models.Tag) *fakeTagRepo {
	return &fakeTagRepo{tags: tags, calls: map[string]int{}}
}

func (f *fakeTagRepo) Create(ctx context.Context, tag *models.Tag) error {
	f.calls["Create"]++
	f.tags = append(f.tags, tag)
	return nil
}

func (f *fakeTagRepo) GetByPhotoID(ctx context.Context, photoID string) ([]*models.Tag, error) {
	f.calls["GetByPhotoID"]++
	var result []*models.Tag
	for _, tag := range f.tags {
		if tag.PhotoID == photoID {
			result = append(result, tag)
		}
	}
	return result, nil
}

func (f *fakeTagRepo) GetByUserLogin(ctx context.Context, githubLogin string) ([]*models.Tag, error) {
	f.calls["GetByUserLogin"]++
	var result []*models.Tag
	for _, tag := range f.tags {
		if tag.UserLogin == githubLogin {
			result = append(result, tag)
		}
	}
	return result, nil
}

func (f *fakeTagRepo) CountOrphans(ctx context.Context) (int64, error) {
	f.calls["CountOrphans"]++
	return 0, nil
}

type fakeGithubService struct {
	profiles map[string]*interfaces.GithubProfile
}

func (f *fakeGithubService) ExchangeCode(ctx context.Context, code string) (*interfaces.GithubProfile, error) {
	profile, ok := f.profiles[code]
	if !ok {
		return nil, errors.Wrap(er.ErrUpstreamAuth, "bad_verification_code")
	}
	return profile, nil
}

type fakeAuthService struct {
	users *fakeUserRepo
}

func (f *fakeAuthService) RequireUser(ctx context.Context) (*models.User, error) {
	token := utils.GetBearerTokenFromContext(ctx)
	if token == "" {
		return nil, errors.Wrap(er.ErrUnauthenticated, "no bearer credential presented")
	}
	user, err := f.users.GetByToken(ctx, token)
	if err != nil {
		return nil, errors.Wrap(er.ErrUnauthenticated, "unknown bearer credential")
	}
	return user, nil
}

// ---------------------------------------------------------------------------
// fixture
// ---------------------------------------------------------------------------

type fixture struct {
	engine *Engine
	photos *fakePhotoRepo
	users  *fakeUserRepo
	tags   *fakeTagRepo
	github *fakeGithubService
}

func strPtr(s string) *string { return &s }

// seeded matches the tag fixture from the join-ordering contract:
// tags {(1,ichi), (2,ichi), (2,ni), (2,san)}.
func seeded(t *testing.T) *fixture {
	t.Helper()

	base := time.Date(2018, 4, 15, 19, 0, 0, 0, time.UTC)
	photos := newFakePhotoRepo(
		&models.Photo{ID: "1", Name: "first", Category: enum.CategoryPortrait, GithubUser: "ichi", CreatedAt: base},
		&models.Photo{ID: "2", Name: "second", Category: enum.CategoryAction, GithubUser: "ni", CreatedAt: base.Add(time.Hour)},
		&models.Photo{ID: "3", Name: "third", Category: enum.CategoryPortrait, GithubUser: "ni", CreatedAt: base.Add(2 * time.Hour)},
	)
	users := newFakeUserRepo(
		&models.User{GithubLogin: "ichi", Name: strPtr("ichi san"), GithubToken: "tok-ichi"},
		&models.User{GithubLogin: "ni", Name: strPtr("ni san"), GithubToken: "tok-ni"},
		&models.User{GithubLogin: "san", Name: strPtr("san san"), GithubToken: "tok-san"},
	)
	tags := newFakeTagRepo(
		&models.Tag{ID: 1, PhotoID: "1", UserLogin: "ichi"},
		&models.Tag{ID: 2, PhotoID: "2", UserLogin: "ichi"},
		&models.Tag{ID: 3, PhotoID: "2", UserLogin: "ni"},
		&models.Tag{ID: 4, PhotoID: "2", UserLogin: "san"},
	)
	github := &fakeGithubService{profiles: map[string]*interfaces.GithubProfile{}}

	repos := &repository.Repositories{
		PhotoRepository: photos,
		UserRepository:  users,
		TagRepository:   tags,
	}
	svcs := &services.Services{
		GithubService: github,
		AuthService:   &fakeAuthService{users: users},
	}

	engine, err := NewEngine(repos, svcs, nil)
	require.NoError(t, err)

	return &fixture{engine: engine, photos: photos, users: users, tags: tags, github: github}
}

func authedCtx(token string) context.Context {
	return utils.WithCustomContext(context.Background(), &utils.CustomContext{BearerToken: token})
}

func execute(t *testing.T, f *fixture, query string) *Response {
	t.Helper()
	return f.engine.Execute(context.Background(), Request{Query: query})
}

func errorCode(t *testing.T, resp *Response, index int) string {
	t.Helper()
	require.Greater(t, len(resp.Errors), index)
	code, _ := resp.Errors[index].Extensions["code"].(string)
	return code
}

// ---------------------------------------------------------------------------
// queries
// ---------------------------------------------------------------------------

func TestTotalPhotos(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ totalPhotos }`)

	require.Empty(t, resp.Errors)
	assert.Equal(t, 3, resp.Data["totalPhotos"])
}

func TestAllPhotosScalarFields(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ allPhotos { id name url category } }`)

	require.Empty(t, resp.Errors)
	photos := resp.Data["allPhotos"].([]interface{})
	require.Len(t, photos, 3)

	first := photos[0].(map[string]interface{})
	assert.Equal(t, "1", first["id"])
	assert.Equal(t, "first", first["name"])
	assert.Equal(t, "/img/photos/1.jpg", first["url"])
	assert.Equal(t, "PORTRAIT", first["category"])
}

// Requesting only record-local fields must not touch the user or tag
// collections: field resolution is lazy.
func TestAllPhotosLazyResolution(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ allPhotos { id name } }`)

	require.Empty(t, resp.Errors)
	assert.Equal(t, 1, f.photos.calls["GetAll"])
	assert.Empty(t, f.users.calls)
	assert.Empty(t, f.tags.calls)
}

func TestPostedByResolvesOwner(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ allPhotos { id postedBy { githubLogin name } } }`)

	require.Empty(t, resp.Errors)
	photos := resp.Data["allPhotos"].([]interface{})
	owner := photos[0].(map[string]interface{})["postedBy"].(map[string]interface{})
	assert.Equal(t, "ichi", owner["githubLogin"])
	assert.Equal(t, strPtr("ichi san"), owner["name"])
}

// A photo whose owner reference resolves to nothing is a data-integrity
// failure, and resolved siblings must survive it.
func TestPostedByMissingOwnerIsIntegrityError(t *testing.T) {
	f := seeded(t)
	f.photos.photos[0].GithubUser = "ghost"

	resp := execute(t, f, `{ totalPhotos allPhotos { id postedBy { githubLogin } } }`)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, api_errors.CodeIntegrity, errorCode(t, resp, 0))
	// sibling field resolved despite the failure
	assert.Equal(t, 3, resp.Data["totalPhotos"])
	// the failed branch is null, the healthy ones are not
	photos := resp.Data["allPhotos"].([]interface{})
	assert.Nil(t, photos[0].(map[string]interface{})["postedBy"])
	assert.NotNil(t, photos[1].(map[string]interface{})["postedBy"])
}

func TestTaggedUsersPreservesTagOrder(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ allPhotos { id taggedUsers { githubLogin } } }`)

	require.Empty(t, resp.Errors)
	photos := resp.Data["allPhotos"].([]interface{})
	second := photos[1].(map[string]interface{})
	require.Equal(t, "2", second["id"])

	tagged := second["taggedUsers"].([]interface{})
	logins := make([]string, len(tagged))
	for i, user := range tagged {
		logins[i] = user.(map[string]interface{})["githubLogin"].(string)
	}
	assert.Equal(t, []string{"ichi", "ni", "san"}, logins)
}

// Duplicate (photo,user) pairs collapse to a single entry: the dedupe policy.
func TestTaggedUsersDeduplicatesPairs(t *testing.T) {
	f := seeded(t)
	f.tags.tags = append(f.tags.tags, &models.Tag{ID: 5, PhotoID: "2", UserLogin: "ichi"})

	resp := execute(t, f, `{ allPhotos { id taggedUsers { githubLogin } } }`)

	require.Empty(t, resp.Errors)
	photos := resp.Data["allPhotos"].([]interface{})
	tagged := photos[1].(map[string]interface{})["taggedUsers"].([]interface{})
	assert.Len(t, tagged, 3)
}

func TestInPhotosFollowsTagOrder(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ allPhotos { postedBy { githubLogin inPhotos { id } } } }`)

	require.Empty(t, resp.Errors)
	photos := resp.Data["allPhotos"].([]interface{})
	owner := photos[0].(map[string]interface{})["postedBy"].(map[string]interface{})
	require.Equal(t, "ichi", owner["githubLogin"])

	inPhotos := owner["inPhotos"].([]interface{})
	ids := make([]string, len(inPhotos))
	for i, photo := range inPhotos {
		ids[i] = photo.(map[string]interface{})["id"].(string)
	}
	assert.Equal(t, []string{"1", "2"}, ids)
}

func TestPostedPhotosOrderedByCreation(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ allPhotos { postedBy { githubLogin postedPhotos { id } } } }`)

	require.Empty(t, resp.Errors)
	photos := resp.Data["allPhotos"].([]interface{})
	// photo "2" belongs to ni, who owns photos 2 and 3 in creation order
	owner := photos[1].(map[string]interface{})["postedBy"].(map[string]interface{})
	require.Equal(t, "ni", owner["githubLogin"])

	posted := owner["postedPhotos"].([]interface{})
	ids := make([]string, len(posted))
	for i, photo := range posted {
		ids[i] = photo.(map[string]interface{})["id"].(string)
	}
	assert.Equal(t, []string{"2", "3"}, ids)
}

func TestUnknownFieldRejectedBeforeStoreAccess(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ allPhotos { id bogus } }`)

	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, api_errors.CodeSchema, errorCode(t, resp, 0))
	assert.Empty(t, f.photos.calls)
	assert.Empty(t, f.users.calls)
	assert.Empty(t, f.tags.calls)
}

func TestFieldAliases(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ count: totalPhotos }`)

	require.Empty(t, resp.Errors)
	assert.Equal(t, 3, resp.Data["count"])
}

func TestTypename(t *testing.T) {
	f := seeded(t)

	resp := execute(t, f, `{ __typename allPhotos { __typename id } }`)

	require.Empty(t, resp.Errors)
	assert.Equal(t, "Query", resp.Data["__typename"])
	photos := resp.Data["allPhotos"].([]interface{})
	assert.Equal(t, "Photo", photos[0].(map[string]interface{})["__typename"])
}
