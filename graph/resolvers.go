package graph

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/photostack/photostack/internal/enum"
	er "github.com/photostack/photostack/internal/errors"
	"github.com/photostack/photostack/internal/models"
	"github.com/photostack/photostack/internal/tracing"
	"github.com/photostack/photostack/internal/utils"
)

// AuthPayload is the githubAuth mutation result: the upserted user plus the
// bearer token handed back to the client.
type AuthPayload struct {
	User  *models.User
	Token string
}

// registerFields builds the dispatch table. Every schema field maps to exactly
// one entry; resolution looks fields up here instead of reflecting over types.
func (e *Engine) registerFields() {
	e.fields = map[string]map[string]fieldFunc{
		"Query": {
			"totalPhotos": e.queryTotalPhotos,
			"allPhotos":   e.queryAllPhotos,
		},
		"Mutation": {
			"postPhoto":  e.mutationPostPhoto,
			"githubAuth": e.mutationGithubAuth,
		},
		"Photo": {
			"id":          photoScalar(func(p *models.Photo) interface{} { return p.ID }),
			"url":         photoScalar(func(p *models.Photo) interface{} { return p.URL() }),
			"name":        photoScalar(func(p *models.Photo) interface{} { return p.Name }),
			"description": photoScalar(func(p *models.Photo) interface{} { return p.Description }),
			"category":    photoScalar(func(p *models.Photo) interface{} { return p.Category.String() }),
			"created":     photoScalar(func(p *models.Photo) interface{} { return marshalDateTime(p.CreatedAt) }),
			"postedBy":    e.photoPostedBy,
			"taggedUsers": e.photoTaggedUsers,
		},
		"User": {
			"githubLogin":  userScalar(func(u *models.User) interface{} { return u.GithubLogin }),
			"name":         userScalar(func(u *models.User) interface{} { return u.Name }),
			"avatar":       userScalar(func(u *models.User) interface{} { return u.Avatar }),
			"postedPhotos": e.userPostedPhotos,
			"inPhotos":     e.userInPhotos,
		},
		"AuthPayload": {
			"user": func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
				return parent.(*AuthPayload).User, nil
			},
			"token": func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
				return parent.(*AuthPayload).Token, nil
			},
		},
	}
}

// photoScalar adapts a record accessor into a fieldFunc. Scalar fields read
// the parent record only.
func photoScalar(read func(*models.Photo) interface{}) fieldFunc {
	return func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
		return read(parent.(*models.Photo)), nil
	}
}

func userScalar(read func(*models.User) interface{}) fieldFunc {
	return func(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
		return read(parent.(*models.User)), nil
	}
}

func (e *Engine) queryTotalPhotos(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
	count, err := e.repositories.PhotoRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	return int(count), nil
}

func (e *Engine) queryAllPhotos(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
	return e.repositories.PhotoRepository.GetAll(ctx)
}

// photoPostedBy resolves the photo's owner. The schema declares the field
// non-nullable, so a missing owner is a data-integrity failure, never a
// silent null.
func (e *Engine) photoPostedBy(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
	photo := parent.(*models.Photo)
	user, err := e.repositories.UserRepository.GetByLogin(ctx, photo.GithubUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(er.ErrPhotoOwnerMissing, "photo %s owner %s", photo.ID, photo.GithubUser)
		}
		return nil, err
	}
	return user, nil
}

// photoTaggedUsers joins tags to users, preserving tag-insertion order.
// Duplicate (photo,user) pairs collapse to one entry.
func (e *Engine) photoTaggedUsers(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
	photo := parent.(*models.Photo)
	tags, err := e.repositories.TagRepository.GetByPhotoID(ctx, photo.ID)
	if err != nil {
		return nil, err
	}

	logins := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag.UserLogin] {
			continue
		}
		seen[tag.UserLogin] = true
		logins = append(logins, tag.UserLogin)
	}
	if len(logins) == 0 {
		return []*models.User{}, nil
	}

	users, err := e.repositories.UserRepository.GetByLogins(ctx, logins)
	if err != nil {
		return nil, err
	}
	byLogin := make(map[string]*models.User, len(users))
	for _, user := range users {
		byLogin[user.GithubLogin] = user
	}

	result := make([]*models.User, 0, len(logins))
	for _, login := range logins {
		user, ok := byLogin[login]
		if !ok {
			// tag pointing at a deleted user; skip it rather than failing the list
			if span := opentracing.SpanFromContext(ctx); span != nil {
				tracing.TraceErr(span, errors.Wrapf(er.ErrUserNotFound, "tagged user %s on photo %s", login, photo.ID))
			}
			continue
		}
		result = append(result, user)
	}
	return result, nil
}

// userPostedPhotos returns the user's photos ordered by creation time ascending.
func (e *Engine) userPostedPhotos(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
	user := parent.(*models.User)
	return e.repositories.PhotoRepository.GetByOwner(ctx, user.GithubLogin)
}

// userInPhotos joins tags to photos, preserving tag-insertion order and
// collapsing duplicate pairs.
func (e *Engine) userInPhotos(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
	user := parent.(*models.User)
	tags, err := e.repositories.TagRepository.GetByUserLogin(ctx, user.GithubLogin)
	if err != nil {
		return nil, err
	}

	photoIDs := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag.PhotoID] {
			continue
		}
		seen[tag.PhotoID] = true
		photoIDs = append(photoIDs, tag.PhotoID)
	}
	if len(photoIDs) == 0 {
		return []*models.Photo{}, nil
	}

	photos, err := e.repositories.PhotoRepository.GetByIDs(ctx, photoIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Photo, len(photos))
	for _, photo := range photos {
		byID[photo.ID] = photo
	}

	result := make([]*models.Photo, 0, len(photoIDs))
	for _, id := range photoIDs {
		if photo, ok := byID[id]; ok {
			result = append(result, photo)
		}
	}
	return result, nil
}

// mutationPostPhoto stores a new photo owned by the authenticated caller.
// The auth check runs strictly before any write.
func (e *Engine) mutationPostPhoto(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
	user, err := e.services.AuthService.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	input, ok := args["input"].(map[string]interface{})
	if !ok {
		return nil, errors.Wrap(er.ErrInvalidInput, "input is required")
	}

	name, _ := input["name"].(string)
	if name == "" {
		return nil, errors.Wrap(er.ErrInvalidInput, "name is required")
	}

	rawCategory, _ := input["category"].(string)
	category, valid := enum.DecodePhotoCategory(rawCategory)
	if !valid {
		return nil, errors.Wrapf(er.ErrInvalidInput, "unknown category %q", rawCategory)
	}

	photo := &models.Photo{
		Name:       name,
		Category:   category,
		GithubUser: user.GithubLogin,
		CreatedAt:  time.Now().UTC(),
	}
	if description, ok := input["description"].(string); ok {
		photo.Description = utils.StringPtr(description)
	}

	if _, err := e.repositories.PhotoRepository.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// mutationGithubAuth exchanges the OAuth code, upserts the user keyed by login
// and hands the bearer token back. A provider failure performs no write.
func (e *Engine) mutationGithubAuth(ctx context.Context, parent interface{}, args map[string]interface{}) (interface{}, error) {
	code, _ := args["code"].(string)
	if code == "" {
		return nil, errors.Wrap(er.ErrInvalidInput, "code is required")
	}

	profile, err := e.services.GithubService.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		GithubLogin: profile.Login,
		Name:        utils.StringPtr(profile.Name),
		Avatar:      utils.StringPtr(profile.AvatarURL),
		GithubToken: profile.AccessToken,
	}
	if err := e.repositories.UserRepository.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return &AuthPayload{User: user, Token: profile.AccessToken}, nil
}

// marshalDateTime serializes timestamps the way the DateTime scalar promises.
func marshalDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
