package interfaces

import (
	"context"

	"github.com/photostack/photostack/internal/models"
)

// AuthService resolves the request's bearer credential to a user. Mutations
// call RequireUser before touching the store; a missing or unknown credential
// means no write happens at all.
type AuthService interface {
	RequireUser(ctx context.Context) (*models.User, error)
}
