package errors

import "github.com/pkg/errors"

var (
	// common errors
	ErrConnectionTimeout = errors.New("connection timeout")

	// input errors
	ErrInvalidInput = errors.New("invalid input")

	// auth errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUpstreamAuth    = errors.New("identity provider rejected the exchange")

	// graph errors
	ErrPhotoOwnerMissing = errors.New("photo owner not found")
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrUserNotFound      = errors.New("user not found")
)
