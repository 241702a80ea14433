package interfaces

import "context"

// GithubProfile is the credential bundle the identity provider returns for a
// successful code exchange.
type GithubProfile struct {
	Login       string
	AccessToken string
	Name        string
	AvatarURL   string
}

// GithubService exchanges an opaque OAuth code for the caller's GitHub profile.
type GithubService interface {
	ExchangeCode(ctx context.Context, code string) (*GithubProfile, error)
}
