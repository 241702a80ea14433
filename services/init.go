package services

import (
	"github.com/photostack/photostack/interfaces"
	"github.com/photostack/photostack/internal/config"
	"github.com/photostack/photostack/internal/repository"
	"github.com/photostack/photostack/services/auth"
	"github.com/photostack/photostack/services/github"
)

type Services struct {
	GithubService interfaces.GithubService
	AuthService   interfaces.AuthService
}

func InitServices(githubConfig *config.GithubOAuthConfig, repos *repository.Repositories) (*Services, error) {
	services := Services{
		GithubService: github.NewGithubService(githubConfig),
		AuthService:   auth.NewAuthService(repos),
	}

	return &services, nil
}
