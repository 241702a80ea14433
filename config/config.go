package config

import (
	"github.com/photostack/photostack/internal/config"
	cron_config "github.com/photostack/photostack/internal/cron/config"
	"github.com/photostack/photostack/internal/logger"
	"github.com/photostack/photostack/internal/tracing"
)

type Config struct {
	AppConfig                *config.AppConfig
	Logger                   *logger.Config
	Tracing                  *tracing.JaegerConfig
	Cron                     *cron_config.Config
	PhotostackDatabaseConfig *config.PhotostackDatabaseConfig
	GithubOAuthConfig        *config.GithubOAuthConfig
}
