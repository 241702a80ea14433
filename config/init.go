package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	internal_config "github.com/photostack/photostack/internal/config"
	cron_config "github.com/photostack/photostack/internal/cron/config"
	"github.com/photostack/photostack/internal/logger"
	"github.com/photostack/photostack/internal/tracing"
)

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:                &internal_config.AppConfig{},
		Logger:                   &logger.Config{},
		Tracing:                  &tracing.JaegerConfig{},
		Cron:                     &cron_config.Config{},
		PhotostackDatabaseConfig: &internal_config.PhotostackDatabaseConfig{},
		GithubOAuthConfig:        &internal_config.GithubOAuthConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading photostack config: %v", err)
	}

	return config, nil
}
