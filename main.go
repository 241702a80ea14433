package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/photostack/photostack/config"
	"github.com/photostack/photostack/internal/database"
	"github.com/photostack/photostack/internal/repository"
	"github.com/photostack/photostack/server"
)

func main() {
	app := &cli.App{
		Name:  "photostack",
		Usage: "graph-query resolution service for the photo-share domain",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Run database migrations",
				Action: runMigrate,
			},
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: runServer,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.InitPhotostackDatabase(&database.DatabaseConfig{
		DBName:          cfg.PhotostackDatabaseConfig.DBName,
		Host:            cfg.PhotostackDatabaseConfig.Host,
		Port:            cfg.PhotostackDatabaseConfig.Port,
		User:            cfg.PhotostackDatabaseConfig.User,
		Password:        cfg.PhotostackDatabaseConfig.Password,
		MaxConn:         cfg.PhotostackDatabaseConfig.MaxConn,
		MaxIdleConn:     cfg.PhotostackDatabaseConfig.MaxIdleConn,
		ConnMaxLifetime: cfg.PhotostackDatabaseConfig.ConnMaxLifetime,
		LogLevel:        cfg.PhotostackDatabaseConfig.LogLevel,
		SSLMode:         cfg.PhotostackDatabaseConfig.SSLMode,
	})
	if err != nil {
		return nil, nil, err
	}

	return cfg, db, nil
}

func runMigrate(c *cli.Context) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}

	err = repository.MigrateDB(&repository.DatabaseSettings{
		MaxConn:         cfg.PhotostackDatabaseConfig.MaxConn,
		MaxIdleConn:     cfg.PhotostackDatabaseConfig.MaxIdleConn,
		ConnMaxLifetime: cfg.PhotostackDatabaseConfig.ConnMaxLifetime,
	}, db)
	if err != nil {
		return err
	}

	log.Println("Database migration completed successfully")
	return nil
}

func runServer(c *cli.Context) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("PhotoStack starting up...")

	srv, err := server.NewServer(cfg, db)
	if err != nil {
		return err
	}

	if err := srv.Run(); err != nil {
		return err
	}

	log.Println("Shutdown complete")
	return nil
}
