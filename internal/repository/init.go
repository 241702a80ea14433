package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/photostack/photostack/interfaces"
	"github.com/photostack/photostack/internal/models"
)

type Repositories struct {
	PhotoRepository interfaces.PhotoRepository
	UserRepository  interfaces.UserRepository
	TagRepository   interfaces.TagRepository
}

func InitRepositories(photostackDB *gorm.DB) *Repositories {
	return &Repositories{
		PhotoRepository: NewPhotoRepository(photostackDB),
		UserRepository:  NewUserRepository(photostackDB),
		TagRepository:   NewTagRepository(photostackDB),
	}
}

func MigrateDB(dbConfig *DatabaseSettings, photostackDB *gorm.DB) error {
	db, err := photostackDB.DB()
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(5)

	err = photostackDB.AutoMigrate(
		&models.Photo{},
		&models.User{},
		&models.Tag{},
	)

	db.SetMaxIdleConns(dbConfig.MaxIdleConn)
	db.SetMaxOpenConns(dbConfig.MaxConn)
	db.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Minute)

	return err
}

// DatabaseSettings carries the pool limits restored after a migration run.
type DatabaseSettings struct {
	MaxConn         int
	MaxIdleConn     int
	ConnMaxLifetime int
}
