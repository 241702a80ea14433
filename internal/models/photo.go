package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/photostack/photostack/internal/enum"
	"github.com/photostack/photostack/internal/utils"
)

type Photo struct {
	ID          string             `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	Name        string             `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description *string            `gorm:"column:description;type:text" json:"description"`
	Category    enum.PhotoCategory `gorm:"column:category;type:varchar(50);not null;default:PORTRAIT" json:"category"`
	// GithubUser references the owning user's login. The owner itself is
	// resolved at read time, never stored as a denormalized copy.
	GithubUser string `gorm:"column:github_user;type:varchar(255);index;not null" json:"githubUser"`
	// Standard timestamps
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

// TableName sets the table name
func (Photo) TableName() string {
	return "photos"
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.GenerateNanoIDWithPrefix("photo", 16)
	}
	if p.Category == "" {
		p.Category = enum.CategoryPortrait
	}
	return nil
}

// URL derives the public image location from the photo identifier.
func (p *Photo) URL() string {
	return fmt.Sprintf("/img/photos/%s.jpg", p.ID)
}
