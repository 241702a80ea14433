package models

import "time"

type User struct {
	// GithubLogin is the provider login name, stable and unique.
	GithubLogin string  `gorm:"column:github_login;type:varchar(255);primaryKey" json:"githubLogin"`
	Name        *string `gorm:"column:name;type:varchar(255)" json:"name"`
	Avatar      *string `gorm:"column:avatar;type:varchar(512)" json:"avatar"`
	// GithubToken is the persisted provider credential. It is never exposed
	// through field resolution, only handed back once at exchange time.
	GithubToken string `gorm:"column:github_token;type:varchar(255);index" json:"-"`
	// Standard timestamps
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

// TableName sets the table name
func (User) TableName() string {
	return "users"
}
