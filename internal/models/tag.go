package models

import "time"

// Tag links one photo to one user it depicts. The pair has no identity of its
// own; the autoincrement id only fixes insertion order for ordered reads.
type Tag struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PhotoID   string    `gorm:"column:photo_id;type:varchar(50);index;not null" json:"photoId"`
	UserLogin string    `gorm:"column:user_login;type:varchar(255);index;not null" json:"userLogin"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
}

// TableName sets the table name
func (Tag) TableName() string {
	return "tags"
}
