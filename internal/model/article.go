package model

import "time"

// Article is owned by exactly one user; AuthorID is set at creation and
// never reassigned.
type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null;index" json:"title"`
	Content   string    `gorm:"type:longtext;not null" json:"content"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Category  string    `gorm:"size:64;index" json:"category"`
	Tags      string    `gorm:"size:255" json:"tags"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
