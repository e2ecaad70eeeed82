package models

import (
	"time"

	"blogdesk/internal/moderation"
)

type Blog struct {
	ID                 int64             `json:"id" gorm:"primaryKey;autoIncrement"`
	Title              string            `json:"title" gorm:"not null;size:200"`
	Content            string            `json:"content" gorm:"not null;type:text"`
	Excerpt            *string           `json:"excerpt,omitempty" gorm:"type:text"`
	Status             moderation.Status `json:"status" gorm:"type:varchar(16);not null;default:'draft';index"`
	AdminReviewMessage *string           `json:"admin_review_message,omitempty" gorm:"type:text"`
	Tags               Tags              `json:"tags" gorm:"type:text;not null;default:'[]'"`
	ViewCount          int64             `json:"view_count" gorm:"not null;default:0"`
	PublishedAt        *time.Time        `json:"published_at,omitempty"`
	AuthorID           string            `json:"author_id" gorm:"type:uuid;not null;index"`
	// Version is bumped on every write and checked on conditional updates.
	Version   int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author   *Profile  `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE;"`
}

func (Blog) TableName() string {
	return "blogs"
}
