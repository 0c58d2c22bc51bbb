package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `json:"userId" gorm:"column:user_id;index"`
	Body      string    `json:"body" binding:"required"`
	Slug      string    `json:"slug" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostBody is the create/update request body. The slug is always derived
// from the body, never accepted from the client.
type PostBody struct {
	Body string `json:"body" binding:"required"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CanModify reports whether the given user owns the post. Update and
// delete are gated on this; there is no admin override.
func (p *Post) CanModify(userID string) bool {
	return p.UserID == userID
}
