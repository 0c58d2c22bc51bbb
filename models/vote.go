package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is a single user's like on a single post. The composite unique
// index is the authority on uniqueness: concurrent double-submission
// resolves at insert time, not at the prior existence check.
type Vote struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"column:post_id;not null;uniqueIndex:idx_votes_post_user"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null;uniqueIndex:idx_votes_post_user"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Vote) TableName() string {
	return "votes"
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
