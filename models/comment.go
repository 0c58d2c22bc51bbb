package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is either a top-level comment on a post (IsReply false, ReplyID
// nil) or a reply to another comment of the same post (IsReply true,
// ReplyID set). The self-reference places no limit on depth.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"column:post_id;index"`
	UserID    string    `json:"userId" gorm:"column:user_id"`
	Body      string    `json:"body" binding:"required"`
	IsReply   bool      `json:"isReply" gorm:"column:is_reply"`
	ReplyID   *string   `json:"replyId,omitempty" gorm:"column:reply_id;type:uuid"`
	Replies   []Comment `json:"replies,omitempty" gorm:"foreignKey:ReplyID"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentBody is the comment/reply request body.
type CommentBody struct {
	Body string `json:"body" binding:"required"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
