package votes

import (
	"errors"
	"net/http"
	"os"

	"github.com/atefe-jelve/Social-project/db"
	"github.com/atefe-jelve/Social-project/models"
	"github.com/atefe-jelve/Social-project/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// selfLikeAllowed reports whether authors may like their own posts.
// Allowed unless VOTES_ALLOW_SELF_LIKE is explicitly set to "false".
func selfLikeAllowed() bool {
	return os.Getenv("VOTES_ALLOW_SELF_LIKE") != "false"
}

// CanLike reports whether the given user may still like the post: the user
// must not have voted on it yet and, when self-likes are disabled, must not
// be its author.
func CanLike(post *models.Post, userID string) bool {
	if userID == "" {
		return false
	}
	if !selfLikeAllowed() && post.UserID == userID {
		return false
	}

	var count int64
	if err := db.DB.Model(&models.Vote{}).
		Where("post_id = ? AND user_id = ?", post.ID, userID).
		Count(&count).Error; err != nil {
		return false
	}
	return count == 0
}

// @Summary Like a post
// @Description Cast a like on a post; a user may like a given post at most once
// @Tags votes
// @Produce json
// @Param post_id path string true "Post ID"
// @Security BearerAuth
// @Success 201 {object} utils.Response "message: You liked this post"
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 403 {object} utils.Response "error: You can't like your own post"
// @Failure 404 {object} utils.Response "error: Post not found"
// @Failure 409 {object} utils.Response "error: You have already liked this post"
// @Failure 500 {object} utils.Response "error: Error message"
// @Router /posts/like/{post_id} [get]
func LikePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", c.Param("post_id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	if !selfLikeAllowed() && post.UserID == userID.(string) {
		utils.SendError(c, http.StatusForbidden, "You can't like your own post")
		return
	}

	// Friendly-path check. The unique index on (post_id, user_id) stays
	// the authority: two concurrent requests can both pass this read, and
	// the second insert then fails with a duplicate-key error.
	var existing models.Vote
	err := db.DB.Where("post_id = ? AND user_id = ?", post.ID, userID).First(&existing).Error
	if err == nil {
		utils.SendError(c, http.StatusConflict, "You have already liked this post")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.SendError(c, http.StatusInternalServerError, "Error checking existing like: "+err.Error())
		return
	}

	vote := models.Vote{
		PostID: post.ID,
		UserID: userID.(string),
	}

	if err := db.DB.Create(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SendError(c, http.StatusConflict, "You have already liked this post")
			return
		}
		utils.SendError(c, http.StatusInternalServerError, "Error adding like: "+err.Error())
		return
	}

	utils.LogSuccessWithUser(userID, "Post liked")
	utils.SendSuccess(c, http.StatusCreated, "You liked this post", vote)
}
