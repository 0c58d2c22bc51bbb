package comments

import (
	"net/http"

	"github.com/atefe-jelve/Social-project/db"
	"github.com/atefe-jelve/Social-project/models"
	"github.com/atefe-jelve/Social-project/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Comment on a post
// @Description Create a top-level comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param post_id path string true "Post ID"
// @Param slug path string true "Post slug"
// @Param comment body models.CommentBody true "Comment content"
// @Security BearerAuth
// @Success 201 {object} utils.Response "message: New comment submitted successfully"
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: Post not found"
// @Failure 500 {object} utils.Response "error: Error message"
// @Router /posts/detail_post/{post_id}/{slug} [post]
func CreateComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ? AND slug = ?", c.Param("post_id"), c.Param("slug")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	var input models.CommentBody
	if !utils.ValidateRequestBody(c, &input) {
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: userID.(string),
		Body:   input.Body,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Error saving comment: "+err.Error())
		return
	}

	utils.LogSuccessWithUser(userID, "Comment created")
	utils.SendSuccess(c, http.StatusCreated, "New comment submitted successfully", comment)
}

// @Summary Reply to a comment
// @Description Create a reply to a comment of a post; the parent comment must belong to that post
// @Tags comments
// @Accept json
// @Produce json
// @Param post_id path string true "Post ID"
// @Param comment_id path string true "Parent comment ID"
// @Param comment body models.CommentBody true "Reply content"
// @Security BearerAuth
// @Success 201 {object} utils.Response "message: Your reply was submitted successfully"
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: Post or comment not found"
// @Failure 500 {object} utils.Response "error: Error message"
// @Router /posts/reply/{post_id}/{comment_id} [post]
func CreateReply(c *gin.Context) {
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

	// The parent must exist and belong to the same post; a mismatch is a
	// not-found, and nothing gets written. The parent may itself be a
	// reply, the model puts no limit on depth.
	var parent models.Comment
	if err := db.DB.First(&parent, "id = ?", c.Param("comment_id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Comment not found")
		return
	}
	if parent.PostID != post.ID {
		utils.SendError(c, http.StatusNotFound, "Comment not found for this post")
		return
	}

	var input models.CommentBody
	if !utils.ValidateRequestBody(c, &input) {
		return
	}

	reply := models.Comment{
		PostID:  post.ID,
		UserID:  userID.(string),
		Body:    input.Body,
		IsReply: true,
		ReplyID: &parent.ID,
	}

	if err := db.DB.Create(&reply).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Error saving reply: "+err.Error())
		return
	}

	utils.LogSuccessWithUser(userID, "Reply created")
	utils.SendSuccess(c, http.StatusCreated, "Your reply was submitted successfully", reply)
}
