package posts

import (
	"net/http"
	"strings"

	"github.com/atefe-jelve/Social-project/db"
	"github.com/atefe-jelve/Social-project/handlers/posts/votes"
	"github.com/atefe-jelve/Social-project/models"
	"github.com/atefe-jelve/Social-project/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// escapeLike neutralizes SQL LIKE wildcards so the search term is matched
// as a plain substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// @Summary List posts
// @Description Retrieve all posts, optionally filtered by a case-sensitive substring of the body
// @Tags posts
// @Produce json
// @Param search query string false "Substring to search for in post bodies"
// @Success 200 {array} models.Post
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts [get]
func ListPosts(c *gin.Context) {
	var posts []models.Post
	query := db.DB.Order("created_at DESC")

	if search := c.Query("search"); search != "" {
		query = query.Where("body LIKE ?", "%"+escapeLike(search)+"%")
	}

	if err := query.Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving posts: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// @Summary Get a post with its comments
// @Description Retrieve a post by id and slug, its top-level comments and whether the caller may like it
// @Tags posts
// @Produce json
// @Param post_id path string true "Post ID"
// @Param slug path string true "Post slug"
// @Success 200 {object} map[string]interface{} "post, comments, canLike"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/detail_post/{post_id}/{slug} [get]
func GetPostDetail(c *gin.Context) {
	var post models.Post
	postID := c.Param("post_id")
	slug := c.Param("slug")

	if err := db.DB.First(&post, "id = ? AND slug = ?", postID, slug).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Only top-level comments are listed; replies hang off their parent.
	var comments []models.Comment
	if err := db.DB.Preload("Replies").
		Where("post_id = ? AND is_reply = ?", post.ID, false).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving comments: " + err.Error()})
		return
	}

	canLike := false
	if userID, exists := c.Get("user_id"); exists {
		canLike = votes.CanLike(&post, userID.(string))
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"comments": comments,
		"canLike":  canLike,
	})
}

// @Summary Get the post creation form
// @Description Describe the fields expected by the post creation endpoint
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /posts/create [get]
func NewPostForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields": gin.H{
			"body": gin.H{"type": "string", "required": true},
		},
	})
}

// @Summary Create a new post
// @Description Create a post; the slug is derived from the first characters of the body
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.PostBody true "Post content"
// @Security BearerAuth
// @Success 201 {object} models.Post
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/create [post]
func CreatePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.PostBody
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if strings.TrimSpace(input.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body is required"})
		return
	}

	post := models.Post{
		UserID: userID.(string),
		Body:   input.Body,
		Slug:   utils.PostSlug(input.Body),
	}

	if err := db.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Post created")
	c.JSON(http.StatusCreated, post)
}

// @Summary Get a post for editing
// @Description Retrieve the editable fields of a post, owner only
// @Tags posts
// @Produce json
// @Param post_id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Router /posts/update/{post_id} [get]
func EditPostForm(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", c.Param("post_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !post.CanModify(userID.(string)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can't update this post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fields": gin.H{
			"body": gin.H{"type": "string", "required": true, "value": post.Body},
		},
	})
}

// @Summary Update a post
// @Description Update a post's body, owner only; the slug is recomputed from the new body
// @Tags posts
// @Accept json
// @Produce json
// @Param post_id path string true "Post ID"
// @Param post body models.PostBody true "New post content"
// @Security BearerAuth
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/update/{post_id} [post]
func UpdatePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", c.Param("post_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// The ownership check runs before the body is even read, so a
	// forbidden request can never leave a partial mutation behind.
	if !post.CanModify(userID.(string)) {
		utils.LogErrorWithUser(userID, nil, "Forbidden post update attempt")
		c.JSON(http.StatusForbidden, gin.H{"error": "You can't update this post"})
		return
	}

	var input models.PostBody
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if strings.TrimSpace(input.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body is required"})
		return
	}

	post.Body = input.Body
	post.Slug = utils.PostSlug(input.Body)

	if err := db.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Post updated")
	c.JSON(http.StatusOK, post)
}

// @Summary Delete a post
// @Description Delete a post with its comments and votes, owner only
// @Tags posts
// @Produce json
// @Param post_id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/delete/{post_id} [get]
func DeletePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", c.Param("post_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !post.CanModify(userID.(string)) {
		utils.LogErrorWithUser(userID, nil, "Forbidden post delete attempt")
		c.JSON(http.StatusForbidden, gin.H{"error": "You can't delete this post"})
		return
	}

	// Dependent rows go first, all inside one transaction, so a post is
	// never removed while its comments or votes survive it.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Post deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
