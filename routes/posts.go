package routes

import (
	"github.com/atefe-jelve/Social-project/handlers/posts"
	"github.com/atefe-jelve/Social-project/handlers/posts/comments"
	"github.com/atefe-jelve/Social-project/handlers/posts/votes"
	"github.com/atefe-jelve/Social-project/middleware"

	"github.com/gin-gonic/gin"
)

func PostsRoutes(r *gin.Engine) {
	// Public routes
	r.GET("/posts", posts.ListPosts)
	r.GET("/posts/detail_post/:post_id/:slug", middleware.OptionalJWTAuth(), posts.GetPostDetail)

	// Protected routes
	postsRoutes := r.Group("/posts")
	postsRoutes.Use(middleware.JWTAuth())
	{
		postsRoutes.GET("/create", posts.NewPostForm)
		postsRoutes.POST("/create", posts.CreatePost)
		postsRoutes.GET("/update/:post_id", posts.EditPostForm)
		postsRoutes.POST("/update/:post_id", posts.UpdatePost)
		postsRoutes.GET("/delete/:post_id", posts.DeletePost)

		// Interactions
		postsRoutes.POST("/detail_post/:post_id/:slug", comments.CreateComment)
		postsRoutes.POST("/reply/:post_id/:comment_id", comments.CreateReply)
		postsRoutes.GET("/like/:post_id", votes.LikePost)
	}
}
