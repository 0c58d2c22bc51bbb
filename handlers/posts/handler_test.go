package posts

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/atefe-jelve/Social-project/models"
	"github.com/atefe-jelve/Social-project/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func TestListPosts_All(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "body", "slug"}).
			AddRow("post1", "user1", "Hello World", "hello-world").
			AddRow("post2", "user2", "Goodbye", "goodbye"))

	r := testutils.SetupTestRouter()
	r.GET("/posts", ListPosts)

	req, _ := http.NewRequest(http.MethodGet, "/posts", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var posts []models.Post
	json.Unmarshal(resp.Body.Bytes(), &posts)
	assert.Len(t, posts, 2)
}

func TestListPosts_Search(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	// Plain substring containment, case-sensitive, wildcards escaped
	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE body LIKE (.+) ORDER BY created_at DESC`).
		WithArgs("%World%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "body", "slug"}).
			AddRow("post1", "user1", "Hello World", "hello-world"))

	r := testutils.SetupTestRouter()
	r.GET("/posts", ListPosts)

	req, _ := http.NewRequest(http.MethodGet, "/posts?search=World", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var posts []models.Post
	json.Unmarshal(resp.Body.Bytes(), &posts)
	assert.Len(t, posts, 1)
	assert.Contains(t, posts[0].Body, "World")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPosts_SearchEscapesWildcards(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE body LIKE (.+) ORDER BY created_at DESC`).
		WithArgs(`%100\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "body", "slug"}))

	r := testutils.SetupTestRouter()
	r.GET("/posts", ListPosts)

	req, _ := http.NewRequest(http.MethodGet, "/posts?search=100%25", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPostDetail_TopLevelCommentsOnly(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	postID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1 AND slug = \$2 ORDER BY "posts"."id" LIMIT \$3`).
		WithArgs(postID, "hello-world", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "body", "slug"}).
			AddRow(postID, "user1", "Hello World", "hello-world"))

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE post_id = \$1 AND is_reply = \$2 ORDER BY created_at ASC`).
		WithArgs(postID, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "body", "is_reply"}).
			AddRow("comment1", postID, "user2", "Nice post", false))

	mock.ExpectQuery(`SELECT (.+) FROM "comments" WHERE "comments"\."reply_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "body", "is_reply", "reply_id"}))

	r := testutils.SetupTestRouter()
	r.GET("/posts/detail_post/:post_id/:slug", GetPostDetail)

	req, _ := http.NewRequest(http.MethodGet, "/posts/detail_post/"+postID+"/hello-world", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]json.RawMessage
	json.Unmarshal(resp.Body.Bytes(), &respBody)

	var canLike bool
	json.Unmarshal(respBody["canLike"], &canLike)
	assert.False(t, canLike, "anonymous callers can't like")

	var comments []models.Comment
	json.Unmarshal(respBody["comments"], &comments)
	assert.Len(t, comments, 1)
	assert.False(t, comments[0].IsReply)
}

func TestGetPostDetail_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1 AND slug = \$2 ORDER BY "posts"."id" LIMIT \$3`).
		WithArgs("missing", "wrong-slug", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.GET("/posts/detail_post/:post_id/:slug", GetPostDetail)

	req, _ := http.NewRequest(http.MethodGet, "/posts/detail_post/missing/wrong-slug", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreatePost_SlugFromBody(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "posts"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/posts/create", func(c *gin.Context) {
		c.Set("user_id", "user1")
		CreatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{"body": "Hello World"})

	req, _ := http.NewRequest(http.MethodPost, "/posts/create", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var post models.Post
	json.Unmarshal(resp.Body.Bytes(), &post)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, "user1", post.UserID)
}

func TestCreatePost_SlugUsesFirst30Chars(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "posts"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/posts/create", func(c *gin.Context) {
		c.Set("user_id", "user1")
		CreatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{"body": strings.Repeat("a", 100)})

	req, _ := http.NewRequest(http.MethodPost, "/posts/create", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var post models.Post
	json.Unmarshal(resp.Body.Bytes(), &post)
	assert.Equal(t, strings.Repeat("a", 30), post.Slug)
}

func TestCreatePost_EmptyBody(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/posts/create", func(c *gin.Context) {
		c.Set("user_id", "user1")
		CreatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{"body": ""})

	req, _ := http.NewRequest(http.MethodPost, "/posts/create", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreatePost_Unauthorized(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/posts/create", CreatePost)

	jsonData, _ := json.Marshal(map[string]string{"body": "Hello World"})

	req, _ := http.NewRequest(http.MethodPost, "/posts/create", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUpdatePost_OwnerRecomputesSlug(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	postID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1 ORDER BY "posts"."id" LIMIT \$2`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "body", "slug"}).
			AddRow(postID, "userA", "Hello World", "hello-world"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "posts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/posts/update/:post_id", func(c *gin.Context) {
		c.Set("user_id", "userA")
		UpdatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{"body": "Goodbye"})

	req, _ := http.NewRequest(http.MethodPost, "/posts/update/"+postID, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var post models.Post
	json.Unmarshal(resp.Body.Bytes(), &post)
	assert.Equal(t, "Goodbye", post.Body)
	assert.Equal(t, "goodbye", post.Slug)
}

func TestUpdatePost_Forbidden(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	postID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1 ORDER BY "posts"."id" LIMIT \$2`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "body", "slug"}).
			AddRow(postID, "userA", "Hello World", "hello-world"))

	r := testutils.SetupTestRouter()
	r.POST("/posts/update/:post_id", func(c *gin.Context) {
		c.Set("user_id", "userB")
		UpdatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{"body": "Goodbye"})

	req, _ := http.NewRequest(http.MethodPost, "/posts/update/"+postID, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "You can't update this post")

	// No UPDATE was ever issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePost_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1 ORDER BY "posts"."id" LIMIT \$2`).
		WithArgs("missing", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.POST("/posts/update/:post_id", func(c *gin.Context) {
		c.Set("user_id", "userA")
		UpdatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{"body": "Goodbye"})

	req, _ := http.NewRequest(http.MethodPost, "/posts/update/missing", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeletePost_OwnerCascades(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	postID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1 ORDER BY "posts"."id" LIMIT \$2`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "body", "slug"}).
			AddRow(postID, "userA", "Hello World", "hello-world"))

	// Comments and votes go in the same transaction as the post
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE post_id = \$1`).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "votes" WHERE post_id = \$1`).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "posts" WHERE "posts"."id" = \$1`).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.GET("/posts/delete/:post_id", func(c *gin.Context) {
		c.Set("user_id", "userA")
		DeletePost(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/posts/delete/"+postID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePost_Forbidden(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	postID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1 ORDER BY "posts"."id" LIMIT \$2`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "body", "slug"}).
			AddRow(postID, "userA", "Hello World", "hello-world"))

	r := testutils.SetupTestRouter()
	r.GET("/posts/delete/:post_id", func(c *gin.Context) {
		c.Set("user_id", "userB")
		DeletePost(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/posts/delete/"+postID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
