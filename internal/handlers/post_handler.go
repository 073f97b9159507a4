package handlers

import (
	"errors"
	"net/http"

	"github.com/blogbliss/backend/internal/models"
	"github.com/blogbliss/backend/internal/repositories"
	"github.com/blogbliss/backend/pkg/metrics"
	"github.com/blogbliss/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	storage        storage.ObjectStorage
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, store storage.ObjectStorage) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		storage:        store,
	}
}

// postDetail is a post with the owner denormalized in for the detail view
type postDetail struct {
	models.Post
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

// CreatePost creates a new post. Title, content and image are all required.
// The image is staged to object storage before the post document is
// persisted, so an upload failure leaves no partial post behind. The owner
// is always the verified token's identity, never client-supplied input.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, _ := userIDFromContext(c)

	title := c.FormValue("title")
	content := c.FormValue("content")
	imageFile, err := c.FormFile("image")
	if title == "" || content == "" || err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields are required"})
	}

	image, err := uploadImage(c, h.storage, imageFile, "posts")
	if err != nil {
		log.Error().Err(err).Msg("create post: image upload failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to upload image", "error": err.Error()})
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		Image:   *image,
		UserID:  userID,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		log.Error().Err(err).Msg("create post: insert failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create post", "error": err.Error()})
	}

	metrics.PostsCreated.Inc()
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Post created successfully", "post": post})
}

// GetPost retrieves a post by ID with the owner's username denormalized in.
// isLiked reflects the optional caller identity and is false for anonymous
// requests.
func (h *PostHandler) GetPost(c echo.Context) error {
	postID := c.Param("postId")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load post", "error": err.Error()})
	}

	detail := postDetail{Post: *post}
	if owner, err := h.userRepository.GetUserByID(post.UserID); err == nil {
		detail.User.Username = owner.Username
	} else {
		detail.User.Username = "Unknown"
	}

	isLiked := false
	if userID, ok := userIDFromContext(c); ok {
		for _, id := range post.LikedBy {
			if id == userID {
				isLiked = true
				break
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post":             detail,
		"likes":            post.Likes,
		"originalImageUrl": post.Image.URL,
		"isLiked":          isLiked,
	})
}

// UpdatePost applies a partial update to a post. Fields the caller omits are
// left unchanged; a new image replaces the stored reference. Only the owner
// may update.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, _ := userIDFromContext(c)
	postID := c.Param("postId")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load post", "error": err.Error()})
	}

	if post.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "You are not authorized to update this post"})
	}

	var upd models.PostUpdate
	if title := c.FormValue("title"); title != "" {
		upd.Title = &title
	}
	if content := c.FormValue("content"); content != "" {
		upd.Content = &content
	}
	if imageFile, err := c.FormFile("image"); err == nil {
		image, err := uploadImage(c, h.storage, imageFile, "posts")
		if err != nil {
			log.Error().Err(err).Msg("update post: image upload failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to upload image", "error": err.Error()})
		}
		upd.Image = image
	}

	updated, err := h.postRepository.UpdatePost(c.Request().Context(), postID, &upd)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update post", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post updated successfully", "post": updated})
}

// DeletePost removes a post in full, including all embedded comments.
// Only the owner may delete.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, _ := userIDFromContext(c)
	postID := c.Param("postId")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load post", "error": err.Error()})
	}

	if post.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "You are not authorized to delete this post"})
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete post", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// MyPosts returns all posts owned by the caller, newest first
func (h *PostHandler) MyPosts(c echo.Context) error {
	userID, _ := userIDFromContext(c)

	posts, err := h.postRepository.GetPostsByUserID(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load posts", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Posts loaded successfully", "posts": posts})
}
