package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/blogbliss/backend/internal/models"
	"github.com/blogbliss/backend/internal/repositories"
	"github.com/blogbliss/backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles the embedded-comment lifecycle on posts
type CommentHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// AddComment appends a comment to a post and returns the full updated list.
// The caller's username is resolved once at creation time and stored as a
// snapshot on the comment.
func (h *CommentHandler) AddComment(c echo.Context) error {
	userID, _ := userIDFromContext(c)
	postID := c.Param("postId")

	var req models.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Comment text must not be empty"})
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Authenticated user not found", "error": err.Error()})
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	post, err := h.postRepository.AddComment(c.Request().Context(), postID, comment)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to add comment", "error": err.Error()})
	}

	metrics.CommentsAdded.Inc()
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment added successfully", "comments": post.Comments})
}

// DeleteComment removes exactly one comment by identifier. The caller must
// be the post's owner or the comment's author, matched by stable user ID.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, _ := userIDFromContext(c)
	commentID := c.Param("commentId")

	post, err := h.postRepository.GetPostByCommentID(c.Request().Context(), commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load comment", "error": err.Error()})
	}

	authorized := post.UserID == userID
	if !authorized {
		for _, comment := range post.Comments {
			if comment.ID == commentID && comment.UserID == userID {
				authorized = true
				break
			}
		}
	}
	if !authorized {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "You are not authorized to delete this comment"})
	}

	updated, err := h.postRepository.RemoveComment(c.Request().Context(), commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete comment", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully", "post": updated})
}
