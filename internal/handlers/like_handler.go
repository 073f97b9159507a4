package handlers

import (
	"errors"
	"net/http"

	"github.com/blogbliss/backend/internal/repositories"
	"github.com/blogbliss/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles the per-post like toggle
type LikeHandler struct {
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{postRepository: postRepo}
}

// ToggleLike adds the caller to the post's liker set if absent, or removes
// them if present. The repository performs the toggle as a single atomic
// conditional update, so concurrent likes from different users all land and
// the count never diverges from the membership set.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID, _ := userIDFromContext(c)
	postID := c.Param("postId")

	post, err := h.postRepository.ToggleLike(c.Request().Context(), postID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to toggle like", "error": err.Error()})
	}

	metrics.LikeToggles.Inc()
	return c.JSON(http.StatusOK, echo.Map{
		"likes":   post.Likes,
		"likedBy": post.LikedBy,
	})
}
