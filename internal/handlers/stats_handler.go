package handlers

import (
	"net/http"

	"github.com/blogbliss/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// recentCommentsLimit caps the recent-comments aggregate
const recentCommentsLimit = 5

// StatsHandler serves per-user aggregate stats
type StatsHandler struct {
	postRepository repositories.PostRepository
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(postRepo repositories.PostRepository) *StatsHandler {
	return &StatsHandler{postRepository: postRepo}
}

// UserPosts returns the caller's posts and their count
func (h *StatsHandler) UserPosts(c echo.Context) error {
	userID, _ := userIDFromContext(c)

	posts, err := h.postRepository.GetPostsByUserID(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load posts", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"count": len(posts), "posts": posts})
}

// UserComments returns how many comments the caller has written across all posts
func (h *StatsHandler) UserComments(c echo.Context) error {
	userID, _ := userIDFromContext(c)

	count, err := h.postRepository.CountCommentsByUserID(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to count comments", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// RecentComments returns the caller's most recent comments across all posts
func (h *StatsHandler) RecentComments(c echo.Context) error {
	userID, _ := userIDFromContext(c)

	comments, err := h.postRepository.GetRecentCommentsByUserID(c.Request().Context(), userID, recentCommentsLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load comments", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}
