package handlers

import (
	"net/http"
	"strconv"

	"github.com/blogbliss/backend/internal/models"
	"github.com/blogbliss/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// pageSize is the number of posts per feed page
const pageSize = 6

// FeedHandler serves the paginated reverse-chronological post feed
type FeedHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// GetPosts returns one feed page, newest first, with each post's author
// username denormalized in. totalPosts is the unfiltered count the client
// uses to compute whether more pages exist.
func (h *FeedHandler) GetPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	skip := int64((page - 1) * pageSize)

	totalPosts, err := h.postRepository.CountPosts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load posts", "error": err.Error()})
	}

	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load posts", "error": err.Error()})
	}

	// Resolve all author usernames in one query
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	usernames := make(map[uint]string, len(ids))
	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load posts", "error": err.Error()})
	}
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	withAuthors := make([]models.PostWithAuthor, len(posts))
	for i, p := range posts {
		username, ok := usernames[p.UserID]
		if !ok {
			username = "Unknown"
		}
		withAuthors[i] = models.PostWithAuthor{Post: p, Username: username}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":      withAuthors,
		"totalPosts": totalPosts,
	})
}
