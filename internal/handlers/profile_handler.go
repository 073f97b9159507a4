package handlers

import (
	"errors"
	"net/http"

	"github.com/blogbliss/backend/internal/models"
	"github.com/blogbliss/backend/internal/repositories"
	"github.com/blogbliss/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ProfileHandler handles the caller's own profile
type ProfileHandler struct {
	userRepository repositories.UserRepository
	storage        storage.ObjectStorage
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository, store storage.ObjectStorage) *ProfileHandler {
	return &ProfileHandler{
		userRepository: userRepo,
		storage:        store,
	}
}

// GetProfile returns the caller's profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, _ := userIDFromContext(c)

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load profile", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// UpdateProfile applies a partial update to the caller's bio and social
// links. Empty fields leave the stored values unchanged.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, _ := userIDFromContext(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Bio must be at most 200 characters"})
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load profile", "error": err.Error()})
	}

	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Facebook != "" {
		user.Facebook = req.Facebook
	}
	if req.Instagram != "" {
		user.Instagram = req.Instagram
	}
	if req.Twitter != "" {
		user.Twitter = req.Twitter
	}
	if req.LinkedIn != "" {
		user.LinkedIn = req.LinkedIn
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		log.Error().Err(err).Msg("update profile: save failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update profile", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully", "user": user})
}

// SetProfileImage uploads a new profile image and stores its reference
func (h *ProfileHandler) SetProfileImage(c echo.Context) error {
	userID, _ := userIDFromContext(c)

	imageFile, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Image file is required"})
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load profile", "error": err.Error()})
	}

	image, err := uploadImage(c, h.storage, imageFile, "profiles")
	if err != nil {
		log.Error().Err(err).Msg("set profile image: upload failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to upload image", "error": err.Error()})
	}

	user.ProfileImageURL = image.URL
	user.ProfileImageFilename = image.Filename
	if err := h.userRepository.UpdateUser(user); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update profile", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile image updated successfully", "user": user})
}

// ChangePassword verifies the caller's current password and replaces it
// with the bcrypt hash of the new one
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	userID, _ := userIDFromContext(c)

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "New password must be at least 5 characters"})
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load profile", "error": err.Error()})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Current password is incorrect"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to hash password"})
	}

	user.Password = string(hashed)
	if err := h.userRepository.UpdateUser(user); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to change password", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}
