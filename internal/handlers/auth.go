package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/blogbliss/backend/internal/models"
	"github.com/blogbliss/backend/internal/repositories"
	"github.com/blogbliss/backend/internal/validators"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles signup and login
type AuthHandler struct {
	userRepository repositories.UserRepository
	validate       *validators.CustomValidator
	jwtSecret      string
	tokenTTL       time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		validate:       validators.NewValidator(),
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
	}
}

// RegisterAuthRoutes registers the public authentication routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo, m ...echo.MiddlewareFunc) {
	e.POST("/signup", h.Signup, m...)
	e.POST("/login", h.Login, m...)
}

// Signup registers a new account and issues a token bound to it.
// Field shape is validated before touching storage; only the bcrypt hash of
// the password is ever persisted.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request payload"})
	}

	if err := h.validate.Check(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validators.FieldErrors(err),
		})
	}

	// Reject duplicate emails before hashing
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "User already exists"})
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Signup failed", "error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to hash password"})
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		log.Error().Err(err).Msg("signup: failed to create user")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Signup failed", "error": err.Error()})
	}

	authtoken, err := h.generateToken(user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Signup failed due to token generation"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "authtoken": authtoken})
}

// Login authenticates by username and password and issues a token.
// No session state is kept server-side; the token is the only session artifact.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request payload"})
	}

	if err := h.validate.Check(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validators.FieldErrors(err),
		})
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Login failed", "error": err.Error()})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid password"})
	}

	authtoken, err := h.generateToken(user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "authtoken": authtoken})
}

// generateToken signs a token carrying {user:{id}} with an expiry claim
func (h *AuthHandler) generateToken(userID uint) (string, error) {
	claims := &models.JwtCustomClaims{
		User: models.TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
