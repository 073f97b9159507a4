package middleware

import (
	"net/http"

	"github.com/blogbliss/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// UserIDKey is the context key under which the verified caller's ID is stored
const UserIDKey = "userID"

// JWTAuthMiddleware verifies the auth-token header and attaches the acting
// user's ID to the request context. Requests with a missing, malformed,
// tampered or expired token are rejected before any handler runs.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := verifyToken(c.Request().Header.Get("auth-token"), secret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Please authenticate using a valid token",
				})
			}
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware attaches the caller's ID when a valid token is
// present but never rejects the request. Used on public reads that vary
// their response for authenticated callers (e.g. isLiked).
func OptionalJWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := verifyToken(c.Request().Header.Get("auth-token"), secret); ok {
				c.Set(UserIDKey, userID)
			}
			return next(c)
		}
	}
}

func verifyToken(tokenString, secret string) (uint, bool) {
	if tokenString == "" {
		return 0, false
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	return claims.User.ID, true
}
