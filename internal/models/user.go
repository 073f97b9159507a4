package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a registered account stored in PostgreSQL.
// Accounts are never hard-deleted.
type User struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	Username             string    `json:"username" gorm:"uniqueIndex"`
	Email                string    `json:"email" gorm:"uniqueIndex"`
	Password             string    `json:"-"` // bcrypt hash, never serialized
	Bio                  string    `json:"bio,omitempty" gorm:"size:200"`
	ProfileImageURL      string    `json:"profileImageUrl,omitempty"`
	ProfileImageFilename string    `json:"-"`
	Facebook             string    `json:"facebook,omitempty"`
	Instagram            string    `json:"instagram,omitempty"`
	Twitter              string    `json:"twitter,omitempty"`
	LinkedIn             string    `json:"linkedin,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// SignupRequest defines the request body for account creation
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

// LoginRequest defines the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for partial profile updates.
// Empty fields leave the stored values unchanged.
type UpdateProfileRequest struct {
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=200"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// ChangePasswordRequest defines the request body for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=5"`
}

// TokenUser is the identity embedded in the token payload
type TokenUser struct {
	ID uint `json:"id"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}
