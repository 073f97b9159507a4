package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageRef points at an image held by the object storage collaborator
type ImageRef struct {
	URL      string `json:"url" bson:"url"`
	Filename string `json:"filename" bson:"filename"`
}

// Comment is embedded in a Post, not a standalone entity.
// Username is a snapshot taken at creation time; later username changes do
// not retroactively update historical comments. UserID is the stable author
// reference used for authorization.
type Comment struct {
	ID        string    `json:"id" bson:"id"`
	UserID    uint      `json:"userId" bson:"user_id"`
	Username  string    `json:"username" bson:"username"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Post is a user-authored article stored in MongoDB.
// Comments are kept in append order; likes == len(LikedBy) always holds
// because both are mutated in the same atomic update.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	Image     ImageRef           `json:"image" bson:"image"`
	UserID    uint               `json:"userId" bson:"user_id"` // owner, set at creation, never reassigned
	Likes     int                `json:"likes" bson:"likes"`
	LikedBy   []uint             `json:"likedBy" bson:"liked_by"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// PostWithAuthor is a post with the owner's username denormalized in,
// resolved at read time for the feed
type PostWithAuthor struct {
	Post
	Username string `json:"username"`
}

// PostUpdate names only the fields the caller intends to change;
// nil fields leave the stored values untouched
type PostUpdate struct {
	Title   *string
	Content *string
	Image   *ImageRef
}

// AddCommentRequest defines the request body for adding a comment
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}
