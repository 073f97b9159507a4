package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blogbliss/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrPostNotFound is returned when no post matches the lookup
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned when no post contains the comment
	ErrCommentNotFound = errors.New("comment not found")
)

// PostRepository defines the interface for post data operations.
// ToggleLike, AddComment and RemoveComment must each be a single atomic
// update against the post document, never a separate read followed by a
// separate write.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, upd *models.PostUpdate) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string, userID uint) (*models.Post, error)
	AddComment(ctx context.Context, id string, comment *models.Comment) (*models.Post, error)
	GetPostByCommentID(ctx context.Context, commentID string) (*models.Post, error)
	RemoveComment(ctx context.Context, commentID string) (*models.Post, error)
	CountCommentsByUserID(ctx context.Context, userID uint) (int64, error)
	GetRecentCommentsByUserID(ctx context.Context, userID uint, limit int64) ([]models.Comment, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	if post.LikedBy == nil {
		post.LikedBy = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID %q: %w", id, ErrPostNotFound)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves posts in descending creation-time order with pagination
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPosts returns the unfiltered count of all posts
func (r *MongoPostRepository) CountPosts(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// GetPostsByUserID retrieves all posts owned by a user, newest first
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost applies a partial update to a post and returns the updated
// document. Fields not named in upd are left unchanged.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, upd *models.PostUpdate) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID %q: %w", id, ErrPostNotFound)
	}

	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Image != nil {
		set["image"] = upd.Image
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post by ID, including all embedded comments
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID %q: %w", id, ErrPostNotFound)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ToggleLike adds userID to the post's liker set if absent, or removes it if
// present. Each arm is a single conditional update, so the membership test
// and the mutation are atomic and likes always equals len(liked_by). Two
// concurrent toggles from the same user are last-write-wins; the count and
// the set never diverge.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, id string, userID uint) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID %q: %w", id, ErrPostNotFound)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID, "liked_by": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"liked_by": userID},
			"$inc":      bson.M{"likes": 1},
		},
		opts,
	).Decode(&post)
	if err == nil {
		return &post, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// Either the post is missing or the user already liked it; the $pull arm
	// only matches when the membership is present, so likes never goes negative.
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID, "liked_by": userID},
		bson.M{
			"$pull": bson.M{"liked_by": userID},
			"$inc":  bson.M{"likes": -1},
		},
		opts,
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// AddComment appends a comment to the post's comment list in a single atomic
// update and returns the updated post
func (r *MongoPostRepository) AddComment(ctx context.Context, id string, comment *models.Comment) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID %q: %w", id, ErrPostNotFound)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$push": bson.M{"comments": comment}},
		opts,
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostByCommentID locates the post containing the embedded comment
func (r *MongoPostRepository) GetPostByCommentID(ctx context.Context, commentID string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"comments.id": commentID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &post, nil
}

// RemoveComment removes exactly one comment by identifier with an atomic
// $pull; sibling comments are untouched and keep their order
func (r *MongoPostRepository) RemoveComment(ctx context.Context, commentID string) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"comments.id": commentID},
		bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}},
		opts,
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &post, nil
}

// CountCommentsByUserID counts comments authored by the user across all posts
func (r *MongoPostRepository) CountCommentsByUserID(ctx context.Context, userID uint) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"comments.user_id": userID}}},
		{{Key: "$unwind", Value: "$comments"}},
		{{Key: "$match", Value: bson.M{"comments.user_id": userID}}},
		{{Key: "$count", Value: "count"}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Count int64 `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Count, nil
}

// GetRecentCommentsByUserID returns the user's most recent comments across
// all posts, newest first
func (r *MongoPostRepository) GetRecentCommentsByUserID(ctx context.Context, userID uint, limit int64) ([]models.Comment, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"comments.user_id": userID}}},
		{{Key: "$unwind", Value: "$comments"}},
		{{Key: "$match", Value: bson.M{"comments.user_id": userID}}},
		{{Key: "$sort", Value: bson.D{{Key: "comments.created_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$comments"}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
