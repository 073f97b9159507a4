package handlers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/blogbliss/backend/internal/models"
	"github.com/blogbliss/backend/internal/repositories"
	"github.com/blogbliss/backend/pkg/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryUserRepo is an in-memory UserRepository for handler tests
type memoryUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *memoryUserRepo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return fmt.Errorf("duplicate user")
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memoryUserRepo) GetUserByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memoryUserRepo) GetUserByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memoryUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// memoryPostRepo is an in-memory PostRepository for handler tests. All
// mutations run under one lock so it honors the same atomicity contract as
// the Mongo implementation.
type memoryPostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{posts: make(map[string]*models.Post)}
}

func copyPost(p *models.Post) *models.Post {
	cp := *p
	cp.LikedBy = append([]uint{}, p.LikedBy...)
	cp.Comments = append([]models.Comment{}, p.Comments...)
	return &cp
}

func (r *memoryPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.LikedBy == nil {
		post.LikedBy = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.posts[post.ID.Hex()] = copyPost(post)
	return nil
}

func (r *memoryPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		return copyPost(p), nil
	}
	return nil, repositories.ErrPostNotFound
}

func (r *memoryPostRepo) sortedPostsLocked() []*models.Post {
	out := make([]*models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *memoryPostRepo) GetAllPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sortedPostsLocked()
	var out []models.Post
	for i := skip; i < int64(len(all)) && int64(len(out)) < limit; i++ {
		out = append(out, *copyPost(all[i]))
	}
	return out, nil
}

func (r *memoryPostRepo) CountPosts(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.posts)), nil
}

func (r *memoryPostRepo) GetPostsByUserID(_ context.Context, userID uint) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.sortedPostsLocked() {
		if p.UserID == userID {
			out = append(out, *copyPost(p))
		}
	}
	return out, nil
}

func (r *memoryPostRepo) UpdatePost(_ context.Context, id string, upd *models.PostUpdate) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	p.UpdatedAt = time.Now()
	return copyPost(p), nil
}

func (r *memoryPostRepo) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memoryPostRepo) ToggleLike(_ context.Context, id string, userID uint) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	for i, liker := range p.LikedBy {
		if liker == userID {
			p.LikedBy = append(p.LikedBy[:i], p.LikedBy[i+1:]...)
			p.Likes--
			return copyPost(p), nil
		}
	}
	p.LikedBy = append(p.LikedBy, userID)
	p.Likes++
	return copyPost(p), nil
}

func (r *memoryPostRepo) AddComment(_ context.Context, id string, comment *models.Comment) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	p.Comments = append(p.Comments, *comment)
	return copyPost(p), nil
}

func (r *memoryPostRepo) GetPostByCommentID(_ context.Context, commentID string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		for _, c := range p.Comments {
			if c.ID == commentID {
				return copyPost(p), nil
			}
		}
	}
	return nil, repositories.ErrCommentNotFound
}

func (r *memoryPostRepo) RemoveComment(_ context.Context, commentID string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		for i, c := range p.Comments {
			if c.ID == commentID {
				p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
				return copyPost(p), nil
			}
		}
	}
	return nil, repositories.ErrCommentNotFound
}

func (r *memoryPostRepo) CountCommentsByUserID(_ context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.posts {
		for _, c := range p.Comments {
			if c.UserID == userID {
				count++
			}
		}
	}
	return count, nil
}

func (r *memoryPostRepo) GetRecentCommentsByUserID(_ context.Context, userID uint, limit int64) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Comment
	for _, p := range r.posts {
		for _, c := range p.Comments {
			if c.UserID == userID {
				all = append(all, c)
			}
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

// fakeStorage records uploads without talking to a real bucket
type fakeStorage struct {
	mu      sync.Mutex
	uploads int
	fail    bool
}

func (s *fakeStorage) Upload(_ context.Context, objectName, _ string, r io.Reader) (*storage.ImageRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, fmt.Errorf("upload failed")
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	s.uploads++
	return &storage.ImageRef{
		URL:      "https://storage.example.com/bucket/" + objectName,
		Filename: objectName,
	}, nil
}
