package post

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fkhayef/blog/internal/docstore"
	"github.com/fkhayef/blog/internal/user"
	"github.com/fkhayef/blog/internal/validation"
)

// Common errors
var (
	ErrAuthorNotFound        = errors.New("author not found")
	ErrCommentAuthorNotFound = errors.New("comment author not found")
	ErrPostNotFound          = errors.New("post not found")
	ErrInvalidID             = errors.New("invalid id")
)

// Service handles post and comment business logic
type Service struct {
	repo  *Repository
	users *user.Service
	now   func() time.Time
}

// NewService creates a new post service; users resolves author references
func NewService(repo *Repository, users *user.Service) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create validates req, requires an existing author and inserts the post
func (s *Service) Create(ctx context.Context, req *CreatePostRequest) (string, error) {
	if err := validation.Struct(req); err != nil {
		return "", err
	}

	exists, err := s.users.Exists(ctx, req.AuthorUsername)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrAuthorNotFound
	}

	return s.repo.Create(ctx, req.ToPost(s.now()))
}

// List returns posts matching filter, newest first. Posts without a
// created_at sort after all dated posts; ties keep backend order.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Post, error) {
	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// GetByID retrieves a post by its hex id
func (s *Service) GetByID(ctx context.Context, id string) (*Post, error) {
	oid, err := docstore.ParseID(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	post, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// AddComment appends a comment to the post. The author is checked before
// the post id is parsed, so a bad id with an unknown author reports the
// author.
func (s *Service) AddComment(ctx context.Context, postID string, req *CreateCommentRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	exists, err := s.users.Exists(ctx, req.AuthorUsername)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCommentAuthorNotFound
	}

	oid, err := docstore.ParseID(postID)
	if err != nil {
		return ErrInvalidID
	}

	matched, err := s.repo.AddComment(ctx, oid, Comment{
		AuthorUsername: req.AuthorUsername,
		Content:        req.Content,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrPostNotFound
	}
	return nil
}

func sortNewestFirst(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].CreatedAt, posts[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
