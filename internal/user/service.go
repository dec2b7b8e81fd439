package user

import (
	"context"
	"errors"

	"github.com/fkhayef/blog/internal/docstore"
	"github.com/fkhayef/blog/internal/validation"
)

// Common errors
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
	ErrUserExists     = errors.New("user already exists")
)

// Service handles user business logic
type Service struct {
	repo *Repository
}

// NewService creates a new user service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates req, checks username then email for uniqueness and
// inserts the user. The checks and the insert are separate store calls; the
// unique indexes created by EnsureIndexes catch a concurrent duplicate.
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (string, error) {
	if err := validation.Struct(req); err != nil {
		return "", err
	}

	existing, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUsernameExists
	}

	existing, err = s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailExists
	}

	id, err := s.repo.Create(ctx, req.ToUser())
	if errors.Is(err, docstore.ErrDuplicateKey) {
		return "", ErrUserExists
	}
	return id, err
}

// List retrieves all users
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// Exists reports whether a user with the username is registered
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
