package user

import (
	"context"

	"github.com/fkhayef/blog/internal/docstore"
)

// Repository handles user data persistence
type Repository struct {
	store docstore.Store
}

// NewRepository creates a new user repository with store dependency injected
func NewRepository(store docstore.Store) *Repository {
	return &Repository{store: store}
}

// EnsureIndexes enforces uniqueness of username and email in the backend
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	for _, field := range []string{FieldUsername, FieldEmail} {
		if err := r.store.EnsureUnique(ctx, docstore.UserCollection, field); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a new user and returns its id
func (r *Repository) Create(ctx context.Context, user *User) (string, error) {
	return r.store.Insert(ctx, docstore.UserCollection, user)
}

// GetByUsername retrieves a user by username, nil if absent
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, docstore.Eq(FieldUsername, username))
}

// GetByEmail retrieves a user by email, nil if absent
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, docstore.Eq(FieldEmail, email))
}

// List retrieves all users in backend order
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := r.store.FindMany(ctx, docstore.UserCollection, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Repository) findOne(ctx context.Context, p docstore.Predicate) (*User, error) {
	user := &User{}
	found, err := r.store.FindOne(ctx, docstore.UserCollection, docstore.Where(p), user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return user, nil
}
