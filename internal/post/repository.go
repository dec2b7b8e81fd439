package post

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fkhayef/blog/internal/docstore"
)

// Repository handles post data persistence
type Repository struct {
	store docstore.Store
}

// NewRepository creates a new post repository with store dependency injected
func NewRepository(store docstore.Store) *Repository {
	return &Repository{store: store}
}

// Create inserts a new post and returns its id
func (r *Repository) Create(ctx context.Context, post *Post) (string, error) {
	return r.store.Insert(ctx, docstore.PostCollection, post)
}

// GetByID retrieves a post with its comments, nil if absent
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	post := &Post{}
	found, err := r.store.FindOne(ctx, docstore.PostCollection, docstore.Where(docstore.ID(id)), post)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return post, nil
}

// List retrieves posts matching filter in backend order
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Post, error) {
	var posts []*Post
	if err := r.store.FindMany(ctx, docstore.PostCollection, filter.predicates(), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AddComment appends comment to the post and returns how many posts matched
func (r *Repository) AddComment(ctx context.Context, id primitive.ObjectID, comment Comment) (int64, error) {
	return r.store.UpdateOne(ctx, docstore.PostCollection,
		docstore.Where(docstore.ID(id)),
		docstore.Push(FieldComments, comment))
}

func (f ListFilter) predicates() docstore.Filter {
	var filter docstore.Filter
	if f.Tag != "" {
		filter = append(filter, docstore.Contains(FieldTags, f.Tag))
	}
	if f.Author != "" {
		filter = append(filter, docstore.Eq(FieldAuthorUsername, f.Author))
	}
	return filter
}
