package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names
const (
	UserCollection = "user"
	PostCollection = "post"
)

// Store is the persistence contract every backend implements.
//
// Documents are Go structs carrying matching `json` and `bson` field names;
// the identifier lives in `_id` (bson) / `id` (json) as an ObjectID.
type Store interface {
	// Insert stores doc and returns the new identifier in hex form.
	Insert(ctx context.Context, collection string, doc any) (string, error)

	// FindOne decodes the first matching document into out and reports
	// whether one was found.
	FindOne(ctx context.Context, collection string, filter Filter, out any) (bool, error)

	// FindMany decodes every matching document into out, which must be a
	// pointer to a slice. Order is whatever the backend returns.
	FindMany(ctx context.Context, collection string, filter Filter, out any) error

	// UpdateOne applies update to at most one matching document and returns
	// the matched count.
	UpdateOne(ctx context.Context, collection string, filter Filter, update Update) (int64, error)

	// EnsureUnique creates a unique constraint on a top-level field.
	EnsureUnique(ctx context.Context, collection, field string) error

	// Collections lists collection names known to the backend.
	Collections(ctx context.Context) ([]string, error)

	Ping(ctx context.Context) error
	Name() string
	Close(ctx context.Context) error
}

// NewID mints a fresh identifier for backends that do not assign their own.
func NewID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// ParseID validates a client supplied identifier.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
