// Package mongostore is the MongoDB backend of docstore.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fkhayef/blog/internal/docstore"
)

const connectTimeout = 10 * time.Second

// Store wraps a MongoDB database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, verifies the connection and selects database name.
func Connect(ctx context.Context, uri, name string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &Store{client: client, db: client.Database(name)}, nil
}

// New wraps an existing database handle.
func New(db *mongo.Database) *Store {
	return &Store{client: db.Client(), db: db}
}

// Insert stores doc and returns the id minted by the driver.
func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", docstore.ErrDuplicateKey
		}
		return "", docstore.Wrap("insert", err)
	}
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

// FindOne decodes the first matching document into out.
func (s *Store) FindOne(ctx context.Context, collection string, filter docstore.Filter, out any) (bool, error) {
	err := s.db.Collection(collection).FindOne(ctx, toBSON(filter)).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, docstore.Wrap("find one", err)
	}
	return true, nil
}

// FindMany decodes every matching document into out.
func (s *Store) FindMany(ctx context.Context, collection string, filter docstore.Filter, out any) error {
	cursor, err := s.db.Collection(collection).Find(ctx, toBSON(filter))
	if err != nil {
		return docstore.Wrap("find many", err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return docstore.Wrap("find many", err)
	}
	return nil
}

// UpdateOne applies update to one matching document.
func (s *Store) UpdateOne(ctx context.Context, collection string, filter docstore.Filter, update docstore.Update) (int64, error) {
	u, err := updateBSON(update)
	if err != nil {
		return 0, docstore.Wrap("update one", err)
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, toBSON(filter), u)
	if err != nil {
		return 0, docstore.Wrap("update one", err)
	}
	return res.MatchedCount, nil
}

// EnsureUnique creates a unique ascending index on field.
func (s *Store) EnsureUnique(ctx context.Context, collection, field string) error {
	_, err := s.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(collection + "_" + field + "_key"),
	})
	return docstore.Wrap("ensure unique", err)
}

// Collections lists collection names in the database.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, docstore.Wrap("list collections", err)
	}
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return docstore.Wrap("ping", s.client.Ping(ctx, nil))
}

func (s *Store) Name() string {
	return s.db.Name()
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// toBSON renders a filter as a query document. Multiple predicates are
// combined with $and so two conditions on one field never collide.
func toBSON(filter docstore.Filter) bson.D {
	switch len(filter) {
	case 0:
		return bson.D{}
	case 1:
		return predicateBSON(filter[0])
	}
	clauses := make(bson.A, 0, len(filter))
	for _, p := range filter {
		clauses = append(clauses, predicateBSON(p))
	}
	return bson.D{{Key: "$and", Value: clauses}}
}

func predicateBSON(p docstore.Predicate) bson.D {
	switch p.Op {
	case docstore.OpContains:
		return bson.D{{Key: p.Field, Value: bson.D{{Key: "$elemMatch", Value: bson.D{{Key: "$eq", Value: p.Value}}}}}}
	default:
		return bson.D{{Key: p.Field, Value: p.Value}}
	}
}

func updateBSON(u docstore.Update) (bson.D, error) {
	switch u.Op {
	case docstore.OpPush:
		return bson.D{{Key: "$push", Value: bson.D{{Key: u.Field, Value: u.Value}}}}, nil
	default:
		return nil, fmt.Errorf("unsupported update operator %d", u.Op)
	}
}
