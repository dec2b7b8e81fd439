package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fkhayef/blog/internal/docstore"
)

type note struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Author  string             `json:"author" bson:"author"`
	Tags    []string           `json:"tags" bson:"tags"`
	Replies []string           `json:"replies" bson:"replies"`
}

var _ docstore.Store = (*Store)(nil)

func TestInsertAndFindOne(t *testing.T) {
	ctx := context.Background()
	s := New("test")

	id, err := s.Insert(ctx, "note", note{Author: "ada", Tags: []string{"go"}})
	require.NoError(t, err)

	oid, err := docstore.ParseID(id)
	require.NoError(t, err)

	var got note
	found, err := s.FindOne(ctx, "note", docstore.Where(docstore.ID(oid)), &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, oid, got.ID)
	assert.Equal(t, "ada", got.Author)

	found, err = s.FindOne(ctx, "note", docstore.Where(docstore.Eq("author", "bob")), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindManyFilters(t *testing.T) {
	ctx := context.Background()
	s := New("test")

	for _, n := range []note{
		{Author: "ada", Tags: []string{"go", "db"}},
		{Author: "bob", Tags: []string{"golang"}},
		{Author: "ada", Tags: []string{"rust"}},
	} {
		_, err := s.Insert(ctx, "note", n)
		require.NoError(t, err)
	}

	var all []note
	require.NoError(t, s.FindMany(ctx, "note", nil, &all))
	assert.Len(t, all, 3)

	var tagged []note
	require.NoError(t, s.FindMany(ctx, "note", docstore.Where(docstore.Contains("tags", "go")), &tagged))
	require.Len(t, tagged, 1)
	assert.Equal(t, "ada", tagged[0].Author)

	var both []note
	require.NoError(t, s.FindMany(ctx, "note", docstore.Where(
		docstore.Contains("tags", "rust"),
		docstore.Eq("author", "ada"),
	), &both))
	require.Len(t, both, 1)
	assert.Equal(t, []string{"rust"}, both[0].Tags)

	var none []note
	require.NoError(t, s.FindMany(ctx, "missing", nil, &none))
	assert.Empty(t, none)
}

func TestUpdateOnePush(t *testing.T) {
	ctx := context.Background()
	s := New("test")

	id, err := s.Insert(ctx, "note", note{Author: "ada"})
	require.NoError(t, err)
	oid, _ := docstore.ParseID(id)

	for _, reply := range []string{"first", "second"} {
		n, err := s.UpdateOne(ctx, "note", docstore.Where(docstore.ID(oid)), docstore.Push("replies", reply))
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	}

	var got note
	_, err = s.FindOne(ctx, "note", docstore.Where(docstore.ID(oid)), &got)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got.Replies)

	n, err := s.UpdateOne(ctx, "note", docstore.Where(docstore.ID(docstore.NewID())), docstore.Push("replies", "x"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEnsureUnique(t *testing.T) {
	ctx := context.Background()
	s := New("test")
	require.NoError(t, s.EnsureUnique(ctx, "note", "author"))
	require.NoError(t, s.EnsureUnique(ctx, "note", "author"))

	_, err := s.Insert(ctx, "note", note{Author: "ada"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "note", note{Author: "ada"})
	assert.ErrorIs(t, err, docstore.ErrDuplicateKey)
	_, err = s.Insert(ctx, "note", note{Author: "bob"})
	assert.NoError(t, err)
}

func TestCollections(t *testing.T) {
	ctx := context.Background()
	s := New("")
	assert.Equal(t, "memory", s.Name())

	_, _ = s.Insert(ctx, "post", note{})
	_, _ = s.Insert(ctx, "user", note{})

	names, err := s.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"post", "user"}, names)
}
