package mongostore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/fkhayef/blog/internal/docstore"
)

type author struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

var _ docstore.Store = (*Store)(nil)

func TestToBSON(t *testing.T) {
	id := docstore.NewID()

	assert.Equal(t, bson.D{}, toBSON(nil))
	assert.Equal(t, bson.D{{Key: "_id", Value: id}}, toBSON(docstore.Where(docstore.ID(id))))
	assert.Equal(t,
		bson.D{{Key: "tags", Value: bson.D{{Key: "$elemMatch", Value: bson.D{{Key: "$eq", Value: "go"}}}}}},
		toBSON(docstore.Where(docstore.Contains("tags", "go"))))

	combined := toBSON(docstore.Where(docstore.Contains("tags", "go"), docstore.Eq("author_username", "ada")))
	require.Len(t, combined, 1)
	assert.Equal(t, "$and", combined[0].Key)
	assert.Len(t, combined[0].Value, 2)
}

func TestUpdateBSON(t *testing.T) {
	u, err := updateBSON(docstore.Push("comments", "hi"))
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "$push", Value: bson.D{{Key: "comments", Value: "hi"}}}}, u)

	_, err = updateBSON(docstore.Update{Op: docstore.UpdateOp(9)})
	assert.Error(t, err)
}

func TestStoreAgainstMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert returns hex id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := New(mt.DB).Insert(ctx, docstore.UserCollection, author{Username: "ada"})
		require.NoError(mt, err)
		_, err = docstore.ParseID(id)
		assert.NoError(mt, err)
	})

	mt.Run("insert duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := New(mt.DB).Insert(ctx, docstore.UserCollection, author{Username: "ada"})
		assert.ErrorIs(mt, err, docstore.ErrDuplicateKey)
	})

	mt.Run("find one", func(mt *mtest.T) {
		id := docstore.NewID()
		ns := mt.DB.Name() + "." + docstore.UserCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "ada"},
		}))

		var got author
		found, err := New(mt.DB).FindOne(ctx, docstore.UserCollection, docstore.Where(docstore.Eq("username", "ada")), &got)
		require.NoError(mt, err)
		assert.True(mt, found)
		assert.Equal(mt, author{ID: id, Username: "ada"}, got)
	})

	mt.Run("find one missing", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + docstore.UserCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		var got author
		found, err := New(mt.DB).FindOne(ctx, docstore.UserCollection, docstore.Where(docstore.Eq("username", "bob")), &got)
		require.NoError(mt, err)
		assert.False(mt, found)
	})

	mt.Run("find many", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + docstore.UserCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "username", Value: "ada"}},
			bson.D{{Key: "username", Value: "bob"}},
		))

		var got []author
		require.NoError(mt, New(mt.DB).FindMany(ctx, docstore.UserCollection, nil, &got))
		require.Len(mt, got, 2)
		assert.Equal(mt, "bob", got[1].Username)
	})

	mt.Run("update one reports matched count", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)
		s := New(mt.DB)
		filter := docstore.Where(docstore.ID(docstore.NewID()))

		n, err := s.UpdateOne(ctx, docstore.PostCollection, filter, docstore.Push("comments", bson.D{{Key: "content", Value: "hi"}}))
		require.NoError(mt, err)
		assert.EqualValues(mt, 1, n)

		n, err = s.UpdateOne(ctx, docstore.PostCollection, filter, docstore.Push("comments", bson.D{{Key: "content", Value: "hi"}}))
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("backend error is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
			Name:    "BadValue",
		}))

		var got []author
		err := New(mt.DB).FindMany(ctx, docstore.UserCollection, nil, &got)
		var storeErr *docstore.Error
		require.ErrorAs(mt, err, &storeErr)
		assert.Equal(mt, "find many", storeErr.Op)
	})
}
