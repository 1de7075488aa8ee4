package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database/mongodb"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("list decodes sorted categories", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "id", Value: "a"}, {Key: "name", Value: "chicken"}, {Key: "displayOrder", Value: 1}},
			bson.D{{Key: "id", Value: "b"}, {Key: "name", Value: "mutton"}, {Key: "displayOrder", Value: 2}},
		))

		repo := newMongoRepositoryFor(mongodb.NewCollection(mt.Coll))
		items, err := repo.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, "chicken", items[0].Name)
		assert.Equal(mt, 2, items[1].DisplayOrder)
	})

	mt.Run("create maps duplicate name", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: categories index: name_1",
		}))

		repo := newMongoRepositoryFor(mongodb.NewCollection(mt.Coll))
		_, err := repo.Create(ctx, Category{ID: "a", Name: "chicken"})
		assert.ErrorIs(mt, err, ErrDuplicateName)
	})

	mt.Run("update of unknown id is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		order := 3
		repo := newMongoRepositoryFor(mongodb.NewCollection(mt.Coll))
		_, err := repo.Update(ctx, "missing", Patch{DisplayOrder: &order})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete of unknown id is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		repo := newMongoRepositoryFor(mongodb.NewCollection(mt.Coll))
		assert.ErrorIs(mt, repo.Delete(ctx, "missing"), ErrNotFound)
	})
}
