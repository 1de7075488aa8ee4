package order

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

	mt.Run("revenue reads the grouped total", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: 300.0}},
		))

		repo := newMongoRepositoryFor(mongodb.NewCollection(mt.Coll))
		rev, err := repo.Revenue(ctx, StatusCompleted)
		require.NoError(mt, err)
		assert.Equal(mt, 300.0, rev)
	})

	mt.Run("revenue is zero without completed orders", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := newMongoRepositoryFor(mongodb.NewCollection(mt.Coll))
		rev, err := repo.Revenue(ctx, StatusCompleted)
		require.NoError(mt, err)
		assert.Zero(mt, rev)
	})

	mt.Run("update status of unknown order", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		repo := newMongoRepositoryFor(mongodb.NewCollection(mt.Coll))
		_, err := repo.UpdateStatus(ctx, "missing", StatusPacked)
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list decodes items", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "id", Value: "o1"},
				{Key: "status", Value: "OUT FOR DELIVERY"},
				{Key: "items", Value: bson.A{
					bson.D{{Key: "productId", Value: "p1"}, {Key: "productName", Value: "Wings"}, {Key: "quantity", Value: 2}},
				}},
			},
		))

		repo := newMongoRepositoryFor(mongodb.NewCollection(mt.Coll))
		orders, err := repo.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, orders, 1)
		assert.Equal(mt, StatusOutForDelivery, orders[0].Status)
		require.Len(mt, orders[0].Items, 1)
		assert.Equal(mt, 2, orders[0].Items[0].Quantity)
	})
}
