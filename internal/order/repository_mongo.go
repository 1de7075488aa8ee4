package order

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database/mongodb"
)

const collectionName = "orders"

type MongoRepository struct {
	col *mongodb.Collection
}

func NewMongoRepository(client *mongodb.Client) *MongoRepository {
	return &MongoRepository{col: client.Collection(collectionName)}
}

func newMongoRepositoryFor(col *mongodb.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	return r.col.EnsureIndexes(ctx,
		mongodb.Index{Keys: bson.D{{Key: "id", Value: 1}}, Unique: true},
		mongodb.Index{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	)
}

func (r *MongoRepository) Create(ctx context.Context, o Order) (Order, error) {
	if err := r.col.Insert(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Order, error) {
	out := make([]Order, 0)
	if err := r.col.Find(ctx, nil, &out, bson.D{{Key: "createdAt", Value: -1}}); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.col.FindOne(ctx, bson.D{{Key: "id", Value: id}}, &o)
	if errors.Is(err, mongodb.ErrNotFound) {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	matched, err := r.col.Update(ctx, bson.D{{Key: "id", Value: id}}, bson.D{{Key: "status", Value: string(status)}})
	if err != nil {
		return Order{}, err
	}
	if matched == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MongoRepository) Count(ctx context.Context, status Status) (int64, error) {
	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: string(status)})
	}
	return r.col.Count(ctx, filter)
}

func (r *MongoRepository) Revenue(ctx context.Context, status Status) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: string(status)}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}
	var res []struct {
		Total float64 `bson:"total"`
	}
	if err := r.col.Aggregate(ctx, pipeline, &res); err != nil {
		return 0, err
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0].Total, nil
}
