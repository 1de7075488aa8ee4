package product

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database/mongodb"
)

const collectionName = "products"

// MongoRepository stores products in the "products" collection.
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
		mongodb.Index{Keys: bson.D{{Key: "category", Value: 1}}},
	)
}

func (r *MongoRepository) List(ctx context.Context, category string) ([]Product, error) {
	filter := bson.D{}
	if category != "" {
		filter = append(filter, bson.E{Key: "category", Value: category})
	}
	out := make([]Product, 0)
	if err := r.col.Find(ctx, filter, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.col.FindOne(ctx, bson.D{{Key: "id", Value: id}}, &p)
	if errors.Is(err, mongodb.ErrNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *MongoRepository) Create(ctx context.Context, p Product) (Product, error) {
	if err := r.col.Insert(ctx, p); err != nil {
		return Product{}, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *MongoRepository) Update(ctx context.Context, id string, p Patch) (Product, error) {
	set := bson.D{}
	if p.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *p.Name})
	}
	if p.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *p.Price})
	}
	if p.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *p.Category})
	}
	if p.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *p.Image})
	}
	if p.InStock != nil {
		set = append(set, bson.E{Key: "inStock", Value: *p.InStock})
	}
	if p.Weight != nil {
		set = append(set, bson.E{Key: "weight", Value: *p.Weight})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}

	matched, err := r.col.Update(ctx, bson.D{{Key: "id", Value: id}}, set)
	if err != nil {
		return Product{}, err
	}
	if matched == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.col.Delete(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.Count(ctx, nil)
}

func (r *MongoRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	return r.col.Count(ctx, bson.D{{Key: "category", Value: category}})
}
