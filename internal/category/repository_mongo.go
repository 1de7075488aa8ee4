package category

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database/mongodb"
)

const collectionName = "categories"

// MongoRepository stores categories in the "categories" collection. Name
// uniqueness rests on a unique index, so a duplicate insert fails atomically.
type MongoRepository struct {
	col *mongodb.Collection
}

func NewMongoRepository(client *mongodb.Client) *MongoRepository {
	return &MongoRepository{col: client.Collection(collectionName)}
}

func newMongoRepositoryFor(col *mongodb.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// EnsureIndexes creates the unique id and name indexes.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	return r.col.EnsureIndexes(ctx,
		mongodb.Index{Keys: bson.D{{Key: "id", Value: 1}}, Unique: true},
		mongodb.Index{Keys: bson.D{{Key: "name", Value: 1}}, Unique: true},
	)
}

func (r *MongoRepository) List(ctx context.Context) ([]Category, error) {
	out := make([]Category, 0)
	if err := r.col.Find(ctx, nil, &out, bson.D{{Key: "displayOrder", Value: 1}}); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Category, error) {
	var c Category
	err := r.col.FindOne(ctx, bson.D{{Key: "id", Value: id}}, &c)
	if errors.Is(err, mongodb.ErrNotFound) {
		return Category{}, ErrNotFound
	}
	return c, err
}

func (r *MongoRepository) Create(ctx context.Context, c Category) (Category, error) {
	if err := r.col.Insert(ctx, c); err != nil {
		if errors.Is(err, mongodb.ErrDuplicate) {
			return Category{}, ErrDuplicateName
		}
		return Category{}, err
	}
	return r.GetByID(ctx, c.ID)
}

func (r *MongoRepository) CreateMany(ctx context.Context, cs []Category) error {
	docs := make([]any, 0, len(cs))
	for _, c := range cs {
		docs = append(docs, c)
	}
	err := r.col.InsertMany(ctx, docs)
	if errors.Is(err, mongodb.ErrDuplicate) {
		return ErrDuplicateName
	}
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, p Patch) (Category, error) {
	set := bson.D{}
	if p.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *p.Name})
	}
	if p.DisplayOrder != nil {
		set = append(set, bson.E{Key: "displayOrder", Value: *p.DisplayOrder})
	}
	if p.CoverImage != nil {
		set = append(set, bson.E{Key: "coverImage", Value: *p.CoverImage})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}

	matched, err := r.col.Update(ctx, bson.D{{Key: "id", Value: id}}, set)
	if errors.Is(err, mongodb.ErrDuplicate) {
		return Category{}, ErrDuplicateName
	}
	if err != nil {
		return Category{}, err
	}
	if matched == 0 {
		return Category{}, ErrNotFound
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
