// Package mongodb is the persistence gateway over MongoDB. Records are keyed
// by their public "id" field; the storage-internal _id never leaves this
// package because every read projects it away.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
)

var (
	ErrNotFound  = errors.New("mongodb: no matching document")
	ErrDuplicate = errors.New("mongodb: duplicate key")
)

// withoutInternalID is applied to every read.
var withoutInternalID = bson.D{{Key: "_id", Value: 0}}

// Client owns the connection and the selected database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, pings the primary and selects dbName.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}
	return &Client{client: client, db: client.Database(dbName)}, nil
}

func (c *Client) Collection(name string) *Collection {
	return NewCollection(c.db.Collection(name))
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Collection wraps a *mongo.Collection with the gateway contract.
type Collection struct {
	col *mongo.Collection
}

func NewCollection(col *mongo.Collection) *Collection {
	return &Collection{col: col}
}

// Find decodes all documents matching filter into out, which must be a
// pointer to a slice.
func (c *Collection) Find(ctx context.Context, filter any, out any, sort bson.D) error {
	opts := options.Find().SetProjection(withoutInternalID)
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cur, err := c.col.Find(ctx, orEmpty(filter), opts)
	if err != nil {
		return apperr.Storage(err)
	}
	if err := cur.All(ctx, out); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// FindOne decodes the first document matching filter into out.
func (c *Collection) FindOne(ctx context.Context, filter any, out any) error {
	err := c.col.FindOne(ctx, orEmpty(filter), options.FindOne().SetProjection(withoutInternalID)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (c *Collection) Insert(ctx context.Context, doc any) error {
	_, err := c.col.InsertOne(ctx, doc)
	return writeErr(err)
}

func (c *Collection) InsertMany(ctx context.Context, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := c.col.InsertMany(ctx, docs)
	return writeErr(err)
}

// Update applies set to the first document matching filter and reports how
// many documents matched.
func (c *Collection) Update(ctx context.Context, filter any, set any) (int64, error) {
	res, err := c.col.UpdateOne(ctx, orEmpty(filter), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return 0, writeErr(err)
	}
	return res.MatchedCount, nil
}

func (c *Collection) Delete(ctx context.Context, filter any) (int64, error) {
	res, err := c.col.DeleteOne(ctx, orEmpty(filter))
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return res.DeletedCount, nil
}

func (c *Collection) Count(ctx context.Context, filter any) (int64, error) {
	n, err := c.col.CountDocuments(ctx, orEmpty(filter))
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return n, nil
}

// Aggregate runs pipeline and decodes every result document into out.
func (c *Collection) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cur, err := c.col.Aggregate(ctx, pipeline)
	if err != nil {
		return apperr.Storage(err)
	}
	if err := cur.All(ctx, out); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Index describes one index the collection needs.
type Index struct {
	Keys   bson.D
	Unique bool
}

// EnsureIndexes creates the given indexes; existing ones are left alone.
func (c *Collection) EnsureIndexes(ctx context.Context, indexes ...Index) error {
	if len(indexes) == 0 {
		return nil
	}
	models := make([]mongo.IndexModel, 0, len(indexes))
	for _, idx := range indexes {
		models = append(models, mongo.IndexModel{
			Keys:    idx.Keys,
			Options: options.Index().SetUnique(idx.Unique),
		})
	}
	if _, err := c.col.Indexes().CreateMany(ctx, models); err != nil {
		return apperr.Storage(fmt.Errorf("create indexes on %s: %w", c.col.Name(), err))
	}
	return nil
}

func writeErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return apperr.Storage(err)
}

func orEmpty(filter any) any {
	if filter == nil {
		return bson.D{}
	}
	return filter
}
