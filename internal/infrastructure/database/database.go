// Package database opens the configured store and hands out the domain
// repositories backed by it.
package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wichananm65/fresh-meat-hub/internal/category"
	"github.com/wichananm65/fresh-meat-hub/internal/config"
	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database/mongodb"
	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database/postgres"
	"github.com/wichananm65/fresh-meat-hub/internal/order"
	"github.com/wichananm65/fresh-meat-hub/internal/product"
)

// Stores groups the repositories of one backend.
type Stores struct {
	Driver     string
	Categories category.Repository
	Products   product.Repository
	Orders     order.Repository

	ensureSchema func(ctx context.Context) error
	close        func(ctx context.Context) error
}

// Open connects to cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (*Stores, error) {
	if log == nil {
		log = slog.Default()
	}
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, log)
	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on restart")
		return Memory(), nil
	default:
		return nil, fmt.Errorf("database: unknown store driver %q", cfg.StoreDriver)
	}
}

// Memory returns empty in-memory repositories.
func Memory() *Stores {
	return &Stores{
		Driver:     config.DriverMemory,
		Categories: category.NewInMemoryRepository(nil),
		Products:   product.NewInMemoryRepository(nil),
		Orders:     order.NewInMemoryRepository(),
	}
}

func openMongo(ctx context.Context, cfg config.Config, log *slog.Logger) (*Stores, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		return nil, err
	}
	log.Info("connected to mongodb", "database", cfg.DBName)

	categories := category.NewMongoRepository(client)
	products := product.NewMongoRepository(client)
	orders := order.NewMongoRepository(client)
	return &Stores{
		Driver:     config.DriverMongo,
		Categories: categories,
		Products:   products,
		Orders:     orders,
		ensureSchema: func(ctx context.Context) error {
			if err := categories.EnsureIndexes(ctx); err != nil {
				return err
			}
			if err := products.EnsureIndexes(ctx); err != nil {
				return err
			}
			return orders.EnsureIndexes(ctx)
		},
		close: client.Close,
	}, nil
}

func openPostgres(ctx context.Context, cfg config.Config, log *slog.Logger) (*Stores, error) {
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Info("connected to postgres")

	return &Stores{
		Driver:     config.DriverPostgres,
		Categories: category.NewPostgresRepository(db),
		Products:   product.NewPostgresRepository(db),
		Orders:     order.NewPostgresRepository(db),
		ensureSchema: func(ctx context.Context) error {
			return postgres.Migrate(ctx, db)
		},
		close: func(context.Context) error { return db.Close() },
	}, nil
}

// EnsureSchema creates indexes (mongo) or tables (postgres). The memory
// store needs nothing.
func (s *Stores) EnsureSchema(ctx context.Context) error {
	if s.ensureSchema == nil {
		return nil
	}
	return s.ensureSchema(ctx)
}

func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
