package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/fresh-meat-hub/internal/admin"
	"github.com/wichananm65/fresh-meat-hub/internal/category"
	"github.com/wichananm65/fresh-meat-hub/internal/config"
	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database"
	"github.com/wichananm65/fresh-meat-hub/internal/interface/http/router"
	"github.com/wichananm65/fresh-meat-hub/internal/logger"
	"github.com/wichananm65/fresh-meat-hub/internal/metrics"
	"github.com/wichananm65/fresh-meat-hub/internal/order"
	"github.com/wichananm65/fresh-meat-hub/internal/pincode"
	"github.com/wichananm65/fresh-meat-hub/internal/product"
	"github.com/wichananm65/fresh-meat-hub/internal/session"
	"github.com/wichananm65/fresh-meat-hub/internal/stats"
	"github.com/wichananm65/fresh-meat-hub/internal/upload"
)

// application is the wired process: stores, services and the HTTP app.
type application struct {
	cfg        config.Config
	log        *slog.Logger
	stores     *database.Stores
	categories *category.Service
	http       *fiber.App
	closers    []func(context.Context) error
}

// boot loads configuration and opens the configured store.
func boot(ctx context.Context) (config.Config, *slog.Logger, *database.Stores, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	log := logger.New(cfg.AppEnv, nil)
	slog.SetDefault(log)

	stores, err := database.Open(ctx, cfg, log)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, log, stores, nil
}

func newApplication(ctx context.Context, cfg config.Config, log *slog.Logger, stores *database.Stores) (*application, error) {
	a := &application{cfg: cfg, log: log, stores: stores}

	revocations, err := a.revocationStore(ctx)
	if err != nil {
		return nil, err
	}
	verifier, err := admin.NewVerifier(cfg.AdminPIN)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionTTL, revocations, log)
	checker := pincode.NewChecker(cfg.ServiceablePincodes)

	products := product.NewService(stores.Products, log)
	a.categories = category.NewService(stores.Categories, products, log)
	orders := order.NewService(stores.Orders, checker,
		order.WithAuditLog(order.NewFileAuditLog(cfg.OrderLogPath)),
		order.WithRecorder(m),
		order.WithLogger(log),
	)

	a.http = router.New(router.Deps{
		Config:     cfg,
		Log:        log,
		Metrics:    m,
		Sessions:   sessions,
		Categories: category.NewHandler(a.categories),
		Products:   product.NewHandler(products),
		Orders:     order.NewHandler(orders),
		Pincodes:   pincode.NewHandler(checker),
		Stats:      stats.NewHandler(stats.NewService(products, orders)),
		Admin: admin.NewHandler(verifier, sessions, admin.Throttle{
			MaxAttempts: cfg.AdminMaxAttempts,
			Window:      cfg.AdminAttemptWindow,
		}, log),
		Upload: upload.NewHandler(log),
	})
	return a, nil
}

func (a *application) revocationStore(ctx context.Context) (session.Store, error) {
	if a.cfg.RedisAddr == "" {
		return session.NewMemoryStore(), nil
	}
	rdb, err := session.DialRedis(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	a.log.Info("admin session revocations stored in redis", "addr", a.cfg.RedisAddr)
	return session.NewRedisStore(rdb), nil
}

// close releases redis and the store.
func (a *application) close(ctx context.Context) error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c(ctx))
	}
	errs = append(errs, a.stores.Close(ctx))
	return errors.Join(errs...)
}
