package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wichananm65/fresh-meat-hub/internal/config"
	"github.com/wichananm65/fresh-meat-hub/internal/infrastructure/database"
	"github.com/wichananm65/fresh-meat-hub/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// fresh-meat-hub serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, stores, err := boot(ctx)
	if err != nil {
		return err
	}
	app, err := newApplication(ctx, cfg, log, stores)
	if err != nil {
		_ = stores.Close(context.Background())
		return err
	}
	defer func() {
		if err := app.close(context.Background()); err != nil {
			log.Error("shutdown cleanup failed", "error", err)
		}
	}()

	if err := stores.EnsureSchema(ctx); err != nil {
		return err
	}
	if n, err := app.categories.SeedDefaults(ctx); err != nil {
		log.Error("seeding default categories failed", "error", err)
	} else if n > 0 {
		log.Info("seeded default categories", "count", n)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.Addr, "store", stores.Driver, "env", cfg.AppEnv)
		errCh <- app.http.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.http.ShutdownWithContext(shutdownCtx)
}

// fresh-meat-hub routes
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the registered HTTP routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app, err := newApplication(cmd.Context(), memoryConfig(cfg), logger.Discard(), database.Memory())
		if err != nil {
			return err
		}

		routes := app.http.GetRoutes(true)
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path != routes[j].Path {
				return routes[i].Path < routes[j].Path
			}
			return routes[i].Method < routes[j].Method
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		fmt.Fprintln(w, "------\t----")
		for _, r := range routes {
			if r.Method == "HEAD" {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\n", r.Method, r.Path)
		}
		return w.Flush()
	},
}

// memoryConfig strips external services so the route table can be built
// without connecting anywhere.
func memoryConfig(cfg config.Config) config.Config {
	cfg.StoreDriver = config.DriverMemory
	cfg.RedisAddr = ""
	return cfg
}
