package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wichananm65/fresh-meat-hub/internal/category"
	"github.com/wichananm65/fresh-meat-hub/internal/product"
)

// fresh-meat-hub migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create indexes (mongo) or tables (postgres)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, log, stores, err := boot(ctx)
		if err != nil {
			return err
		}
		defer stores.Close(context.Background())

		if err := stores.EnsureSchema(ctx); err != nil {
			return err
		}
		log.Info("schema ready", "store", stores.Driver)
		return nil
	},
}

// fresh-meat-hub seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default categories into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, log, stores, err := boot(ctx)
		if err != nil {
			return err
		}
		defer stores.Close(context.Background())

		if err := stores.EnsureSchema(ctx); err != nil {
			return err
		}
		categories := category.NewService(stores.Categories, product.NewService(stores.Products, log), log)
		n, err := categories.SeedDefaults(ctx)
		if err != nil {
			return err
		}
		log.Info("seed finished", "inserted", n)
		return nil
	},
}
