// cmd/seed/main.go
// スキーマをマイグレーションし、life_areas カタログを投入します。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"go_5s_keep/internal/config"
	"go_5s_keep/internal/repository"
)

func main() {
	if err := newSeedCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var configDir string
	var dryRun bool

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Migrate the schema and seed the life area catalog",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configDir, dryRun)
		},
	}
	cmd.Flags().StringVar(&configDir, "config", "../configs", "directory containing config.yaml")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the catalog without writing")
	return cmd
}

func run(ctx context.Context, configDir string, dryRun bool) error {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo, TimeFormat: time.Kitchen}))
	slog.SetDefault(logger)

	if err := config.LoadConfig(configDir); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	catalog := repository.DefaultCatalog()
	if dryRun {
		for _, a := range catalog {
			logger.Info("Area", slog.String("name", a.Name), slog.String("display_name", a.DisplayName), slog.Int("sort_order", a.SortOrder))
		}
		return nil
	}

	// シーダーは常にマイグレーションを行う
	dbCfg := config.Cfg.Database
	dbCfg.AutoMigrate = true
	db, err := repository.NewDB(dbCfg, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := repository.SeedCatalog(ctx, db, repository.NewGormAreaRepository(), catalog); err != nil {
		logger.Error("Failed to seed catalog", slog.Any("error", err))
		return err
	}
	logger.Info("Catalog seeded", slog.Int("areas", len(catalog)))
	return nil
}
