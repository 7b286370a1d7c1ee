package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tdx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates a config file when missing, then initializes the document
// database and applies migrations. With --rollback it instead reverts the most
// recent migration.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.Bool("rollback") {
		r.logger.Info("rolling back most recent migration")
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
		return r.writePlain("✓ Rolled back one migration\n")
	}

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}
