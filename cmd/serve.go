package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/tdx/internal/auth"
	"github.com/desertthunder/tdx/internal/docstore"
	"github.com/desertthunder/tdx/internal/server"
	"github.com/desertthunder/tdx/internal/services"
	"github.com/desertthunder/tdx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve wires the store, managers and identity service together and runs the
// HTTP API until the process exits.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	store := docstore.NewSQLiteStore(db)

	lists := services.NewListService(store, r.logger)
	todos := services.NewTodoService(store, lists, r.logger)
	users := services.NewUserService(store, r.logger)

	tokens := auth.NewTokenManager(
		config.Auth.Secret,
		config.Auth.Issuer,
		time.Duration(config.Auth.SessionTTLHours)*time.Hour,
	)
	identity := auth.NewService(store, tokens, r.logger)

	api := server.NewAPI(server.APIOpts{
		Identity: identity,
		Users:    users,
		Lists:    lists,
		Todos:    todos,
		Logger:   r.logger,
	})

	addr := cmd.String("addr")
	if addr == "" {
		addr = config.Server.Addr()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	r.logger.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
