package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tdx/internal/docstore"
	"github.com/desertthunder/tdx/internal/services"
	"github.com/urfave/cli/v3"
)

// Lists prints a user's todo lists as JSON, newest first.
func (r *Runner) Lists(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	store := docstore.NewSQLiteStore(db)
	listService := services.NewListService(store, r.logger)

	lists, err := listService.ListByUser(ctx, cmd.String("user"))
	if err != nil {
		return fmt.Errorf("failed to list todo lists: %w", err)
	}

	return r.writeJSON(lists, cmd.Bool("pretty"))
}
