// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes configuration and the document database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config and run database migrations",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead",
			},
		},
		Action: r.Setup,
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the todo API server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Override the listen address (host:port)",
			},
		},
		Action: r.Serve,
	}
}

// listsCommand prints a user's lists, an admin convenience.
func listsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lists",
		Usage: "Print a user's todo lists as JSON",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "Principal id to query",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Lists,
	}
}
