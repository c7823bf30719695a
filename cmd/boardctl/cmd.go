package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		migrateCommand(r),
		userCommand(r),
		seedCommand(r),
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML or TOML configuration file",
		Sources: cli.EnvVars("CONFIG_FILE"),
	}
}

func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back the database schema",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Create all tables and indexes",
				Flags:  []cli.Flag{configFlag()},
				Action: r.MigrateUp,
			},
			{
				Name:   "down",
				Usage:  "Drop all board tables",
				Flags:  []cli.Flag{configFlag()},
				Action: r.MigrateDown,
			},
		},
	}
}

func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Register a user account",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "user-id", Usage: "Login id", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Plain password, hashed before storage", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "nickname", Usage: "Display name"},
					&cli.StringFlag{Name: "memo", Usage: "Free-form note"},
				},
				Action: r.AddUser,
			},
		},
	}
}

func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load demo users, articles and comments",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{Name: "migrate", Usage: "Apply the schema first", Value: true},
		},
		Action: r.Seed,
	}
}
