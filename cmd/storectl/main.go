// storectl is an admin CLI for the pug-bot state store: inspect users and the
// queue, and apply the schema without starting the gateway.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	matchdb "github.com/scrimmage-club/pug-bot/app/modules/match/infrastructure/repositories"
	"github.com/scrimmage-club/pug-bot/config"
	"github.com/scrimmage-club/pug-bot/db/bundb"
	"github.com/scrimmage-club/pug-bot/pkg/types"
)

func main() {
	cliApp := &cli.App{
		Name:  "storectl",
		Usage: "pug-bot state store administration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			newSchemaCommand(),
			newUserCommand(),
			newQueueCommand(),
			newMatchesCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openStore(c *cli.Context) (*bundb.StoreService, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return bundb.NewStoreService(c.Context, cfg.Database)
}

func newSchemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "schema management",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "apply the schema (idempotent, also runs on bot start)",
				Action: func(c *cli.Context) error {
					store, err := openStore(c)
					if err != nil {
						return err
					}
					defer store.Close()
					fmt.Println("Schema applied.")
					return nil
				},
			},
		},
	}
}

func newUserCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "user records",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "print one user as JSON",
				ArgsUsage: "<discord-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one discord id")
					}
					store, err := openStore(c)
					if err != nil {
						return err
					}
					defer store.Close()

					user, err := store.UserDB.GetUser(c.Context, store.GetDB(), types.DiscordID(c.Args().First()))
					if err != nil {
						return err
					}
					if user == nil {
						fmt.Println("no such user")
						return nil
					}
					return json.NewEncoder(os.Stdout).Encode(user)
				},
			},
		},
	}
}

func newQueueCommand() *cli.Command {
	return &cli.Command{
		Name:  "queue",
		Usage: "join-queue inspection",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print the queue in join order",
				Action: func(c *cli.Context) error {
					store, err := openStore(c)
					if err != nil {
						return err
					}
					defer store.Close()

					entries, err := store.QueueDB.List(c.Context, store.GetDB())
					if err != nil {
						return err
					}
					sort.Slice(entries, func(a, b int) bool { return entries[a].JoinedAt < entries[b].JoinedAt })
					for _, e := range entries {
						fmt.Printf("%s\t%d\n", e.DiscordID, e.JoinedAt)
					}
					fmt.Printf("%d player(s) waiting\n", len(entries))
					return nil
				},
			},
		},
	}
}

func newMatchesCommand() *cli.Command {
	return &cli.Command{
		Name:  "matches",
		Usage: "match history",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print matches in one lifecycle state",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Value: string(matchdb.MatchStatusPending),
						Usage: "PENDING, PROVISIONING, ACTIVE, COMPLETED, or CANCELLED",
					},
				},
				Action: func(c *cli.Context) error {
					status := matchdb.MatchStatus(c.String("status"))
					if !status.IsValid() {
						return fmt.Errorf("unknown status %q", c.String("status"))
					}
					store, err := openStore(c)
					if err != nil {
						return err
					}
					defer store.Close()

					matches, err := store.MatchDB.ListMatchesByStatus(c.Context, store.GetDB(), status)
					if err != nil {
						return err
					}
					enc := json.NewEncoder(os.Stdout)
					for _, m := range matches {
						if err := enc.Encode(m); err != nil {
							return err
						}
					}
					return nil
				},
			},
		},
	}
}
