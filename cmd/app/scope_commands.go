package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/hubgate/cmd/app/commands"
	"github.com/allisson/hubgate/internal/app"
	"github.com/allisson/hubgate/internal/config"
)

func getScopeCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "check-access",
			Usage: "Evaluate an authorization decision for a principal offline",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "kind",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Principal kind: 'user' or 'service'",
				},
				&cli.StringFlag{
					Name:     "principal",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Principal name",
				},
				&cli.StringFlag{
					Name:     "scope",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Required scope name (e.g. 'read:users')",
				},
				&cli.StringSliceFlag{
					Name:    "context",
					Aliases: []string{"c"},
					Usage:   "Resource context entry as key=value (repeatable; keys: user, server, group, service)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				resolver, err := container.ScopeResolver()
				if err != nil {
					return err
				}

				authorizer, err := container.Authorizer()
				if err != nil {
					return err
				}

				return commands.RunCheckAccess(
					ctx,
					resolver,
					authorizer,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kind"),
					cmd.String("principal"),
					cmd.String("scope"),
					cmd.StringSlice("context"),
					cmd.String("format"),
				)
			},
		},
	}
}
