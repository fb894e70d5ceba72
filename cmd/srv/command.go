package main

import (
	"github.com/urfave/cli/v2"
)

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "MetaRaffle"
	s.app.Usage = "Raffle engine of metaverse events"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path of the toml configuration file",
			EnvVars: []string{"CONFIG_FILE"},
		},
	}
	s.app.Before = s.loadConfig
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used to start the http api serving users, events, raffles and rewards.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Category:    "Database",
			Description: `Used to create or update every table of the service.`,
		},
		{
			Action:      s.startSettlement,
			Name:        "settlement",
			Usage:       "Start the settlement consumer",
			Category:    "Worker",
			Description: `Used to consume the settlement topic and log a receipt per message.`,
		},
		{
			Action:    s.startToken,
			Name:      "token",
			Usage:     "Generate an access token",
			ArgsUsage: "<userID> [name]",
			Category:  "Tool",
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:  "expiration",
					Usage: "Lifetime of the token, default is the configured access token expiration",
				},
			},
			Description: `Used to mint an access token for local development and testing.`,
		},
	}
}
