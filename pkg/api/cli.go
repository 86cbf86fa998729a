package api

import (
	"github.com/railnext/railnext/pkg/redis_client"
	"github.com/railnext/railnext/pkg/trainfinder"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the train search web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					finder := trainfinder.NewFinder()

					if err := redis_client.Connect(); err == nil {
						finder.Client.SetupPageCache()
					} else {
						log.Warn().Err(err).Msg("Redis unavailable, running without page cache")
					}

					return SetupServer(c.String("listen"), finder)
				},
			},
		},
	}
}
