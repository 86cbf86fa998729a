package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/railnext/railnext/pkg/api"
	"github.com/railnext/railnext/pkg/trainfinder"

	_ "time/tzdata"
)

func main() {
	godotenv.Load()

	if os.Getenv("RAILNEXT_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RAILNEXT_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "railnext",
		Description: "Answers which trains are worth catching right now between two stations",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			trainfinder.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
