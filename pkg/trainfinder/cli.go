package trainfinder

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/railnext/railnext/pkg/redis_client"
	"github.com/railnext/railnext/pkg/selection"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Find the next trains worth catching between two stations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from-name",
				Usage:    "source station name, eg. \"Howrah Jn\"",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "from-code",
				Usage:    "source station code, eg. HWH",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to-name",
				Usage:    "destination station name, eg. Chittaranjan",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to-code",
				Usage:    "destination station code, eg. CRJ",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "write the selected trains to this file as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			finder := NewFinder()

			if err := redis_client.Connect(); err == nil {
				finder.Client.SetupPageCache()
			} else {
				log.Warn().Err(err).Msg("Redis unavailable, running without page cache")
			}

			pair := StationPair{
				SourceName:      c.String("from-name"),
				SourceCode:      c.String("from-code"),
				DestinationName: c.String("to-name"),
				DestinationCode: c.String("to-code"),
			}

			if err := pair.Validate(); err != nil {
				return err
			}

			result, err := finder.NextTrains(context.Background(), pair, time.Now())
			if err != nil {
				return err
			}

			if len(result.Trains) == 0 {
				fmt.Println("No trains found between the specified stations.")
				return nil
			}

			printResult(result)

			if outputPath := c.String("output"); outputPath != "" {
				if err := result.WriteJSON(outputPath); err != nil {
					return err
				}

				log.Info().Str("path", outputPath).Msg("Saved train data")
			}

			return nil
		},
	}
}

var policyHeadings = map[selection.PolicyTag]string{
	selection.PolicyTagMixed:         "First trains by time (mixed local and non-local)",
	selection.PolicyTagNonLocal:      "Next non-local trains",
	selection.PolicyTagLocal:         "All trains departing within the next hour",
	selection.PolicyTagLocalFallback: "Next trains by time (none within the next hour)",
	selection.PolicyTagOther:         "Next trains by time",
}

func printResult(result *Result) {
	fmt.Println(policyHeadings[result.Policy])

	w := tabwriter.NewWriter(os.Stdout, 5, 3, 3, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tNAME\tDEPARTS\tARRIVES\tDURATION\tCLASSES")

	for _, train := range result.Trains {
		fmt.Fprintf(
			w,
			"%s\t%s\t%s %s\t%s %s\t%s\t%s\n",
			train.TrainNumber,
			train.TrainName,
			train.DepartureTime, train.Source,
			train.ArrivalTime, train.Destination,
			train.Duration,
			strings.Join(train.BookingClasses, ","),
		)
	}

	w.Flush()
}
