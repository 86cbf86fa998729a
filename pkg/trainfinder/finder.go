package trainfinder

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/railnext/railnext/pkg/etrain"
	"github.com/railnext/railnext/pkg/selection"
	"github.com/railnext/railnext/pkg/timetable"
	"github.com/rs/zerolog/log"
)

// ErrInvalidStations is returned when the upstream rejects the queried
// station pair, meaning the query itself is malformed rather than
// unproductive.
var ErrInvalidStations = errors.New("invalid station codes")

type StationPair struct {
	SourceName      string
	SourceCode      string
	DestinationName string
	DestinationCode string
}

func (p StationPair) Validate() error {
	if strings.TrimSpace(p.SourceName) == "" || strings.TrimSpace(p.SourceCode) == "" ||
		strings.TrimSpace(p.DestinationName) == "" || strings.TrimSpace(p.DestinationCode) == "" {
		return errors.New("all station names and codes must be provided")
	}

	return nil
}

// Result is the outcome of one query: the selected records in order plus the
// policy tag explaining which selection branch produced them.
type Result struct {
	Trains []*timetable.TrainRecord `json:"trains"`
	Policy selection.PolicyTag      `json:"policy"`
}

type Finder struct {
	Client *etrain.Client
}

func NewFinder() *Finder {
	return &Finder{
		Client: etrain.NewClient(),
	}
}

// NextTrains runs the full pipeline for one query: fetch the schedule page
// for now's calendar date, extract the train records, and select the
// time-relevant subset. The now instant is threaded through the whole pass so
// every record is evaluated against the same snapshot.
func (f *Finder) NextTrains(ctx context.Context, pair StationPair, now time.Time) (*Result, error) {
	document, err := f.Client.FetchSchedulePage(ctx, pair.SourceName, pair.SourceCode, pair.DestinationName, pair.DestinationCode, now)
	if err != nil {
		return nil, err
	}

	trains, err := etrain.ExtractTrains(document)
	if err != nil {
		if errors.Is(err, etrain.ErrStationsRejected) {
			return nil, ErrInvalidStations
		}

		return nil, err
	}

	log.Info().
		Int("trains", len(trains)).
		Str("from", pair.SourceCode).
		Str("to", pair.DestinationCode).
		Msg("Extracted trains")

	selected, policy := selection.SelectTrains(trains, now)

	return &Result{
		Trains: selected,
		Policy: policy,
	}, nil
}

// WriteJSON writes the selected records as an indented JSON array, the
// convenience output format for one-shot queries.
func (r *Result) WriteJSON(path string) error {
	trainsJSON, err := json.MarshalIndent(r.Trains, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, trainsJSON, 0644)
}
