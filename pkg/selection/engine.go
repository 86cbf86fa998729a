package selection

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/railnext/railnext/pkg/timetable"
	"github.com/rs/zerolog/log"
)

// PolicyTag names the selection branch that produced a result set.
type PolicyTag string

const (
	PolicyTagMixed         PolicyTag = "mixed"
	PolicyTagNonLocal      PolicyTag = "non_local"
	PolicyTagLocal         PolicyTag = "local"
	PolicyTagLocalFallback PolicyTag = "local_fallback"
	PolicyTagOther         PolicyTag = "other"
)

// Keyword sets used to classify a record set. These are heuristics over the
// published name/type strings, matched case-insensitively as substrings.
var (
	NonLocalKeywords = []string{
		"express", "rajdhani", "shatabdi", "duronto", "garib rath",
		"superfast", "super fast", "fast", "mail", "special",
	}
	LocalKeywords = []string{
		"local", "suburban", "passenger", "memu", "dmu", "emu",
	}
)

const (
	// How many trains to surface when selecting by count
	shortlistSize = 3

	// Forward window for local-only selection, boundary inclusive
	localWindow = time.Hour

	// Records without a parseable departure time sort last
	farFutureOffset = 365 * 24 * time.Hour
)

// SelectTrains decides which records are worth surfacing and in what order,
// attaching the concrete departure datetime to every record along the way.
// The now instant must be captured once per query and reused for the whole
// record set.
func SelectTrains(trains []*timetable.TrainRecord, now time.Time) ([]*timetable.TrainRecord, PolicyTag) {
	for _, train := range trains {
		departureDateTime, err := nextDeparture(train.DepartureTime, now)
		if err != nil {
			log.Debug().
				Str("train", train.TrainNumber).
				Str("departuretime", train.DepartureTime).
				Err(err).
				Msg("No usable departure time, sorting last")

			departureDateTime = now.Add(farFutureOffset)
		}

		train.DepartureDateTime = timetable.DateTime{Time: departureDateTime}
	}

	// Stable so that trains published at the identical minute keep their
	// upstream relative order
	sort.SliceStable(trains, func(i, j int) bool {
		return trains[i].DepartureDateTime.Before(trains[j].DepartureDateTime.Time)
	})

	hasNonLocal := anyMatches(trains, NonLocalKeywords)
	hasLocal := anyMatches(trains, LocalKeywords)

	switch {
	case hasNonLocal && hasLocal:
		log.Debug().Int("count", len(trains)).Msg("Both local and non-local trains detected")
		return shortlist(trains), PolicyTagMixed

	case hasNonLocal:
		var nonLocal []*timetable.TrainRecord
		for _, train := range trains {
			if matchesAny(train, NonLocalKeywords) {
				nonLocal = append(nonLocal, train)

				if len(nonLocal) == shortlistSize {
					break
				}
			}
		}

		log.Debug().Int("count", len(nonLocal)).Msg("Only non-local trains detected")
		return nonLocal, PolicyTagNonLocal

	case hasLocal:
		windowEnd := now.Add(localWindow)

		var withinWindow []*timetable.TrainRecord
		for _, train := range trains {
			if !train.DepartureDateTime.After(windowEnd) {
				withinWindow = append(withinWindow, train)
			}
		}

		if len(withinWindow) == 0 {
			log.Debug().Msg("No local trains within the window, falling back to next trains by time")
			return shortlist(trains), PolicyTagLocalFallback
		}

		log.Debug().Int("count", len(withinWindow)).Msg("Only local trains detected")
		return withinWindow, PolicyTagLocal

	default:
		return shortlist(trains), PolicyTagOther
	}
}

func shortlist(trains []*timetable.TrainRecord) []*timetable.TrainRecord {
	if len(trains) > shortlistSize {
		return trains[:shortlistSize]
	}

	return trains
}

func anyMatches(trains []*timetable.TrainRecord, keywords []string) bool {
	for _, train := range trains {
		if matchesAny(train, keywords) {
			return true
		}
	}

	return false
}

func matchesAny(train *timetable.TrainRecord, keywords []string) bool {
	name := strings.ToLower(train.TrainName)
	trainType := strings.ToLower(train.TrainType)

	for _, keyword := range keywords {
		if strings.Contains(name, keyword) || strings.Contains(trainType, keyword) {
			return true
		}
	}

	return false
}

// nextDeparture combines a published HH:MM clock time with today's date in
// now's location, rolling forward one day if that instant has already passed.
func nextDeparture(clockTime string, now time.Time) (time.Time, error) {
	hour, minute, err := parseClockTime(clockTime)
	if err != nil {
		return time.Time{}, err
	}

	departure := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	if departure.Before(now) {
		departure = departure.AddDate(0, 0, 1)
	}

	return departure, nil
}

func parseClockTime(value string) (int, int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", value)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}

	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock time %q out of range", value)
	}

	return hour, minute, nil
}
