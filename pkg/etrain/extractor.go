package etrain

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/railnext/railnext/pkg/timetable"
	"github.com/rs/zerolog/log"
)

// ErrStationsRejected means the upstream refused the station pair entirely,
// typically because of invalid station codes. Distinct from a well-formed
// page that simply lists no trains.
var ErrStationsRejected = errors.New("station pair rejected by upstream")

var htmlTagRegex = regexp.MustCompile(`<[^>]+>`)

// trainAttribute is the JSON blob embedded in each schedule row's data-train
// attribute. Keys absent from the blob decode to empty strings.
type trainAttribute struct {
	Number        string `json:"num"`
	Name          string `json:"name"`
	Type          string `json:"typ"`
	Source        string `json:"s"`
	DepartureTime string `json:"st"`
	Destination   string `json:"d"`
	ArrivalTime   string `json:"dt"`
	Duration      string `json:"tt"`
}

// ExtractTrains walks every schedule row carrying a per-train data blob and
// decodes it into a TrainRecord, in document order. Rows that fail to decode
// are logged and skipped, never fatal.
func ExtractTrains(document *goquery.Document) ([]*timetable.TrainRecord, error) {
	if document.Find("div.errormsg").Length() > 0 {
		return nil, ErrStationsRejected
	}

	trains := []*timetable.TrainRecord{}

	document.Find("tr[data-train]").Each(func(index int, row *goquery.Selection) {
		train, err := decodeTrainRow(row)
		if err != nil {
			log.Warn().Int("row", index).Err(err).Msg("Failed to decode train row")
			return
		}

		trains = append(trains, train)
	})

	return trains, nil
}

func decodeTrainRow(row *goquery.Selection) (*timetable.TrainRecord, error) {
	blob, _ := row.Attr("data-train")

	var attribute trainAttribute
	if err := json.Unmarshal([]byte(blob), &attribute); err != nil {
		return nil, err
	}

	return &timetable.TrainRecord{
		TrainNumber:   attribute.Number,
		TrainName:     attribute.Name,
		TrainType:     attribute.Type,
		Source:        attribute.Source,
		Destination:   attribute.Destination,
		DepartureTime: attribute.DepartureTime,
		ArrivalTime:   attribute.ArrivalTime,
		Duration:      attribute.Duration,

		BookingAvailable:         row.AttrOr("book", "0") == "1",
		AdvanceReservationPeriod: row.AttrOr("ar", "0"),
		StartDate:                row.AttrOr("sd", ""),
		EndDate:                  row.AttrOr("ed", ""),

		BookingClasses: extractBookingClasses(row),
		Notices:        extractNotices(row),

		HasPantry:    row.Find("i.icon-food").Length() > 0,
		IsLimitedRun: row.Find("i.icon-date").Length() > 0,
	}, nil
}

// Booking classes are rendered as links inside the row's flexRow container,
// in the order the upstream publishes them.
func extractBookingClasses(row *goquery.Selection) []string {
	classes := []string{}

	row.Find("div.flexRow a.cavlink").Each(func(index int, link *goquery.Selection) {
		classes = append(classes, strings.TrimSpace(link.Text()))
	})

	return classes
}

// Notices live in tooltip attributes on info icons. The tooltip value can
// contain markup and escaped quotes, which get stripped back to plain text.
func extractNotices(row *goquery.Selection) []string {
	notices := []string{}

	row.Find("i.icon-info-circled").Each(func(index int, icon *goquery.Selection) {
		tooltip, exists := icon.Attr("etitle")
		if !exists {
			return
		}

		notice := htmlTagRegex.ReplaceAllString(tooltip, "")
		notice = strings.ReplaceAll(notice, "&quot;", `"`)

		notices = append(notices, notice)
	})

	return notices
}
