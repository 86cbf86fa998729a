package etrain

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseTestDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()

	document, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse test document: %v", err)
	}

	return document
}

const scheduleRowHTML = `
<html><body><table>
<tr data-train='{"num":"12341","name":"Coalfield Express","typ":"Express","s":"Howrah Jn","st":"17:30","d":"Chittaranjan","dt":"20:32","tt":"03h 02m"}' book="1" ar="120" sd="2025-05-01" ed="2025-12-31">
  <td>
    <div class="flexRow">
      <a class="cavlink"> CC </a>
      <a class="cavlink">2S</a>
    </div>
    <i class="icon-info-circled" etitle="Runs with &quot;LHB&quot; <b>rake</b>"></i>
    <i class="icon-food"></i>
  </td>
</tr>
</table></body></html>`

func TestExtractTrainsDecodesRow(t *testing.T) {
	document := parseTestDocument(t, scheduleRowHTML)

	trains, err := ExtractTrains(document)
	if err != nil {
		t.Fatalf("ExtractTrains error: %v", err)
	}

	if len(trains) != 1 {
		t.Fatalf("extracted %d trains, expected 1", len(trains))
	}

	train := trains[0]

	if train.TrainNumber != "12341" {
		t.Errorf("TrainNumber = %q", train.TrainNumber)
	}
	if train.TrainName != "Coalfield Express" {
		t.Errorf("TrainName = %q", train.TrainName)
	}
	if train.TrainType != "Express" {
		t.Errorf("TrainType = %q", train.TrainType)
	}
	if train.Source != "Howrah Jn" || train.Destination != "Chittaranjan" {
		t.Errorf("endpoints = %q -> %q", train.Source, train.Destination)
	}
	if train.DepartureTime != "17:30" || train.ArrivalTime != "20:32" {
		t.Errorf("times = %q -> %q", train.DepartureTime, train.ArrivalTime)
	}
	if train.Duration != "03h 02m" {
		t.Errorf("Duration = %q", train.Duration)
	}

	if !train.BookingAvailable {
		t.Error("BookingAvailable = false, expected true")
	}
	if train.AdvanceReservationPeriod != "120" {
		t.Errorf("AdvanceReservationPeriod = %q", train.AdvanceReservationPeriod)
	}
	if train.StartDate != "2025-05-01" || train.EndDate != "2025-12-31" {
		t.Errorf("validity window = %q -> %q", train.StartDate, train.EndDate)
	}

	if len(train.BookingClasses) != 2 || train.BookingClasses[0] != "CC" || train.BookingClasses[1] != "2S" {
		t.Errorf("BookingClasses = %v", train.BookingClasses)
	}

	if len(train.Notices) != 1 || train.Notices[0] != `Runs with "LHB" rake` {
		t.Errorf("Notices = %v", train.Notices)
	}

	if !train.HasPantry {
		t.Error("HasPantry = false, expected true")
	}
	if train.IsLimitedRun {
		t.Error("IsLimitedRun = true, expected false")
	}
}

func TestExtractTrainsSkipsMalformedRows(t *testing.T) {
	html := `
<html><body><table>
<tr data-train='{"num":"1"}'><td></td></tr>
<tr data-train='not valid json'><td></td></tr>
<tr data-train='{"num":"2"}'><td></td></tr>
</table></body></html>`

	trains, err := ExtractTrains(parseTestDocument(t, html))
	if err != nil {
		t.Fatalf("ExtractTrains error: %v", err)
	}

	if len(trains) != 2 {
		t.Fatalf("extracted %d trains, expected 2", len(trains))
	}

	if trains[0].TrainNumber != "1" || trains[1].TrainNumber != "2" {
		t.Errorf("train numbers = %q, %q", trains[0].TrainNumber, trains[1].TrainNumber)
	}
}

func TestExtractTrainsMissingKeysDefaultEmpty(t *testing.T) {
	html := `<html><body><table><tr data-train='{"num":"12341"}'><td></td></tr></table></body></html>`

	trains, err := ExtractTrains(parseTestDocument(t, html))
	if err != nil {
		t.Fatalf("ExtractTrains error: %v", err)
	}

	train := trains[0]

	if train.TrainName != "" || train.TrainType != "" || train.DepartureTime != "" {
		t.Errorf("expected empty defaults, got name=%q type=%q departure=%q", train.TrainName, train.TrainType, train.DepartureTime)
	}
	if train.BookingAvailable {
		t.Error("BookingAvailable = true with no book attribute")
	}
	if train.AdvanceReservationPeriod != "0" {
		t.Errorf("AdvanceReservationPeriod = %q, expected default 0", train.AdvanceReservationPeriod)
	}
	if len(train.BookingClasses) != 0 {
		t.Errorf("BookingClasses = %v, expected none", train.BookingClasses)
	}
}

func TestExtractTrainsNoRows(t *testing.T) {
	html := `<html><body><p>Some unrelated page</p></body></html>`

	trains, err := ExtractTrains(parseTestDocument(t, html))
	if err != nil {
		t.Fatalf("ExtractTrains error: %v", err)
	}

	if len(trains) != 0 {
		t.Fatalf("extracted %d trains from rowless page", len(trains))
	}
}

func TestExtractTrainsUpstreamRejection(t *testing.T) {
	html := `<html><body><div class="errormsg">Invalid station selected</div></body></html>`

	_, err := ExtractTrains(parseTestDocument(t, html))

	if !errors.Is(err, ErrStationsRejected) {
		t.Fatalf("err = %v, expected ErrStationsRejected", err)
	}
}
