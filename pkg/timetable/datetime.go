package timetable

import (
	"fmt"
	"strings"
	"time"
)

const DateTimeFormat = "2006-01-02 15:04:05"

// DateTime wraps time.Time so that departure datetimes serialize in the
// transport form "YYYY-MM-DD HH:MM:SS" instead of RFC3339. Round-tripping
// preserves the wall-clock instant.
type DateTime struct {
	time.Time
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}

	return []byte(fmt.Sprintf("%q", d.Format(DateTimeFormat))), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)

	if value == "" || value == "null" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(DateTimeFormat, value)
	if err != nil {
		return err
	}

	d.Time = parsed
	return nil
}
