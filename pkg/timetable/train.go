package timetable

// TrainRecord is one scheduled service between the queried station pair on the
// queried date. Scalars come straight from the upstream per-train data blob,
// the remaining fields from sibling markup on the same row.
type TrainRecord struct {
	TrainNumber string `json:"train_number"`
	TrainName   string `json:"train_name"`
	TrainType   string `json:"train_type"`

	Source      string `json:"source"`
	Destination string `json:"destination"`

	// Date-less local clock times as published, HH:MM
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Duration      string `json:"duration"`

	BookingAvailable         bool     `json:"booking_available"`
	AdvanceReservationPeriod string   `json:"advance_reservation_period"`
	BookingClasses           []string `json:"booking_classes"`

	// Validity window, empty means no restriction
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	Notices      []string `json:"notices"`
	HasPantry    bool     `json:"has_pantry"`
	IsLimitedRun bool     `json:"is_limited_run"`

	// Next concrete occurrence of DepartureTime at or after the query instant.
	// Attached by the selection engine, zero until then.
	DepartureDateTime DateTime `json:"departure_datetime"`
}
