package entity

import "time"

// CalendarEvent is an upcoming public event read from the organisation calendar.
type CalendarEvent struct {
	ID          string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Link        string
}
