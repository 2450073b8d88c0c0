package model

import "time"

type Venue string

const (
	VenueBushHouse Venue = "Bush House"
	VenueWaterloo  Venue = "Waterloo Campus"
)

func (v Venue) Valid() bool {
	return v == VenueBushHouse || v == VenueWaterloo
}

// DefaultDurationMinutes applies when a session is created without an
// explicit duration.
const DefaultDurationMinutes = 60

// Session is one scheduled meeting under a booking. No two sessions of the
// same booking may share (session_date, session_time), and their time
// intervals may not overlap.
type Session struct {
	ID              int64         `json:"id"`
	BookingID       int64         `json:"booking_id"`
	SessionDate     time.Time     `json:"session_date"`
	SessionTime     TimeOfDay     `json:"session_time"`
	DurationMinutes int           `json:"duration_minutes"`
	Venue           Venue         `json:"venue"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`

	Booking *Booking `json:"booking,omitempty"`
}

// Start combines the session's date and time into one instant.
func (s *Session) Start() time.Time {
	d := s.SessionDate
	return time.Date(d.Year(), d.Month(), d.Day(),
		s.SessionTime.Hour(), s.SessionTime.Minute(), s.SessionTime.Second(), 0, time.UTC)
}

// End is Start plus the duration. Intervals are half-open: a session ending
// exactly when another starts does not overlap it.
func (s *Session) End() time.Time {
	return s.Start().Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// Overlaps reports whether two sessions' intervals intersect:
// max(startA, startB) < min(endA, endB).
func (s *Session) Overlaps(other *Session) bool {
	start, otherStart := s.Start(), other.Start()
	end, otherEnd := s.End(), other.End()

	latestStart := start
	if otherStart.After(latestStart) {
		latestStart = otherStart
	}
	earliestEnd := end
	if otherEnd.Before(earliestEnd) {
		earliestEnd = otherEnd
	}
	return latestStart.Before(earliestEnd)
}

// SameDateTime reports whether two sessions share the exact date and time.
func (s *Session) SameDateTime(other *Session) bool {
	return s.Start().Equal(other.Start())
}
