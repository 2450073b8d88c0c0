package service

import (
	"context"
	"fmt"
	"time"

	"github.com/codetutors/tutorhub/internal/model"
)

// SessionNeighborhood is what session validation needs from storage:
// resolving the parent booking and listing its other sessions.
type SessionNeighborhood interface {
	GetBooking(ctx context.Context, id int64) (*model.Booking, error)
	Siblings(ctx context.Context, bookingID, excludeID int64) ([]*model.Session, error)
}

// ValidateSession checks a session's date, time, and duration against all
// sibling sessions of the same booking. Intervals are half-open, so a
// session ending exactly when another starts is fine. excludeID is the
// session's own id during updates, zero otherwise. now supplies "today" for
// the past-date check.
func ValidateSession(ctx context.Context, hood SessionNeighborhood, session *model.Session, excludeID int64, now time.Time) error {
	booking, err := hood.GetBooking(ctx, session.BookingID)
	if err != nil {
		return fmt.Errorf("look up booking: %w", err)
	}
	if booking == nil {
		return model.NewFieldError("booking_id", model.CodeNoBooking,
			"a valid booking is required to create a session")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	date := session.SessionDate
	sessionDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if sessionDay.Before(today) {
		return model.NewFieldError("session_date", model.CodePastDate,
			"session date cannot be in the past")
	}

	if session.DurationMinutes <= 0 {
		return model.NewFieldError("duration_minutes", model.CodeNonPositiveDuration,
			"session duration must be greater than zero")
	}

	siblings, err := hood.Siblings(ctx, session.BookingID, excludeID)
	if err != nil {
		return fmt.Errorf("get sibling sessions: %w", err)
	}

	// An exact (date, time) match is a special case of overlap and is
	// reported with the more specific error, regardless of sibling order.
	for _, sibling := range siblings {
		if session.SameDateTime(sibling) {
			return model.NewFieldError("", model.CodeDuplicateDateTime,
				"a session at the same date and time already exists for this booking")
		}
	}
	for _, sibling := range siblings {
		if session.Overlaps(sibling) {
			return model.NewFieldError("", model.CodeOverlappingSession,
				"this session overlaps with another session for the same booking")
		}
	}

	return nil
}
