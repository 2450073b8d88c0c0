package service

import (
	"context"
	"testing"
	"time"

	"github.com/codetutors/tutorhub/internal/model"
)

// fakeNeighborhood is an in-memory SessionNeighborhood for one booking.
type fakeNeighborhood struct {
	booking  *model.Booking
	siblings []*model.Session
}

func (n *fakeNeighborhood) GetBooking(_ context.Context, id int64) (*model.Booking, error) {
	if n.booking != nil && n.booking.ID == id {
		return n.booking, nil
	}
	return nil, nil
}

func (n *fakeNeighborhood) Siblings(_ context.Context, bookingID, excludeID int64) ([]*model.Session, error) {
	var out []*model.Session
	for _, s := range n.siblings {
		if s.BookingID == bookingID && s.ID != excludeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func mustTimeOfDay(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	tod, err := model.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse time of day %q: %v", s, err)
	}
	return tod
}

func newSession(t *testing.T, id int64, date, clock string, minutes int) *model.Session {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	return &model.Session{
		ID:              id,
		BookingID:       1,
		SessionDate:     day,
		SessionTime:     mustTimeOfDay(t, clock),
		DurationMinutes: minutes,
	}
}

func TestValidateSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		session   *model.Session
		siblings  []*model.Session
		excludeID int64
		wantCode  model.ErrorCode
		wantField string
	}{
		{
			name:    "valid session",
			session: newSession(t, 0, "2026-03-11", "10:00", 60),
		},
		{
			name:    "today is allowed even after midnight",
			session: newSession(t, 0, "2026-03-10", "09:00", 60),
		},
		{
			name:      "past date",
			session:   newSession(t, 0, "2026-03-09", "10:00", 60),
			wantCode:  model.CodePastDate,
			wantField: "session_date",
		},
		{
			name:      "zero duration",
			session:   newSession(t, 0, "2026-03-11", "10:00", 0),
			wantCode:  model.CodeNonPositiveDuration,
			wantField: "duration_minutes",
		},
		{
			name:      "negative duration",
			session:   newSession(t, 0, "2026-03-11", "10:00", -15),
			wantCode:  model.CodeNonPositiveDuration,
			wantField: "duration_minutes",
		},
		{
			name:     "duplicate date and time",
			session:  newSession(t, 0, "2026-03-11", "10:00", 30),
			siblings: []*model.Session{newSession(t, 5, "2026-03-11", "10:00", 60)},
			wantCode: model.CodeDuplicateDateTime,
		},
		{
			name:     "overlap with running session",
			session:  newSession(t, 0, "2026-03-11", "10:30", 60),
			siblings: []*model.Session{newSession(t, 5, "2026-03-11", "10:00", 60)},
			wantCode: model.CodeOverlappingSession,
		},
		{
			name:     "overlap where new session starts first",
			session:  newSession(t, 0, "2026-03-11", "09:30", 60),
			siblings: []*model.Session{newSession(t, 5, "2026-03-11", "10:00", 60)},
			wantCode: model.CodeOverlappingSession,
		},
		{
			name:     "new session swallows a sibling",
			session:  newSession(t, 0, "2026-03-11", "09:00", 240),
			siblings: []*model.Session{newSession(t, 5, "2026-03-11", "10:00", 60)},
			wantCode: model.CodeOverlappingSession,
		},
		{
			name:     "back to back sessions do not overlap",
			session:  newSession(t, 0, "2026-03-11", "11:00", 60),
			siblings: []*model.Session{newSession(t, 5, "2026-03-11", "10:00", 60)},
		},
		{
			name:     "ends exactly when a sibling starts",
			session:  newSession(t, 0, "2026-03-11", "09:00", 60),
			siblings: []*model.Session{newSession(t, 5, "2026-03-11", "10:00", 60)},
		},
		{
			name:     "same time on another date",
			session:  newSession(t, 0, "2026-03-12", "10:00", 60),
			siblings: []*model.Session{newSession(t, 5, "2026-03-11", "10:00", 60)},
		},
		{
			name:      "update skips its own row",
			session:   newSession(t, 5, "2026-03-11", "10:00", 90),
			siblings:  []*model.Session{newSession(t, 5, "2026-03-11", "10:00", 60)},
			excludeID: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hood := &fakeNeighborhood{
				booking:  &model.Booking{ID: 1, Term: model.Term1, LessonType: model.LessonWeekly},
				siblings: tt.siblings,
			}

			err := ValidateSession(ctx, hood, tt.session, tt.excludeID, now)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateSession() = %v; want nil", err)
				}
				return
			}

			fe, ok := model.AsFieldError(err)
			if !ok {
				t.Fatalf("ValidateSession() = %v; want FieldError", err)
			}
			if fe.Code != tt.wantCode {
				t.Errorf("code = %s; want %s", fe.Code, tt.wantCode)
			}
			if fe.Field != tt.wantField {
				t.Errorf("field = %q; want %q", fe.Field, tt.wantField)
			}
		})
	}
}

func TestValidateSessionWithoutBooking(t *testing.T) {
	hood := &fakeNeighborhood{}
	session := newSession(t, 0, "2026-03-11", "10:00", 60)
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	err := ValidateSession(context.Background(), hood, session, 0, now)

	fe, ok := model.AsFieldError(err)
	if !ok || fe.Code != model.CodeNoBooking {
		t.Fatalf("ValidateSession() = %v; want no_booking", err)
	}
}

func TestValidateSessionDuplicateBeatsOverlap(t *testing.T) {
	// The sibling list has an overlapping session first and an exact match
	// second; the exact match must still be reported as a duplicate.
	hood := &fakeNeighborhood{
		booking: &model.Booking{ID: 1},
		siblings: []*model.Session{
			newSession(t, 5, "2026-03-11", "09:30", 60),
			newSession(t, 6, "2026-03-11", "10:00", 60),
		},
	}
	session := newSession(t, 0, "2026-03-11", "10:00", 60)
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	err := ValidateSession(context.Background(), hood, session, 0, now)

	fe, ok := model.AsFieldError(err)
	if !ok {
		t.Fatalf("ValidateSession() = %v; want FieldError", err)
	}
	if fe.Code != model.CodeDuplicateDateTime {
		t.Errorf("code = %s; want %s", fe.Code, model.CodeDuplicateDateTime)
	}
}
