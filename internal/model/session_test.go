package model

import (
	"testing"
	"time"
)

func session(t *testing.T, date, clock string, minutes int) *Session {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	tod, err := ParseTimeOfDay(clock)
	if err != nil {
		t.Fatalf("parse time %q: %v", clock, err)
	}
	return &Session{SessionDate: day, SessionTime: tod, DurationMinutes: minutes}
}

func TestSessionStartEnd(t *testing.T) {
	s := session(t, "2026-03-11", "10:30", 90)

	wantStart := time.Date(2026, time.March, 11, 10, 30, 0, 0, time.UTC)
	if !s.Start().Equal(wantStart) {
		t.Errorf("Start() = %v; want %v", s.Start(), wantStart)
	}

	wantEnd := wantStart.Add(90 * time.Minute)
	if !s.End().Equal(wantEnd) {
		t.Errorf("End() = %v; want %v", s.End(), wantEnd)
	}
}

func TestSessionOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    *Session
		b    *Session
		want bool
	}{
		{
			name: "identical intervals",
			a:    session(t, "2026-03-11", "10:00", 60),
			b:    session(t, "2026-03-11", "10:00", 60),
			want: true,
		},
		{
			name: "partial overlap",
			a:    session(t, "2026-03-11", "10:00", 60),
			b:    session(t, "2026-03-11", "10:30", 60),
			want: true,
		},
		{
			name: "containment",
			a:    session(t, "2026-03-11", "09:00", 240),
			b:    session(t, "2026-03-11", "10:00", 30),
			want: true,
		},
		{
			name: "back to back",
			a:    session(t, "2026-03-11", "10:00", 60),
			b:    session(t, "2026-03-11", "11:00", 60),
			want: false,
		},
		{
			name: "different days",
			a:    session(t, "2026-03-11", "10:00", 60),
			b:    session(t, "2026-03-12", "10:00", 60),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v; want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestSessionSameDateTime(t *testing.T) {
	a := session(t, "2026-03-11", "10:00", 60)
	b := session(t, "2026-03-11", "10:00", 30)
	c := session(t, "2026-03-11", "10:01", 60)

	if !a.SameDateTime(b) {
		t.Error("sessions with equal date and time should match regardless of duration")
	}
	if a.SameDateTime(c) {
		t.Error("sessions one minute apart should not match")
	}
}
