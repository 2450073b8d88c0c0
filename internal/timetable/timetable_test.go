package timetable

import (
	"testing"
	"time"

	"github.com/codetutors/tutorhub/internal/model"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			in:   time.Date(2026, time.March, 9, 13, 45, 0, 0, time.UTC),
			want: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "wednesday maps back to monday",
			in:   time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2026, time.March, 15, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	weekStart := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	tod, err := model.ParseTimeOfDay("10:00")
	if err != nil {
		t.Fatal(err)
	}
	sessions := []*model.Session{
		{
			SessionDate:     time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
			SessionTime:     tod,
			DurationMinutes: 60,
			Venue:           model.VenueBushHouse,
			PaymentStatus:   model.PaymentPending,
		},
		// Outside the rendered week; must be skipped, not panic.
		{
			SessionDate:     time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
			SessionTime:     tod,
			DurationMinutes: 60,
			Venue:           model.VenueWaterloo,
			PaymentStatus:   model.PaymentSuccessful,
		},
	}

	img := Render(weekStart, sessions)
	if img == nil {
		t.Fatal("Render() returned nil image")
	}

	bounds := img.Bounds()
	if bounds.Dx() != imageWidth || bounds.Dy() != imageHeight {
		t.Errorf("image size = %dx%d; want %dx%d", bounds.Dx(), bounds.Dy(), imageWidth, imageHeight)
	}
}

func TestRenderEmptyWeek(t *testing.T) {
	weekStart := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	img := Render(weekStart, nil)
	if img == nil {
		t.Fatal("Render() returned nil image")
	}
}
