package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/codetutors/tutorhub/internal/model"
)

func TestSessionFilter(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantVenue    *model.Venue
		wantPayment  *model.PaymentStatus
		wantFurthest bool
		wantErr      bool
	}{
		{
			name: "no filters",
			url:  "/api/v1/bookings/1/sessions",
		},
		{
			name:      "venue filter",
			url:       "/api/v1/bookings/1/sessions?venue=Bush+House",
			wantVenue: venuePtr(model.VenueBushHouse),
		},
		{
			name:        "payment filter",
			url:         "/api/v1/bookings/1/sessions?payment_status=Pending",
			wantPayment: paymentPtr(model.PaymentPending),
		},
		{
			name:         "furthest sort",
			url:          "/api/v1/bookings/1/sessions?sort=furthest",
			wantFurthest: true,
		},
		{
			name: "closest sort is the default",
			url:  "/api/v1/bookings/1/sessions?sort=closest",
		},
		{
			name:    "unknown venue",
			url:     "/api/v1/bookings/1/sessions?venue=Moon+Base",
			wantErr: true,
		},
		{
			name:    "unknown payment status",
			url:     "/api/v1/bookings/1/sessions?payment_status=Overdue",
			wantErr: true,
		},
		{
			name:    "unknown sort",
			url:     "/api/v1/bookings/1/sessions?sort=random",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)

			filter, err := sessionFilter(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("sessionFilter() = nil error; want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("sessionFilter() error: %v", err)
			}

			if (filter.Venue == nil) != (tt.wantVenue == nil) ||
				(filter.Venue != nil && *filter.Venue != *tt.wantVenue) {
				t.Errorf("venue = %v; want %v", filter.Venue, tt.wantVenue)
			}
			if (filter.PaymentStatus == nil) != (tt.wantPayment == nil) ||
				(filter.PaymentStatus != nil && *filter.PaymentStatus != *tt.wantPayment) {
				t.Errorf("payment status = %v; want %v", filter.PaymentStatus, tt.wantPayment)
			}
			if filter.SortFurthest != tt.wantFurthest {
				t.Errorf("SortFurthest = %v; want %v", filter.SortFurthest, tt.wantFurthest)
			}
		})
	}
}

func TestSessionRequestDuration(t *testing.T) {
	zero := 0
	ninety := 90

	tests := []struct {
		name     string
		duration *int
		want     int
	}{
		{
			name: "absent duration defaults to an hour",
			want: model.DefaultDurationMinutes,
		},
		{
			name:     "explicit zero stays zero for validation to reject",
			duration: &zero,
			want:     0,
		},
		{
			name:     "explicit duration is kept",
			duration: &ninety,
			want:     90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sessionRequest{SessionDate: "2026-03-11", DurationMinutes: tt.duration}

			session, err := req.toModel(0, 1)
			if err != nil {
				t.Fatalf("toModel() error: %v", err)
			}
			if session.DurationMinutes != tt.want {
				t.Errorf("DurationMinutes = %d; want %d", session.DurationMinutes, tt.want)
			}
		})
	}
}

func TestSessionRequestRejectsBadDate(t *testing.T) {
	req := sessionRequest{SessionDate: "11-03-2026"}
	if _, err := req.toModel(0, 1); err == nil {
		t.Error("toModel() should reject a non YYYY-MM-DD date")
	}
}

func TestWeekParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/bookings/1/sessions/timetable?week=2026-03-11", nil)

	got, err := weekParam(r)
	if err != nil {
		t.Fatalf("weekParam() error: %v", err)
	}
	want := "2026-03-09" // the Monday of that week
	if got.Format("2006-01-02") != want {
		t.Errorf("weekParam() = %s; want %s", got.Format("2006-01-02"), want)
	}

	bad := httptest.NewRequest("GET", "/api/v1/bookings/1/sessions/timetable?week=11-03-2026", nil)
	if _, err := weekParam(bad); err == nil {
		t.Error("weekParam() should reject malformed dates")
	}
}

func venuePtr(v model.Venue) *model.Venue { return &v }

func paymentPtr(p model.PaymentStatus) *model.PaymentStatus { return &p }
