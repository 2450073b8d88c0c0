package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/codetutors/tutorhub/internal/model"
)

func TestCalculatorAmount(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name            string
		rate            string
		term            model.Term
		lessonType      model.LessonType
		durationMinutes int
		want            string
	}{
		{
			name:            "weekly term one",
			rate:            "20.00",
			term:            model.Term1,
			lessonType:      model.LessonWeekly,
			durationMinutes: 60,
			want:            "280.00",
		},
		{
			name:            "bi-weekly term two double session",
			rate:            "30.00",
			term:            model.Term2,
			lessonType:      model.LessonBiWeekly,
			durationMinutes: 120,
			want:            "1320.00",
		},
		{
			name:            "fortnight halves the weekly total",
			rate:            "10.00",
			term:            model.Term3,
			lessonType:      model.LessonFortnight,
			durationMinutes: 60,
			want:            "55.00",
		},
		{
			name:            "ninety minutes bills one and a half hours",
			rate:            "20.00",
			term:            model.Term2,
			lessonType:      model.LessonWeekly,
			durationMinutes: 90,
			want:            "330.00",
		},
		{
			name:            "zero duration falls back to one hour",
			rate:            "20.00",
			term:            model.Term1,
			lessonType:      model.LessonWeekly,
			durationMinutes: 0,
			want:            "280.00",
		},
		{
			name:            "negative duration falls back to one hour",
			rate:            "20.00",
			term:            model.Term1,
			lessonType:      model.LessonWeekly,
			durationMinutes: -30,
			want:            "280.00",
		},
		{
			name:            "unknown term yields zero",
			rate:            "20.00",
			term:            model.Term("Term9"),
			lessonType:      model.LessonWeekly,
			durationMinutes: 60,
			want:            "0.00",
		},
		{
			name:            "unknown lesson type uses multiplier one",
			rate:            "20.00",
			term:            model.Term1,
			lessonType:      model.LessonType("Daily"),
			durationMinutes: 60,
			want:            "280.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.rate)
			got := calc.Amount(rate, tt.term, tt.lessonType, tt.durationMinutes)

			if got.StringFixed(2) != tt.want {
				t.Errorf("Amount() = %s; want %s", got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestCalculatorAmountIsPure(t *testing.T) {
	calc := NewCalculator()
	rate := decimal.RequireFromString("33.50")

	first := calc.Amount(rate, model.Term1, model.LessonWeekly, 60)
	second := calc.Amount(rate, model.Term1, model.LessonWeekly, 60)

	if !first.Equal(second) {
		t.Errorf("repeated Amount() differs: %s vs %s", first, second)
	}
}

func TestSessionAmount(t *testing.T) {
	calc := NewCalculator()

	booking := &model.Booking{
		Term:       model.Term1,
		LessonType: model.LessonWeekly,
		Tutor:      &model.Tutor{Rate: decimal.RequireFromString("20.00")},
	}
	session := &model.Session{DurationMinutes: 60}

	got := calc.SessionAmount(booking, session)
	if got.StringFixed(2) != "280.00" {
		t.Errorf("SessionAmount() = %s; want 280.00", got.StringFixed(2))
	}
}

func TestSessionAmountMissingTutor(t *testing.T) {
	calc := NewCalculator()
	session := &model.Session{DurationMinutes: 60}

	if got := calc.SessionAmount(nil, session); !got.IsZero() {
		t.Errorf("SessionAmount(nil booking) = %s; want 0", got)
	}
	if got := calc.SessionAmount(&model.Booking{}, session); !got.IsZero() {
		t.Errorf("SessionAmount(booking without tutor) = %s; want 0", got)
	}
}
