// Package billing derives the billable amount of a session from the parent
// booking's tutor rate, term length, and lesson cadence. All arithmetic is
// fixed-point decimal.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/codetutors/tutorhub/internal/model"
)

var (
	minutesPerHour    = decimal.NewFromInt(60)
	defaultMultiplier = decimal.NewFromInt(1)
)

// Calculator holds the term and cadence lookup tables. They are injected so
// tests can swap them; DefaultTermWeeks/DefaultMultipliers are the production
// values.
type Calculator struct {
	termWeeks   map[model.Term]decimal.Decimal
	multipliers map[model.LessonType]decimal.Decimal
}

// DefaultTermWeeks returns teaching weeks per term.
func DefaultTermWeeks() map[model.Term]decimal.Decimal {
	return map[model.Term]decimal.Decimal{
		model.Term1: decimal.NewFromInt(14),
		model.Term2: decimal.NewFromInt(11),
		model.Term3: decimal.NewFromInt(11),
	}
}

// DefaultMultipliers returns the billing multiplier per lesson cadence.
func DefaultMultipliers() map[model.LessonType]decimal.Decimal {
	return map[model.LessonType]decimal.Decimal{
		model.LessonWeekly:    decimal.NewFromInt(1),
		model.LessonBiWeekly:  decimal.NewFromInt(2),
		model.LessonFortnight: decimal.RequireFromString("0.5"),
	}
}

func NewCalculator() *Calculator {
	return NewCalculatorWithTables(DefaultTermWeeks(), DefaultMultipliers())
}

func NewCalculatorWithTables(termWeeks map[model.Term]decimal.Decimal, multipliers map[model.LessonType]decimal.Decimal) *Calculator {
	return &Calculator{termWeeks: termWeeks, multipliers: multipliers}
}

// Amount computes rate * durationHours * weeks * multiplier.
//
// An unknown term yields zero weeks and therefore a zero amount; an unknown
// lesson type falls back to multiplier 1. A non-positive stored duration
// falls back to one hour rather than failing.
func (c *Calculator) Amount(rate decimal.Decimal, term model.Term, lessonType model.LessonType, durationMinutes int) decimal.Decimal {
	if durationMinutes <= 0 {
		durationMinutes = model.DefaultDurationMinutes
	}
	hours := decimal.NewFromInt(int64(durationMinutes)).Div(minutesPerHour)

	weeks := c.termWeeks[term] // map miss is the decimal zero value

	multiplier, ok := c.multipliers[lessonType]
	if !ok {
		multiplier = defaultMultiplier
	}

	return rate.Mul(hours).Mul(weeks).Mul(multiplier)
}

// SessionAmount is Amount for a session whose parent booking and tutor are
// loaded.
func (c *Calculator) SessionAmount(booking *model.Booking, session *model.Session) decimal.Decimal {
	if booking == nil || booking.Tutor == nil {
		return decimal.Zero
	}
	return c.Amount(booking.Tutor.Rate, booking.Term, booking.LessonType, session.DurationMinutes)
}
