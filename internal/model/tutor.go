package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSubjectName is attached to any tutor saved without subjects.
const DefaultSubjectName = "Python"

// DefaultRate applies when a tutor is created without an explicit rate.
var DefaultRate = decimal.RequireFromString("10.00")

// MaxRate is the exclusive upper bound for an hourly rate.
var MaxRate = decimal.NewFromInt(10000)

type Tutor struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Rate   decimal.Decimal `json:"rate"`

	Subjects []Subject `json:"subjects,omitempty"`
	User     *User     `json:"user,omitempty"`
}

func (t *Tutor) NormalizeEmail() {
	t.Email = strings.ToLower(t.Email)
}

// ValidRate reports whether rate is positive and below the upper bound.
func ValidRate(rate decimal.Decimal) bool {
	return rate.IsPositive() && rate.LessThan(MaxRate)
}

type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
