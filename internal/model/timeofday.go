package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date, matching a Postgres TIME
// column. The embedded time.Time always sits on the zero date in UTC.
type TimeOfDay struct{ time.Time }

func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var tod TimeOfDay
	return tod, tod.parse(s)
}

func (t *TimeOfDay) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = TimeOfDayFrom(x)
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("timeofday: unsupported Scan type %T", v)
	}
}

func (t *TimeOfDay) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t TimeOfDay) String() string {
	return t.Format("15:04:05")
}

// SinceMidnight returns the offset from the start of the day.
func (t TimeOfDay) SinceMidnight() time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
