package model

import "time"

type Term string

const (
	Term1 Term = "Term1"
	Term2 Term = "Term2"
	Term3 Term = "Term3"
)

func (t Term) Valid() bool {
	switch t {
	case Term1, Term2, Term3:
		return true
	}
	return false
}

type LessonType string

const (
	LessonFortnight LessonType = "Fortnight"
	LessonWeekly    LessonType = "Weekly"
	LessonBiWeekly  LessonType = "Bi-Weekly"
)

func (lt LessonType) Valid() bool {
	switch lt {
	case LessonFortnight, LessonWeekly, LessonBiWeekly:
		return true
	}
	return false
}

// Booking is an agreement between one student and one tutor for a term and
// lesson cadence. The tuple (term, lesson_type, student, tutor) is unique.
type Booking struct {
	ID         int64      `json:"id"`
	Term       Term       `json:"term"`
	LessonType LessonType `json:"lesson_type"`
	StudentID  int64      `json:"student_id"`
	TutorID    int64      `json:"tutor_id"`
	CreatedAt  time.Time  `json:"created_at"`

	Student *Student `json:"student,omitempty"`
	Tutor   *Tutor   `json:"tutor,omitempty"`
}
