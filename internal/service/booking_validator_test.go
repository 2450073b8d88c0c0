package service

import (
	"context"
	"errors"
	"testing"

	"github.com/codetutors/tutorhub/internal/model"
)

// fakeDirectory is an in-memory BookingDirectory.
type fakeDirectory struct {
	students map[int64]*model.Student
	tutors   map[int64]*model.Tutor
	existing []*model.Booking
}

func (d *fakeDirectory) GetStudent(_ context.Context, id int64) (*model.Student, error) {
	return d.students[id], nil
}

func (d *fakeDirectory) GetTutor(_ context.Context, id int64) (*model.Tutor, error) {
	return d.tutors[id], nil
}

func (d *fakeDirectory) BookingExists(_ context.Context, term model.Term, lessonType model.LessonType, studentID, tutorID, excludeID int64) (bool, error) {
	for _, b := range d.existing {
		if b.ID == excludeID {
			continue
		}
		if b.Term == term && b.LessonType == lessonType && b.StudentID == studentID && b.TutorID == tutorID {
			return true, nil
		}
	}
	return false, nil
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		students: map[int64]*model.Student{
			1: {ID: 1, UserID: 10, Name: "Ada Lovelace"},
		},
		tutors: map[int64]*model.Tutor{
			2: {ID: 2, UserID: 20, Name: "Charles Babbage"},
			3: {ID: 3, UserID: 10, Name: "Ada Lovelace"}, // same user as student 1
		},
	}
}

func TestValidateBooking(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		term       model.Term
		lessonType model.LessonType
		studentID  int64
		tutorID    int64
		excludeID  int64
		existing   []*model.Booking
		wantCode   model.ErrorCode
		wantField  string
	}{
		{
			name:       "valid booking",
			term:       model.Term1,
			lessonType: model.LessonWeekly,
			studentID:  1,
			tutorID:    2,
		},
		{
			name:       "invalid term",
			term:       model.Term("Term4"),
			lessonType: model.LessonWeekly,
			studentID:  1,
			tutorID:    2,
			wantCode:   model.CodeInvalidChoice,
			wantField:  "term",
		},
		{
			name:       "invalid lesson type",
			term:       model.Term1,
			lessonType: model.LessonType("Monthly"),
			studentID:  1,
			tutorID:    2,
			wantCode:   model.CodeInvalidChoice,
			wantField:  "lesson_type",
		},
		{
			name:       "missing student",
			term:       model.Term1,
			lessonType: model.LessonWeekly,
			studentID:  0,
			tutorID:    2,
			wantCode:   model.CodeMissingParty,
		},
		{
			name:       "missing tutor",
			term:       model.Term1,
			lessonType: model.LessonWeekly,
			studentID:  1,
			tutorID:    0,
			wantCode:   model.CodeMissingParty,
		},
		{
			name:       "unknown student",
			term:       model.Term1,
			lessonType: model.LessonWeekly,
			studentID:  99,
			tutorID:    2,
			wantCode:   model.CodeUnknownParty,
			wantField:  "student_id",
		},
		{
			name:       "unknown tutor",
			term:       model.Term1,
			lessonType: model.LessonWeekly,
			studentID:  1,
			tutorID:    99,
			wantCode:   model.CodeUnknownParty,
			wantField:  "tutor_id",
		},
		{
			name:       "student booking themselves",
			term:       model.Term1,
			lessonType: model.LessonWeekly,
			studentID:  1,
			tutorID:    3,
			wantCode:   model.CodeSelfBooking,
		},
		{
			name:       "duplicate booking",
			term:       model.Term1,
			lessonType: model.LessonWeekly,
			studentID:  1,
			tutorID:    2,
			existing: []*model.Booking{
				{ID: 7, Term: model.Term1, LessonType: model.LessonWeekly, StudentID: 1, TutorID: 2},
			},
			wantCode: model.CodeDuplicateBooking,
		},
		{
			name:       "update does not collide with itself",
			term:       model.Term1,
			lessonType: model.LessonWeekly,
			studentID:  1,
			tutorID:    2,
			excludeID:  7,
			existing: []*model.Booking{
				{ID: 7, Term: model.Term1, LessonType: model.LessonWeekly, StudentID: 1, TutorID: 2},
			},
		},
		{
			name:       "same parties in a different term",
			term:       model.Term2,
			lessonType: model.LessonWeekly,
			studentID:  1,
			tutorID:    2,
			existing: []*model.Booking{
				{ID: 7, Term: model.Term1, LessonType: model.LessonWeekly, StudentID: 1, TutorID: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newFakeDirectory()
			dir.existing = tt.existing

			err := ValidateBooking(ctx, dir, tt.term, tt.lessonType, tt.studentID, tt.tutorID, tt.excludeID)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateBooking() = %v; want nil", err)
				}
				return
			}

			fe, ok := model.AsFieldError(err)
			if !ok {
				t.Fatalf("ValidateBooking() = %v; want FieldError", err)
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

func TestValidateBookingChecksChoicesFirst(t *testing.T) {
	// Both term and parties are bad; the term error must win.
	dir := newFakeDirectory()

	err := ValidateBooking(context.Background(), dir, model.Term("nope"), model.LessonWeekly, 0, 0, 0)

	fe, ok := model.AsFieldError(err)
	if !ok || fe.Code != model.CodeInvalidChoice || fe.Field != "term" {
		t.Fatalf("ValidateBooking() = %v; want term invalid_choice", err)
	}
}

func TestValidateBookingStorageError(t *testing.T) {
	dir := &failingDirectory{err: errors.New("connection reset")}

	err := ValidateBooking(context.Background(), dir, model.Term1, model.LessonWeekly, 1, 2, 0)
	if err == nil {
		t.Fatal("ValidateBooking() = nil; want wrapped storage error")
	}
	if _, ok := model.AsFieldError(err); ok {
		t.Fatalf("ValidateBooking() = %v; storage errors must not be field errors", err)
	}
}

type failingDirectory struct{ err error }

func (d *failingDirectory) GetStudent(context.Context, int64) (*model.Student, error) {
	return nil, d.err
}

func (d *failingDirectory) GetTutor(context.Context, int64) (*model.Tutor, error) {
	return nil, d.err
}

func (d *failingDirectory) BookingExists(context.Context, model.Term, model.LessonType, int64, int64, int64) (bool, error) {
	return false, d.err
}
