package service

import (
	"context"
	"fmt"

	"github.com/codetutors/tutorhub/internal/model"
)

// BookingDirectory is what booking validation needs from storage: party
// lookup and the uniqueness check. Satisfied by the pgx repositories in
// production and by in-memory fakes in tests.
type BookingDirectory interface {
	GetStudent(ctx context.Context, id int64) (*model.Student, error)
	GetTutor(ctx context.Context, id int64) (*model.Tutor, error)
	BookingExists(ctx context.Context, term model.Term, lessonType model.LessonType, studentID, tutorID, excludeID int64) (bool, error)
}

// ValidateBooking checks that a booking is well-formed and unique. Pure
// validation; persistence is a separate step. excludeID is the booking's own
// id during updates, zero otherwise.
func ValidateBooking(ctx context.Context, dir BookingDirectory, term model.Term, lessonType model.LessonType, studentID, tutorID, excludeID int64) error {
	if !term.Valid() {
		return model.NewFieldError("term", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid term", term))
	}
	if !lessonType.Valid() {
		return model.NewFieldError("lesson_type", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid lesson type", lessonType))
	}

	if studentID == 0 || tutorID == 0 {
		return model.NewFieldError("", model.CodeMissingParty,
			"both student and tutor must be assigned")
	}

	student, err := dir.GetStudent(ctx, studentID)
	if err != nil {
		return fmt.Errorf("look up student: %w", err)
	}
	if student == nil {
		return model.NewFieldError("student_id", model.CodeUnknownParty,
			fmt.Sprintf("student with id %d does not exist", studentID))
	}

	tutor, err := dir.GetTutor(ctx, tutorID)
	if err != nil {
		return fmt.Errorf("look up tutor: %w", err)
	}
	if tutor == nil {
		return model.NewFieldError("tutor_id", model.CodeUnknownParty,
			fmt.Sprintf("tutor with id %d does not exist", tutorID))
	}

	// Same identity means both records wrap the same user.
	if student.UserID == tutor.UserID {
		return model.NewFieldError("", model.CodeSelfBooking,
			"a student cannot book themselves as a tutor")
	}

	exists, err := dir.BookingExists(ctx, term, lessonType, studentID, tutorID, excludeID)
	if err != nil {
		return fmt.Errorf("check duplicate booking: %w", err)
	}
	if exists {
		return model.NewFieldError("", model.CodeDuplicateBooking,
			"a booking with the same details already exists")
	}

	return nil
}
