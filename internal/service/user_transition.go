package service

import (
	"context"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository"
)

// DependentRecords is what the user-type transition needs from storage:
// creating, finding, and deleting the Student/Tutor records owned by a user.
// Satisfied by the pgx repositories in production and by in-memory fakes in
// tests.
type DependentRecords interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*model.Student, error)
	CreateStudent(ctx context.Context, student *model.Student) error
	DeleteStudentByUserID(ctx context.Context, userID int64) error
	GetTutorByUserID(ctx context.Context, userID int64) (*model.Tutor, error)
	CreateTutor(ctx context.Context, tutor *model.Tutor) error
	DeleteTutorByUserID(ctx context.Context, userID int64) error
	AttachDefaultSubject(ctx context.Context, tutorID int64) error
}

// syncDependents makes the Student/Tutor records agree with the user's type:
// a student-typed user ends up with exactly one Student record and no Tutor
// record, a tutor-typed user the other way around (a fresh tutor gets the
// default rate and the default subject), and any other type with neither.
// Existing dependent records are kept as they are.
func syncDependents(ctx context.Context, deps DependentRecords, user *model.User) error {
	switch user.UserType {
	case model.UserTypeStudent:
		if err := deps.DeleteTutorByUserID(ctx, user.ID); err != nil {
			return err
		}
		existing, err := deps.GetStudentByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			student := &model.Student{
				UserID:  user.ID,
				Name:    user.FullName(),
				Email:   user.Email,
				Payment: model.PaymentPending,
			}
			if err := deps.CreateStudent(ctx, student); err != nil {
				return err
			}
		}

	case model.UserTypeTutor:
		if err := deps.DeleteStudentByUserID(ctx, user.ID); err != nil {
			return err
		}
		existing, err := deps.GetTutorByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			tutor := &model.Tutor{
				UserID: user.ID,
				Name:   user.FullName(),
				Email:  user.Email,
				Rate:   model.DefaultRate,
			}
			if err := deps.CreateTutor(ctx, tutor); err != nil {
				return err
			}
			if err := deps.AttachDefaultSubject(ctx, tutor.ID); err != nil {
				return err
			}
		}

	default:
		if err := deps.DeleteStudentByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := deps.DeleteTutorByUserID(ctx, user.ID); err != nil {
			return err
		}
	}

	return nil
}

// storageDependents adapts the repositories to DependentRecords, scoped to
// one transaction.
type storageDependents struct {
	students *repository.StudentRepository
	tutors   *repository.TutorRepository
	subjects *repository.SubjectRepository
}

func (d storageDependents) GetStudentByUserID(ctx context.Context, userID int64) (*model.Student, error) {
	return d.students.GetByUserID(ctx, userID)
}

func (d storageDependents) CreateStudent(ctx context.Context, student *model.Student) error {
	return d.students.Create(ctx, student)
}

func (d storageDependents) DeleteStudentByUserID(ctx context.Context, userID int64) error {
	return d.students.DeleteByUserID(ctx, userID)
}

func (d storageDependents) GetTutorByUserID(ctx context.Context, userID int64) (*model.Tutor, error) {
	return d.tutors.GetByUserID(ctx, userID)
}

func (d storageDependents) CreateTutor(ctx context.Context, tutor *model.Tutor) error {
	return d.tutors.Create(ctx, tutor)
}

func (d storageDependents) DeleteTutorByUserID(ctx context.Context, userID int64) error {
	return d.tutors.DeleteByUserID(ctx, userID)
}

func (d storageDependents) AttachDefaultSubject(ctx context.Context, tutorID int64) error {
	subject, err := d.subjects.GetOrCreate(ctx, model.DefaultSubjectName)
	if err != nil {
		return err
	}
	return d.tutors.AttachSubject(ctx, tutorID, subject.ID)
}
