package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

// BookingService validates and persists bookings. Validation and the save
// run inside one REPEATABLE READ transaction so two concurrent requests
// cannot both pass the uniqueness check; the DB unique constraint remains
// the final backstop.
type BookingService struct {
	pool     *pgxpool.Pool
	students *repository.StudentRepository
	tutors   *repository.TutorRepository
	bookings *repository.BookingRepository
	logger   *zap.Logger
}

func NewBookingService(
	pool *pgxpool.Pool,
	students *repository.StudentRepository,
	tutors *repository.TutorRepository,
	bookings *repository.BookingRepository,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		pool:     pool,
		students: students,
		tutors:   tutors,
		bookings: bookings,
		logger:   logger,
	}
}

// storageDirectory adapts the repositories to the validator interface,
// optionally scoped to a transaction.
type storageDirectory struct {
	students *repository.StudentRepository
	tutors   *repository.TutorRepository
	bookings *repository.BookingRepository
}

func (d storageDirectory) GetStudent(ctx context.Context, id int64) (*model.Student, error) {
	return d.students.GetByID(ctx, id)
}

func (d storageDirectory) GetTutor(ctx context.Context, id int64) (*model.Tutor, error) {
	return d.tutors.GetByID(ctx, id)
}

func (d storageDirectory) BookingExists(ctx context.Context, term model.Term, lessonType model.LessonType, studentID, tutorID, excludeID int64) (bool, error) {
	return d.bookings.Exists(ctx, term, lessonType, studentID, tutorID, excludeID)
}

func (s *BookingService) Create(ctx context.Context, booking *model.Booking) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	dir := storageDirectory{
		students: s.students.WithTx(tx),
		tutors:   s.tutors.WithTx(tx),
		bookings: s.bookings.WithTx(tx),
	}

	err = ValidateBooking(ctx, dir, booking.Term, booking.LessonType, booking.StudentID, booking.TutorID, 0)
	if err != nil {
		return err
	}

	if err := dir.bookings.Create(ctx, booking); err != nil {
		if base.IsUniqueViolation(err) {
			return model.NewFieldError("", model.CodeDuplicateBooking,
				"a booking with the same details already exists")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("term", string(booking.Term)),
		zap.String("lesson_type", string(booking.LessonType)),
		zap.Int64("student_id", booking.StudentID),
		zap.Int64("tutor_id", booking.TutorID),
	)

	return nil
}

func (s *BookingService) Update(ctx context.Context, booking *model.Booking) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	dir := storageDirectory{
		students: s.students.WithTx(tx),
		tutors:   s.tutors.WithTx(tx),
		bookings: s.bookings.WithTx(tx),
	}

	existing, err := dir.bookings.GetByID(ctx, booking.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return model.ErrNotFound
	}

	// The booking's own id is excluded from the uniqueness check.
	err = ValidateBooking(ctx, dir, booking.Term, booking.LessonType, booking.StudentID, booking.TutorID, booking.ID)
	if err != nil {
		return err
	}

	if err := dir.bookings.Update(ctx, booking); err != nil {
		if base.IsUniqueViolation(err) {
			return model.NewFieldError("", model.CodeDuplicateBooking,
				"a booking with the same details already exists")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("booking updated", zap.Int64("booking_id", booking.ID))

	return nil
}

func (s *BookingService) Get(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, model.ErrNotFound
	}

	if booking.Student, err = s.students.GetByID(ctx, booking.StudentID); err != nil {
		return nil, err
	}
	if booking.Tutor, err = s.tutors.GetByID(ctx, booking.TutorID); err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]*model.Booking, error) {
	return s.bookings.List(ctx)
}

// ListByStudent returns the student's bookings across all terms and tutors.
func (s *BookingService) ListByStudent(ctx context.Context, studentID int64) ([]*model.Booking, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, model.ErrNotFound
	}
	return s.bookings.ListByStudentID(ctx, studentID)
}

// ListByTutor returns the tutor's bookings across all terms and students.
func (s *BookingService) ListByTutor(ctx context.Context, tutorID int64) ([]*model.Booking, error) {
	tutor, err := s.tutors.GetByID(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if tutor == nil {
		return nil, model.ErrNotFound
	}
	return s.bookings.ListByTutorID(ctx, tutorID)
}

// Delete removes a booking and, via the schema cascade, all its sessions.
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("booking deleted", zap.Int64("booking_id", id))

	return nil
}
