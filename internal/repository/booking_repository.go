package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

type BookingRepository struct {
	db base.Querier
}

func NewBookingRepository(db base.Querier) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) WithTx(tx base.Querier) *BookingRepository {
	return &BookingRepository{db: tx}
}

func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (term, lesson_type, student_id, tutor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		booking.Term,
		booking.LessonType,
		booking.StudentID,
		booking.TutorID,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT id, term, lesson_type, student_id, tutor_id, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Term,
		&booking.LessonType,
		&booking.StudentID,
		&booking.TutorID,
		&booking.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &booking, nil
}

// List returns all bookings in the canonical ordering
// (term, lesson_type, student, tutor).
func (r *BookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	query := `
		SELECT id, term, lesson_type, student_id, tutor_id, created_at
		FROM bookings
		ORDER BY term, lesson_type, student_id, tutor_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *BookingRepository) ListByStudentID(ctx context.Context, studentID int64) ([]*model.Booking, error) {
	query := `
		SELECT id, term, lesson_type, student_id, tutor_id, created_at
		FROM bookings
		WHERE student_id = $1
		ORDER BY term, lesson_type, student_id, tutor_id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by student: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *BookingRepository) ListByTutorID(ctx context.Context, tutorID int64) ([]*model.Booking, error) {
	query := `
		SELECT id, term, lesson_type, student_id, tutor_id, created_at
		FROM bookings
		WHERE tutor_id = $1
		ORDER BY term, lesson_type, student_id, tutor_id
	`

	rows, err := r.db.Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by tutor: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// Exists reports whether a booking with the same identity tuple already
// exists, excluding excludeID (the booking's own id during updates).
func (r *BookingRepository) Exists(ctx context.Context, term model.Term, lessonType model.LessonType, studentID, tutorID, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE term = $1 AND lesson_type = $2 AND student_id = $3 AND tutor_id = $4
			  AND id <> $5
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, term, lessonType, studentID, tutorID, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check booking exists: %w", err)
	}

	return exists, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET term = $1, lesson_type = $2, student_id = $3, tutor_id = $4
		WHERE id = $5
	`

	tag, err := r.db.Exec(
		ctx, query,
		booking.Term,
		booking.LessonType,
		booking.StudentID,
		booking.TutorID,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Delete removes a booking; sessions cascade at the schema level.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *BookingRepository) scanAll(rows pgx.Rows) ([]*model.Booking, error) {
	var bookings []*model.Booking
	for rows.Next() {
		var booking model.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.Term,
			&booking.LessonType,
			&booking.StudentID,
			&booking.TutorID,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, rows.Err()
}
