package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

type StudentRepository struct {
	db base.Querier
}

func NewStudentRepository(db base.Querier) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) WithTx(tx base.Querier) *StudentRepository {
	return &StudentRepository{db: tx}
}

func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	student.NormalizeEmail()

	query := `
		INSERT INTO students (user_id, name, email, allocated, payment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		student.UserID,
		student.Name,
		student.Email,
		student.Allocated,
		student.Payment,
	).Scan(&student.ID)

	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `
		SELECT id, user_id, name, email, allocated, payment
		FROM students
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*model.Student, error) {
	query := `
		SELECT id, user_id, name, email, allocated, payment
		FROM students
		WHERE user_id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

// EmailTaken reports whether another student (excluding excludeID) already
// uses the email, case-insensitively.
func (r *StudentRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM students
			WHERE lower(email) = lower($1) AND id <> $2
		)
	`

	var taken bool
	if err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check student email: %w", err)
	}

	return taken, nil
}

func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `
		SELECT id, user_id, name, email, allocated, payment
		FROM students
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	student.NormalizeEmail()

	query := `
		UPDATE students
		SET name = $1, email = $2, allocated = $3, payment = $4
		WHERE id = $5
	`

	tag, err := r.db.Exec(
		ctx, query,
		student.Name,
		student.Email,
		student.Allocated,
		student.Payment,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// DeleteByUserID removes the student tied to a user, if any. Used when a
// user switches away from the student type.
func (r *StudentRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM students WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete student by user: %w", err)
	}

	return nil
}

func (r *StudentRepository) scanOne(row pgx.Row) (*model.Student, error) {
	var student model.Student
	err := row.Scan(
		&student.ID,
		&student.UserID,
		&student.Name,
		&student.Email,
		&student.Allocated,
		&student.Payment,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student: %w", err)
	}

	return &student, nil
}

func (r *StudentRepository) scanAll(rows pgx.Rows) ([]*model.Student, error) {
	var students []*model.Student
	for rows.Next() {
		var student model.Student
		err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.Name,
			&student.Email,
			&student.Allocated,
			&student.Payment,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &student)
	}

	return students, rows.Err()
}
