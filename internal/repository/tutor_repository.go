package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

type TutorRepository struct {
	db base.Querier
}

func NewTutorRepository(db base.Querier) *TutorRepository {
	return &TutorRepository{db: db}
}

func (r *TutorRepository) WithTx(tx base.Querier) *TutorRepository {
	return &TutorRepository{db: tx}
}

func (r *TutorRepository) Create(ctx context.Context, tutor *model.Tutor) error {
	tutor.NormalizeEmail()

	query := `
		INSERT INTO tutors (user_id, name, email, rate)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		tutor.UserID,
		tutor.Name,
		tutor.Email,
		tutor.Rate,
	).Scan(&tutor.ID)

	if err != nil {
		return fmt.Errorf("create tutor: %w", err)
	}

	return nil
}

func (r *TutorRepository) GetByID(ctx context.Context, id int64) (*model.Tutor, error) {
	query := `
		SELECT id, user_id, name, email, rate
		FROM tutors
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *TutorRepository) GetByUserID(ctx context.Context, userID int64) (*model.Tutor, error) {
	query := `
		SELECT id, user_id, name, email, rate
		FROM tutors
		WHERE user_id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *TutorRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM tutors
			WHERE lower(email) = lower($1) AND id <> $2
		)
	`

	var taken bool
	if err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check tutor email: %w", err)
	}

	return taken, nil
}

func (r *TutorRepository) List(ctx context.Context) ([]*model.Tutor, error) {
	query := `
		SELECT id, user_id, name, email, rate
		FROM tutors
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	defer rows.Close()

	var tutors []*model.Tutor
	for rows.Next() {
		var tutor model.Tutor
		err := rows.Scan(
			&tutor.ID,
			&tutor.UserID,
			&tutor.Name,
			&tutor.Email,
			&tutor.Rate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tutor: %w", err)
		}
		tutors = append(tutors, &tutor)
	}

	return tutors, rows.Err()
}

func (r *TutorRepository) Update(ctx context.Context, tutor *model.Tutor) error {
	tutor.NormalizeEmail()

	query := `
		UPDATE tutors
		SET name = $1, email = $2, rate = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(
		ctx, query,
		tutor.Name,
		tutor.Email,
		tutor.Rate,
		tutor.ID,
	)
	if err != nil {
		return fmt.Errorf("update tutor: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *TutorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tutors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tutor: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *TutorRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tutors WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete tutor by user: %w", err)
	}

	return nil
}

// AttachSubject links a subject to a tutor, ignoring duplicates.
func (r *TutorRepository) AttachSubject(ctx context.Context, tutorID, subjectID int64) error {
	query := `
		INSERT INTO tutor_subjects (tutor_id, subject_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, tutorID, subjectID); err != nil {
		return fmt.Errorf("attach subject: %w", err)
	}

	return nil
}

// ReplaceSubjects rewrites the tutor's subject set.
func (r *TutorRepository) ReplaceSubjects(ctx context.Context, tutorID int64, subjectIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tutor_subjects WHERE tutor_id = $1`, tutorID); err != nil {
		return fmt.Errorf("clear subjects: %w", err)
	}

	for _, subjectID := range subjectIDs {
		if err := r.AttachSubject(ctx, tutorID, subjectID); err != nil {
			return err
		}
	}

	return nil
}

func (r *TutorRepository) GetSubjects(ctx context.Context, tutorID int64) ([]model.Subject, error) {
	query := `
		SELECT s.id, s.name
		FROM subjects s
		JOIN tutor_subjects ts ON ts.subject_id = s.id
		WHERE ts.tutor_id = $1
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("get tutor subjects: %w", err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var subject model.Subject
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	return subjects, rows.Err()
}

func (r *TutorRepository) scanOne(row pgx.Row) (*model.Tutor, error) {
	var tutor model.Tutor
	err := row.Scan(
		&tutor.ID,
		&tutor.UserID,
		&tutor.Name,
		&tutor.Email,
		&tutor.Rate,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tutor: %w", err)
	}

	return &tutor, nil
}
