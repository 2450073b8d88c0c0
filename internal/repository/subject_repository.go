package repository

import (
	"context"
	"fmt"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

type SubjectRepository struct {
	db base.Querier
}

func NewSubjectRepository(db base.Querier) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) WithTx(tx base.Querier) *SubjectRepository {
	return &SubjectRepository{db: tx}
}

func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	query := `
		INSERT INTO subjects (name)
		VALUES ($1)
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, query, subject.Name).Scan(&subject.ID); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

// GetOrCreate returns the subject with the given name, creating it first if
// necessary.
func (r *SubjectRepository) GetOrCreate(ctx context.Context, name string) (*model.Subject, error) {
	query := `
		INSERT INTO subjects (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`

	var subject model.Subject
	if err := r.db.QueryRow(ctx, query, name).Scan(&subject.ID, &subject.Name); err != nil {
		return nil, fmt.Errorf("get or create subject: %w", err)
	}

	return &subject, nil
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM subjects WHERE id = $1`, id,
	).Scan(&subject.ID, &subject.Name)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}

	return &subject, nil
}

func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM subjects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
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

func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
