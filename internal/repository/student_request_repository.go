package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

type StudentRequestRepository struct {
	db base.Querier
}

func NewStudentRequestRepository(db base.Querier) *StudentRequestRepository {
	return &StudentRequestRepository{db: db}
}

func (r *StudentRequestRepository) WithTx(tx base.Querier) *StudentRequestRepository {
	return &StudentRequestRepository{db: tx}
}

func (r *StudentRequestRepository) Create(ctx context.Context, request *model.StudentRequest) error {
	query := `
		INSERT INTO student_requests (user_id, name, request_type, description, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		request.UserID,
		request.Name,
		request.RequestType,
		request.Description,
		request.Status,
		request.Priority,
	).Scan(&request.ID, &request.CreatedAt)

	if err != nil {
		return fmt.Errorf("create student request: %w", err)
	}

	return nil
}

func (r *StudentRequestRepository) GetByID(ctx context.Context, id int64) (*model.StudentRequest, error) {
	query := `
		SELECT id, user_id, name, request_type, description, status, priority, created_at
		FROM student_requests
		WHERE id = $1
	`

	var request model.StudentRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.UserID,
		&request.Name,
		&request.RequestType,
		&request.Description,
		&request.Status,
		&request.Priority,
		&request.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student request: %w", err)
	}

	return &request, nil
}

func (r *StudentRequestRepository) List(ctx context.Context) ([]*model.StudentRequest, error) {
	query := `
		SELECT id, user_id, name, request_type, description, status, priority, created_at
		FROM student_requests
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list student requests: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *StudentRequestRepository) Update(ctx context.Context, request *model.StudentRequest) error {
	query := `
		UPDATE student_requests
		SET name = $1, request_type = $2, description = $3, status = $4, priority = $5
		WHERE id = $6
	`

	tag, err := r.db.Exec(
		ctx, query,
		request.Name,
		request.RequestType,
		request.Description,
		request.Status,
		request.Priority,
		request.ID,
	)
	if err != nil {
		return fmt.Errorf("update student request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *StudentRequestRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM student_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *StudentRequestRepository) scanAll(rows pgx.Rows) ([]*model.StudentRequest, error) {
	var requests []*model.StudentRequest
	for rows.Next() {
		var request model.StudentRequest
		err := rows.Scan(
			&request.ID,
			&request.UserID,
			&request.Name,
			&request.RequestType,
			&request.Description,
			&request.Status,
			&request.Priority,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student request: %w", err)
		}
		requests = append(requests, &request)
	}

	return requests, rows.Err()
}
