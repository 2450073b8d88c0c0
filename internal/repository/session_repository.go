package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

type SessionRepository struct {
	db base.Querier
}

func NewSessionRepository(db base.Querier) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) WithTx(tx base.Querier) *SessionRepository {
	return &SessionRepository{db: tx}
}

// SessionFilter narrows and orders a booking's session list.
type SessionFilter struct {
	Venue         *model.Venue
	PaymentStatus *model.PaymentStatus
	SortFurthest  bool // default ordering is closest date first
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (booking_id, session_date, session_time, duration_minutes, venue, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		session.BookingID,
		session.SessionDate,
		session.SessionTime,
		session.DurationMinutes,
		session.Venue,
		session.PaymentStatus,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `
		SELECT id, booking_id, session_date, session_time, duration_minutes, venue, payment_status, created_at
		FROM sessions
		WHERE id = $1
	`

	var session model.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.BookingID,
		&session.SessionDate,
		&session.SessionTime,
		&session.DurationMinutes,
		&session.Venue,
		&session.PaymentStatus,
		&session.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return &session, nil
}

func (r *SessionRepository) ListByBooking(ctx context.Context, bookingID int64, filter SessionFilter) ([]*model.Session, error) {
	query := `
		SELECT id, booking_id, session_date, session_time, duration_minutes, venue, payment_status, created_at
		FROM sessions
		WHERE booking_id = $1
	`
	args := []any{bookingID}

	if filter.Venue != nil {
		args = append(args, *filter.Venue)
		query += fmt.Sprintf(" AND venue = $%d", len(args))
	}
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		query += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}

	if filter.SortFurthest {
		query += " ORDER BY session_date DESC, session_time DESC"
	} else {
		query += " ORDER BY session_date ASC, session_time ASC"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// Siblings returns all other sessions under the same booking, excluding
// excludeID (the session's own id during updates). These are the candidates
// for the overlap check.
func (r *SessionRepository) Siblings(ctx context.Context, bookingID, excludeID int64) ([]*model.Session, error) {
	query := `
		SELECT id, booking_id, session_date, session_time, duration_minutes, venue, payment_status, created_at
		FROM sessions
		WHERE booking_id = $1 AND id <> $2
		ORDER BY session_date, session_time
	`

	rows, err := r.db.Query(ctx, query, bookingID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("get sibling sessions: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// ListPastPending returns sessions dated before the given day whose payment
// is still pending. Used by the payment sweeper.
func (r *SessionRepository) ListPastPending(ctx context.Context, before string) ([]*model.Session, error) {
	query := `
		SELECT id, booking_id, session_date, session_time, duration_minutes, venue, payment_status, created_at
		FROM sessions
		WHERE session_date < $1 AND payment_status = 'Pending'
		ORDER BY session_date, session_time
	`

	rows, err := r.db.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("list past pending sessions: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *SessionRepository) Update(ctx context.Context, session *model.Session) error {
	query := `
		UPDATE sessions
		SET session_date = $1, session_time = $2, duration_minutes = $3, venue = $4, payment_status = $5
		WHERE id = $6
	`

	tag, err := r.db.Exec(
		ctx, query,
		session.SessionDate,
		session.SessionTime,
		session.DurationMinutes,
		session.Venue,
		session.PaymentStatus,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *SessionRepository) scanAll(rows pgx.Rows) ([]*model.Session, error) {
	var sessions []*model.Session
	for rows.Next() {
		var session model.Session
		err := rows.Scan(
			&session.ID,
			&session.BookingID,
			&session.SessionDate,
			&session.SessionTime,
			&session.DurationMinutes,
			&session.Venue,
			&session.PaymentStatus,
			&session.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}
