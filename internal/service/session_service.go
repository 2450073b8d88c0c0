package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/billing"
	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

// SessionService validates and persists sessions, and attaches the computed
// billable amount on reads. Validate-then-save runs in one REPEATABLE READ
// transaction; the (booking, date, time) unique constraint is the backstop.
type SessionService struct {
	pool     *pgxpool.Pool
	bookings *repository.BookingRepository
	tutors   *repository.TutorRepository
	sessions *repository.SessionRepository
	calc     *billing.Calculator
	logger   *zap.Logger

	now func() time.Time // swapped in tests
}

func NewSessionService(
	pool *pgxpool.Pool,
	bookings *repository.BookingRepository,
	tutors *repository.TutorRepository,
	sessions *repository.SessionRepository,
	calc *billing.Calculator,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		pool:     pool,
		bookings: bookings,
		tutors:   tutors,
		sessions: sessions,
		calc:     calc,
		logger:   logger,
		now:      time.Now,
	}
}

// SessionView is a session with its derived billable amount. The amount is
// computed on demand and never persisted.
type SessionView struct {
	*model.Session
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// sessionNeighborhood adapts the repositories to the validator interface.
type sessionNeighborhood struct {
	bookings *repository.BookingRepository
	sessions *repository.SessionRepository
}

func (n sessionNeighborhood) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	return n.bookings.GetByID(ctx, id)
}

func (n sessionNeighborhood) Siblings(ctx context.Context, bookingID, excludeID int64) ([]*model.Session, error) {
	return n.sessions.Siblings(ctx, bookingID, excludeID)
}

func (s *SessionService) Create(ctx context.Context, session *model.Session) error {
	applySessionDefaults(session)
	if err := checkSessionChoices(session); err != nil {
		return err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	hood := sessionNeighborhood{
		bookings: s.bookings.WithTx(tx),
		sessions: s.sessions.WithTx(tx),
	}

	if err := ValidateSession(ctx, hood, session, 0, s.now()); err != nil {
		return err
	}

	if err := hood.sessions.Create(ctx, session); err != nil {
		if base.IsUniqueViolation(err) {
			return model.NewFieldError("", model.CodeDuplicateDateTime,
				"a session at the same date and time already exists for this booking")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("session created",
		zap.Int64("session_id", session.ID),
		zap.Int64("booking_id", session.BookingID),
		zap.String("date", session.SessionDate.Format("2006-01-02")),
		zap.String("time", session.SessionTime.String()),
	)

	return nil
}

func (s *SessionService) Update(ctx context.Context, session *model.Session) error {
	applySessionDefaults(session)
	if err := checkSessionChoices(session); err != nil {
		return err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	hood := sessionNeighborhood{
		bookings: s.bookings.WithTx(tx),
		sessions: s.sessions.WithTx(tx),
	}

	existing, err := hood.sessions.GetByID(ctx, session.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return model.ErrNotFound
	}
	session.BookingID = existing.BookingID // a session never moves between bookings

	// Full re-validation, excluding the session's own row.
	if err := ValidateSession(ctx, hood, session, session.ID, s.now()); err != nil {
		return err
	}

	if err := hood.sessions.Update(ctx, session); err != nil {
		if base.IsUniqueViolation(err) {
			return model.NewFieldError("", model.CodeDuplicateDateTime,
				"a session at the same date and time already exists for this booking")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("session updated", zap.Int64("session_id", session.ID))

	return nil
}

func (s *SessionService) Get(ctx context.Context, id int64) (*SessionView, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, model.ErrNotFound
	}

	booking, err := s.loadBookingWithTutor(ctx, session.BookingID)
	if err != nil {
		return nil, err
	}

	return &SessionView{
		Session:     session,
		TotalAmount: s.calc.SessionAmount(booking, session),
	}, nil
}

// ListByBooking returns the booking's sessions, filtered and ordered, each
// carrying its computed total amount.
func (s *SessionService) ListByBooking(ctx context.Context, bookingID int64, filter repository.SessionFilter) ([]*SessionView, error) {
	booking, err := s.loadBookingWithTutor(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListByBooking(ctx, bookingID, filter)
	if err != nil {
		return nil, err
	}

	views := make([]*SessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, &SessionView{
			Session:     session,
			TotalAmount: s.calc.SessionAmount(booking, session),
		})
	}

	return views, nil
}

func (s *SessionService) Delete(ctx context.Context, id int64) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("session deleted", zap.Int64("session_id", id))

	return nil
}

// PastPending returns sessions whose date has passed while payment is still
// pending. Used by the payment sweeper.
func (s *SessionService) PastPending(ctx context.Context) ([]*model.Session, error) {
	today := s.now().UTC().Format("2006-01-02")
	return s.sessions.ListPastPending(ctx, today)
}

func (s *SessionService) loadBookingWithTutor(ctx context.Context, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, model.ErrNotFound
	}

	if booking.Tutor, err = s.tutors.GetByID(ctx, booking.TutorID); err != nil {
		return nil, err
	}

	return booking, nil
}

// applySessionDefaults fills venue and payment status when absent. Duration
// is the caller's responsibility: the API layer defaults an absent duration,
// so a zero here is explicit and must fail validation.
func applySessionDefaults(session *model.Session) {
	if session.Venue == "" {
		session.Venue = model.VenueBushHouse
	}
	if session.PaymentStatus == "" {
		session.PaymentStatus = model.PaymentPending
	}
}

func checkSessionChoices(session *model.Session) error {
	if !session.Venue.Valid() {
		return model.NewFieldError("venue", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid venue", session.Venue))
	}
	if !session.PaymentStatus.Valid() {
		return model.NewFieldError("payment_status", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid payment status", session.PaymentStatus))
	}
	return nil
}
