package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/service"
)

// PaymentSweeper periodically reports sessions whose date has passed while
// payment is still pending. It only logs; nothing is mutated.
type PaymentSweeper struct {
	sessions *service.SessionService
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

func NewPaymentSweeper(sessions *service.SessionService, interval time.Duration, logger *zap.Logger) *PaymentSweeper {
	return &PaymentSweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

func (s *PaymentSweeper) Start(ctx context.Context) {
	s.logger.Info("starting payment sweeper", zap.Duration("interval", s.interval))

	go s.run(ctx)
}

func (s *PaymentSweeper) Stop() {
	s.logger.Info("stopping payment sweeper")
	close(s.stopChan)
}

func (s *PaymentSweeper) run(ctx context.Context) {
	// First sweep right away, then on every tick.
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("payment sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("payment sweeper cancelled")
			return
		}
	}
}

func (s *PaymentSweeper) sweep(ctx context.Context) {
	overdue, err := s.sessions.PastPending(ctx)
	if err != nil {
		s.logger.Error("payment sweep failed", zap.Error(err))
		return
	}

	if len(overdue) == 0 {
		return
	}

	s.logger.Warn("sessions with overdue payment", zap.Int("count", len(overdue)))
	for _, session := range overdue {
		s.logger.Warn("payment pending for past session",
			zap.Int64("session_id", session.ID),
			zap.Int64("booking_id", session.BookingID),
			zap.String("date", session.SessionDate.Format("2006-01-02")),
		)
	}
}
