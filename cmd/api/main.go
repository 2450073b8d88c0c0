package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/app"
	"github.com/codetutors/tutorhub/internal/billing"
	"github.com/codetutors/tutorhub/internal/config"
	"github.com/codetutors/tutorhub/internal/controller"
	"github.com/codetutors/tutorhub/internal/repository"
	"github.com/codetutors/tutorhub/internal/service"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		app.NewLogger("development").Error("failed to load config", zap.Error(err))
		return err
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	pool, err := app.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Error("failed to init migrator", zap.Error(err))
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		logger.Error("failed to run migrations", zap.Error(err))
		return err
	}
	migrator.Close()

	users := repository.NewUserRepository(pool)
	students := repository.NewStudentRepository(pool)
	tutors := repository.NewTutorRepository(pool)
	subjects := repository.NewSubjectRepository(pool)
	bookings := repository.NewBookingRepository(pool)
	sessions := repository.NewSessionRepository(pool)
	requests := repository.NewStudentRequestRepository(pool)

	calc := billing.NewCalculator()

	userService := service.NewUserService(pool, users, students, tutors, subjects, logger)
	studentService := service.NewStudentService(pool, users, students, logger)
	tutorService := service.NewTutorService(pool, users, tutors, subjects, logger)
	bookingService := service.NewBookingService(pool, students, tutors, bookings, logger)
	sessionService := service.NewSessionService(pool, bookings, tutors, sessions, calc, logger)
	requestService := service.NewStudentRequestService(pool, users, requests, logger)

	sweeper := app.NewPaymentSweeper(sessionService, cfg.SweepInterval, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	server := controller.NewServer(
		cfg.HTTPAddr,
		logger,
		userService,
		studentService,
		tutorService,
		bookingService,
		sessionService,
		requestService,
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}

	return nil
}
