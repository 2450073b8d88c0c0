// Package controller exposes the HTTP API: JSON CRUD for users, students,
// tutors, bookings, sessions, and student requests, plus the weekly
// timetable image.
package controller

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/service"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 30 * time.Second
)

type Server struct {
	addr   string
	logger *zap.Logger

	users    *service.UserService
	students *service.StudentService
	tutors   *service.TutorService
	bookings *service.BookingService
	sessions *service.SessionService
	requests *service.StudentRequestService
}

func NewServer(
	addr string,
	logger *zap.Logger,
	users *service.UserService,
	students *service.StudentService,
	tutors *service.TutorService,
	bookings *service.BookingService,
	sessions *service.SessionService,
	requests *service.StudentRequestService,
) *Server {
	return &Server{
		addr:     addr,
		logger:   logger,
		users:    users,
		students: students,
		tutors:   tutors,
		bookings: bookings,
		sessions: sessions,
		requests: requests,
	}
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.routes(),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	shutdownErrChan := make(chan error)

	go func() {
		quitChan := make(chan os.Signal, 1)
		signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-quitChan:
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownPeriod)
		defer cancel()

		shutdownErrChan <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting server", zap.String("addr", srv.Addr))

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErrChan; err != nil {
		return err
	}

	s.logger.Info("stopped server", zap.String("addr", srv.Addr))

	return nil
}

func (s *Server) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(s.notFoundHandler)
	mux.MethodNotAllowed(s.methodNotAllowedHandler)

	mux.Use(s.requestID)
	mux.Use(s.logAccess)
	mux.Use(s.recoverPanic)
	mux.Use(s.cors)

	mux.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Get("/{userId}", s.handleGetUser)
			r.Put("/{userId}", s.handleUpdateUser)
			r.Patch("/{userId}/type", s.handleSetUserType)
			r.Delete("/{userId}", s.handleDeleteUser)
		})

		r.Route("/students", func(r chi.Router) {
			r.Get("/", s.handleListStudents)
			r.Post("/", s.handleCreateStudent)
			r.Get("/{studentId}", s.handleGetStudent)
			r.Put("/{studentId}", s.handleUpdateStudent)
			r.Delete("/{studentId}", s.handleDeleteStudent)
			r.Get("/{studentId}/bookings", s.handleListStudentBookings)
		})

		r.Route("/tutors", func(r chi.Router) {
			r.Get("/", s.handleListTutors)
			r.Post("/", s.handleCreateTutor)
			r.Get("/{tutorId}", s.handleGetTutor)
			r.Put("/{tutorId}", s.handleUpdateTutor)
			r.Delete("/{tutorId}", s.handleDeleteTutor)
			r.Get("/{tutorId}/bookings", s.handleListTutorBookings)
		})

		r.Get("/subjects", s.handleListSubjects)

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", s.handleListBookings)
			r.Post("/", s.handleCreateBooking)
			r.Get("/{bookingId}", s.handleGetBooking)
			r.Put("/{bookingId}", s.handleUpdateBooking)
			r.Delete("/{bookingId}", s.handleDeleteBooking)

			r.Get("/{bookingId}/sessions", s.handleListSessions)
			r.Post("/{bookingId}/sessions", s.handleCreateSession)
			r.Get("/{bookingId}/sessions/timetable", s.handleSessionTimetable)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/{sessionId}", s.handleGetSession)
			r.Put("/{sessionId}", s.handleUpdateSession)
			r.Delete("/{sessionId}", s.handleDeleteSession)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/", s.handleListRequests)
			r.Post("/", s.handleCreateRequest)
			r.Get("/{requestId}", s.handleGetRequest)
			r.Put("/{requestId}", s.handleUpdateRequest)
			r.Delete("/{requestId}", s.handleDeleteRequest)
		})
	})

	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, envelope{"status": "OK"})
}
