package controller

import (
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository"
	"github.com/codetutors/tutorhub/internal/timetable"
)

const dateLayout = "2006-01-02"

type sessionRequest struct {
	SessionDate string          `json:"session_date"`
	SessionTime model.TimeOfDay `json:"session_time"`
	// A pointer so an absent duration (default applies) is distinguishable
	// from an explicit zero (rejected as non-positive).
	DurationMinutes *int                `json:"duration_minutes"`
	Venue           model.Venue         `json:"venue"`
	PaymentStatus   model.PaymentStatus `json:"payment_status"`
}

func (req sessionRequest) toModel(id, bookingID int64) (*model.Session, error) {
	date, err := time.Parse(dateLayout, req.SessionDate)
	if err != nil {
		return nil, fmt.Errorf("session_date must be in YYYY-MM-DD format")
	}

	minutes := model.DefaultDurationMinutes
	if req.DurationMinutes != nil {
		minutes = *req.DurationMinutes
	}

	return &model.Session{
		ID:              id,
		BookingID:       bookingID,
		SessionDate:     date,
		SessionTime:     req.SessionTime,
		DurationMinutes: minutes,
		Venue:           req.Venue,
		PaymentStatus:   req.PaymentStatus,
	}, nil
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	bookingID, err := idParam(r, "bookingId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	var req sessionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	session, err := req.toModel(0, bookingID)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.sessions.Create(r.Context(), session); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusCreated, envelope{"session": session})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	bookingID, err := idParam(r, "bookingId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	filter, err := sessionFilter(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	sessions, err := s.sessions.ListByBooking(r.Context(), bookingID, filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"sessions": sessions})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "sessionId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	view, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"session": view})
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "sessionId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	var req sessionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	session, err := req.toModel(id, 0)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.sessions.Update(r.Context(), session); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"session": session})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "sessionId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionTimetable(w http.ResponseWriter, r *http.Request) {
	bookingID, err := idParam(r, "bookingId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	weekStart, err := weekParam(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	if _, err := s.bookings.Get(r.Context(), bookingID); err != nil {
		s.respondError(w, r, err)
		return
	}

	views, err := s.sessions.ListByBooking(r.Context(), bookingID, repository.SessionFilter{})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	sessions := make([]*model.Session, 0, len(views))
	for _, v := range views {
		sessions = append(sessions, v.Session)
	}

	img := timetable.Render(weekStart, sessions)

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.logger.Error("encode timetable png", zap.Error(err))
	}
}

// sessionFilter parses the optional venue, payment_status, and sort query
// parameters.
func sessionFilter(r *http.Request) (repository.SessionFilter, error) {
	var filter repository.SessionFilter

	if raw := r.URL.Query().Get("venue"); raw != "" {
		venue := model.Venue(raw)
		if !venue.Valid() {
			return filter, fmt.Errorf("unknown venue %q", raw)
		}
		filter.Venue = &venue
	}

	if raw := r.URL.Query().Get("payment_status"); raw != "" {
		status := model.PaymentStatus(raw)
		if !status.Valid() {
			return filter, fmt.Errorf("unknown payment status %q", raw)
		}
		filter.PaymentStatus = &status
	}

	switch sort := r.URL.Query().Get("sort"); sort {
	case "", "closest":
	case "furthest":
		filter.SortFurthest = true
	default:
		return filter, fmt.Errorf("sort must be %q or %q", "closest", "furthest")
	}

	return filter, nil
}

// weekParam resolves the week query parameter to the Monday of that week,
// defaulting to the current week.
func weekParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return timetable.WeekStart(time.Now().UTC()), nil
	}

	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, errors.New("week must be in YYYY-MM-DD format")
	}
	return timetable.WeekStart(day), nil
}
