package controller

import (
	"net/http"

	"github.com/codetutors/tutorhub/internal/model"
)

type bookingRequest struct {
	Term       model.Term       `json:"term"`
	LessonType model.LessonType `json:"lesson_type"`
	StudentID  int64            `json:"student_id"`
	TutorID    int64            `json:"tutor_id"`
}

func (req bookingRequest) toModel(id int64) *model.Booking {
	return &model.Booking{
		ID:         id,
		Term:       req.Term,
		LessonType: req.LessonType,
		StudentID:  req.StudentID,
		TutorID:    req.TutorID,
	}
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"bookings": bookings})
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	booking := req.toModel(0)
	if err := s.bookings.Create(r.Context(), booking); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusCreated, envelope{"booking": booking})
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookingId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	booking, err := s.bookings.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"booking": booking})
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookingId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	var req bookingRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	booking := req.toModel(id)
	if err := s.bookings.Update(r.Context(), booking); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"booking": booking})
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookingId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.bookings.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
