package controller

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/codetutors/tutorhub/internal/model"
)

type tutorRequest struct {
	UserID   int64           `json:"user_id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Rate     decimal.Decimal `json:"rate"`
	Subjects []string        `json:"subjects"`
}

func (req tutorRequest) toModel(id int64) *model.Tutor {
	return &model.Tutor{
		ID:     id,
		UserID: req.UserID,
		Name:   req.Name,
		Email:  req.Email,
		Rate:   req.Rate,
	}
}

func (s *Server) handleListTutors(w http.ResponseWriter, r *http.Request) {
	tutors, err := s.tutors.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"tutors": tutors})
}

func (s *Server) handleCreateTutor(w http.ResponseWriter, r *http.Request) {
	var req tutorRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	tutor := req.toModel(0)
	if err := s.tutors.Create(r.Context(), tutor, req.Subjects); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusCreated, envelope{"tutor": tutor})
}

func (s *Server) handleGetTutor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "tutorId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	tutor, err := s.tutors.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"tutor": tutor})
}

func (s *Server) handleUpdateTutor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "tutorId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	var req tutorRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	tutor := req.toModel(id)
	if err := s.tutors.Update(r.Context(), tutor, req.Subjects); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"tutor": tutor})
}

func (s *Server) handleListTutorBookings(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "tutorId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	bookings, err := s.bookings.ListByTutor(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"bookings": bookings})
}

func (s *Server) handleDeleteTutor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "tutorId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.tutors.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.tutors.ListSubjects(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"subjects": subjects})
}
