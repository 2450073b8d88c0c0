package controller

import (
	"net/http"

	"github.com/codetutors/tutorhub/internal/model"
)

type studentRequest struct {
	UserID    int64               `json:"user_id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Allocated bool                `json:"allocated"`
	Payment   model.PaymentStatus `json:"payment"`
}

func (req studentRequest) toModel(id int64) *model.Student {
	return &model.Student{
		ID:        id,
		UserID:    req.UserID,
		Name:      req.Name,
		Email:     req.Email,
		Allocated: req.Allocated,
		Payment:   req.Payment,
	}
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.students.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"students": students})
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	student := req.toModel(0)
	if err := s.students.Create(r.Context(), student); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusCreated, envelope{"student": student})
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "studentId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	student, err := s.students.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"student": student})
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "studentId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	var req studentRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	student := req.toModel(id)
	if err := s.students.Update(r.Context(), student); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"student": student})
}

func (s *Server) handleListStudentBookings(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "studentId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	bookings, err := s.bookings.ListByStudent(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"bookings": bookings})
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "studentId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.students.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
