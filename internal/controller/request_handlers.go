package controller

import (
	"net/http"

	"github.com/codetutors/tutorhub/internal/model"
)

type studentRequestRequest struct {
	UserID      int64                 `json:"user_id"`
	Name        string                `json:"name"`
	RequestType model.RequestType     `json:"request_type"`
	Description string                `json:"description"`
	Status      model.RequestStatus   `json:"status"`
	Priority    model.RequestPriority `json:"priority"`
}

func (req studentRequestRequest) toModel(id int64) *model.StudentRequest {
	return &model.StudentRequest{
		ID:          id,
		UserID:      req.UserID,
		Name:        req.Name,
		RequestType: req.RequestType,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.requests.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"requests": requests})
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var req studentRequestRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	request := req.toModel(0)
	if err := s.requests.Create(r.Context(), request); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusCreated, envelope{"request": request})
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "requestId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	request, err := s.requests.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"request": request})
}

func (s *Server) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "requestId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	var req studentRequestRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	request := req.toModel(id)
	if err := s.requests.Update(r.Context(), request); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, envelope{"request": request})
}

func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "requestId")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.requests.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
