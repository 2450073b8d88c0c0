package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/model"
)

type envelope map[string]any

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	body = append(body, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// decodeJSON reads the request body into dst, rejecting unknown fields and
// trailing content.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", strings.TrimSuffix(name, "Id")+" id")
	}
	return id, nil
}

// respondError maps service errors onto HTTP statuses: validation failures
// become 422, missing records 404, anything else 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if fe, ok := model.AsFieldError(err); ok {
		s.respondJSON(w, r, http.StatusUnprocessableEntity, envelope{
			"errors": []*model.FieldError{fe},
		})
		return
	}
	if errors.Is(err, model.ErrNotFound) {
		s.errorMessage(w, r, http.StatusNotFound, "the requested resource could not be found")
		return
	}
	s.serverError(w, r, err)
}

func (s *Server) errorMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.respondJSON(w, r, status, envelope{"error": message})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(
		"server error",
		zap.String("request_id", r.Header.Get(requestIDHeader)),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
		zap.Error(err),
	)

	s.errorMessage(w, r, http.StatusInternalServerError,
		"the server encountered a problem and could not process your request")
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.errorMessage(w, r, http.StatusBadRequest, err.Error())
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	s.errorMessage(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (s *Server) methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	s.errorMessage(w, r, http.StatusMethodNotAllowed,
		fmt.Sprintf("the %s method is not supported for this resource", r.Method))
}
