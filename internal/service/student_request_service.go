package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository"
)

type StudentRequestService struct {
	pool     *pgxpool.Pool
	users    *repository.UserRepository
	requests *repository.StudentRequestRepository
	logger   *zap.Logger
}

func NewStudentRequestService(
	pool *pgxpool.Pool,
	users *repository.UserRepository,
	requests *repository.StudentRequestRepository,
	logger *zap.Logger,
) *StudentRequestService {
	return &StudentRequestService{
		pool:     pool,
		users:    users,
		requests: requests,
		logger:   logger,
	}
}

func (s *StudentRequestService) Create(ctx context.Context, request *model.StudentRequest) error {
	if err := s.validate(ctx, request); err != nil {
		return err
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return err
	}

	s.logger.Info("student request created",
		zap.Int64("request_id", request.ID),
		zap.String("request_type", string(request.RequestType)),
		zap.String("priority", string(request.Priority)),
	)

	return nil
}

func (s *StudentRequestService) Update(ctx context.Context, request *model.StudentRequest) error {
	existing, err := s.requests.GetByID(ctx, request.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return model.ErrNotFound
	}
	request.UserID = existing.UserID

	if err := s.validate(ctx, request); err != nil {
		return err
	}

	if err := s.requests.Update(ctx, request); err != nil {
		return err
	}

	s.logger.Info("student request updated", zap.Int64("request_id", request.ID))

	return nil
}

func (s *StudentRequestService) Get(ctx context.Context, id int64) (*model.StudentRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, model.ErrNotFound
	}
	return request, nil
}

func (s *StudentRequestService) List(ctx context.Context) ([]*model.StudentRequest, error) {
	return s.requests.List(ctx)
}

func (s *StudentRequestService) Delete(ctx context.Context, id int64) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("student request deleted", zap.Int64("request_id", id))

	return nil
}

func (s *StudentRequestService) validate(ctx context.Context, request *model.StudentRequest) error {
	if strings.TrimSpace(request.Description) == "" {
		return model.NewFieldError("description", model.CodeRequired, "description is required")
	}
	if !request.RequestType.Valid() {
		return model.NewFieldError("request_type", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid request type", request.RequestType))
	}
	if request.Status == "" {
		request.Status = model.RequestStatusPending
	}
	if !request.Status.Valid() {
		return model.NewFieldError("status", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid status", request.Status))
	}
	if request.Priority == "" {
		request.Priority = model.PriorityLow
	}
	if !request.Priority.Valid() {
		return model.NewFieldError("priority", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid priority", request.Priority))
	}

	owner, err := s.users.GetByID(ctx, request.UserID)
	if err != nil {
		return err
	}
	if owner == nil {
		return model.NewFieldError("user_id", model.CodeUnknownParty,
			fmt.Sprintf("user with id %d does not exist", request.UserID))
	}
	if request.Name == "" {
		request.Name = owner.FullName()
	}

	return nil
}
