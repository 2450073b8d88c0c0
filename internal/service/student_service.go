package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

type StudentService struct {
	pool     *pgxpool.Pool
	users    *repository.UserRepository
	students *repository.StudentRepository
	logger   *zap.Logger
}

func NewStudentService(
	pool *pgxpool.Pool,
	users *repository.UserRepository,
	students *repository.StudentRepository,
	logger *zap.Logger,
) *StudentService {
	return &StudentService{
		pool:     pool,
		users:    users,
		students: students,
		logger:   logger,
	}
}

func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	if err := s.validate(ctx, student, 0); err != nil {
		return err
	}

	if err := s.students.Create(ctx, student); err != nil {
		if base.IsUniqueViolation(err) {
			return model.NewFieldError("email", model.CodeExists,
				"a student with this email already exists")
		}
		return err
	}

	s.logger.Info("student created", zap.Int64("student_id", student.ID))

	return nil
}

func (s *StudentService) Update(ctx context.Context, student *model.Student) error {
	existing, err := s.students.GetByID(ctx, student.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return model.ErrNotFound
	}
	student.UserID = existing.UserID // ownership is immutable

	if err := s.validate(ctx, student, student.ID); err != nil {
		return err
	}

	if err := s.students.Update(ctx, student); err != nil {
		if base.IsUniqueViolation(err) {
			return model.NewFieldError("email", model.CodeExists,
				"a student with this email already exists")
		}
		return err
	}

	s.logger.Info("student updated", zap.Int64("student_id", student.ID))

	return nil
}

func (s *StudentService) Get(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, model.ErrNotFound
	}

	if student.User, err = s.users.GetByID(ctx, student.UserID); err != nil {
		return nil, err
	}

	return student, nil
}

func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	return s.students.List(ctx)
}

func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("student deleted", zap.Int64("student_id", id))

	return nil
}

func (s *StudentService) validate(ctx context.Context, student *model.Student, excludeID int64) error {
	if strings.TrimSpace(student.Name) == "" {
		return model.NewFieldError("name", model.CodeRequired, "name is required")
	}
	if strings.TrimSpace(student.Email) == "" {
		return model.NewFieldError("email", model.CodeRequired, "email is required")
	}
	if student.Payment == "" {
		student.Payment = model.PaymentPending
	}
	if !student.Payment.Valid() {
		return model.NewFieldError("payment", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid payment status", student.Payment))
	}

	if student.UserID != 0 {
		owner, err := s.users.GetByID(ctx, student.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return model.NewFieldError("user_id", model.CodeUnknownParty,
				fmt.Sprintf("user with id %d does not exist", student.UserID))
		}
	}

	taken, err := s.students.EmailTaken(ctx, student.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return model.NewFieldError("email", model.CodeExists,
			"a student with this email already exists")
	}

	return nil
}
