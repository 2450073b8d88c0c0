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

type TutorService struct {
	pool     *pgxpool.Pool
	users    *repository.UserRepository
	tutors   *repository.TutorRepository
	subjects *repository.SubjectRepository
	logger   *zap.Logger
}

func NewTutorService(
	pool *pgxpool.Pool,
	users *repository.UserRepository,
	tutors *repository.TutorRepository,
	subjects *repository.SubjectRepository,
	logger *zap.Logger,
) *TutorService {
	return &TutorService{
		pool:     pool,
		users:    users,
		tutors:   tutors,
		subjects: subjects,
		logger:   logger,
	}
}

// Create saves a tutor and its subject set. A tutor saved without subjects
// gets the default subject attached.
func (s *TutorService) Create(ctx context.Context, tutor *model.Tutor, subjectNames []string) error {
	if tutor.Rate.IsZero() {
		tutor.Rate = model.DefaultRate
	}
	if err := s.validate(ctx, tutor, 0); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tutors := s.tutors.WithTx(tx)

	if err := tutors.Create(ctx, tutor); err != nil {
		if base.IsUniqueViolation(err) {
			return model.NewFieldError("email", model.CodeExists,
				"a tutor with this email already exists")
		}
		return err
	}

	if err := s.saveSubjects(ctx, tx, tutor, subjectNames); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("tutor created",
		zap.Int64("tutor_id", tutor.ID),
		zap.String("rate", tutor.Rate.StringFixed(2)),
	)

	return nil
}

func (s *TutorService) Update(ctx context.Context, tutor *model.Tutor, subjectNames []string) error {
	existing, err := s.tutors.GetByID(ctx, tutor.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return model.ErrNotFound
	}
	tutor.UserID = existing.UserID // ownership is immutable

	if err := s.validate(ctx, tutor, tutor.ID); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tutors := s.tutors.WithTx(tx)

	if err := tutors.Update(ctx, tutor); err != nil {
		if base.IsUniqueViolation(err) {
			return model.NewFieldError("email", model.CodeExists,
				"a tutor with this email already exists")
		}
		return err
	}

	if subjectNames != nil {
		if err := tutors.ReplaceSubjects(ctx, tutor.ID, nil); err != nil {
			return err
		}
		if err := s.saveSubjects(ctx, tx, tutor, subjectNames); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("tutor updated", zap.Int64("tutor_id", tutor.ID))

	return nil
}

func (s *TutorService) Get(ctx context.Context, id int64) (*model.Tutor, error) {
	tutor, err := s.tutors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tutor == nil {
		return nil, model.ErrNotFound
	}

	if tutor.Subjects, err = s.tutors.GetSubjects(ctx, id); err != nil {
		return nil, err
	}
	if tutor.User, err = s.users.GetByID(ctx, tutor.UserID); err != nil {
		return nil, err
	}

	return tutor, nil
}

func (s *TutorService) List(ctx context.Context) ([]*model.Tutor, error) {
	tutors, err := s.tutors.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, tutor := range tutors {
		if tutor.Subjects, err = s.tutors.GetSubjects(ctx, tutor.ID); err != nil {
			return nil, err
		}
	}

	return tutors, nil
}

func (s *TutorService) Delete(ctx context.Context, id int64) error {
	if err := s.tutors.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("tutor deleted", zap.Int64("tutor_id", id))

	return nil
}

func (s *TutorService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.subjects.List(ctx)
}

// saveSubjects attaches the named subjects, creating unseen ones, and falls
// back to the default subject when the set would be empty.
func (s *TutorService) saveSubjects(ctx context.Context, tx base.Querier, tutor *model.Tutor, subjectNames []string) error {
	subjects := s.subjects.WithTx(tx)
	tutors := s.tutors.WithTx(tx)

	if len(subjectNames) == 0 {
		subjectNames = []string{model.DefaultSubjectName}
	}

	tutor.Subjects = tutor.Subjects[:0]
	for _, name := range subjectNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		subject, err := subjects.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if err := tutors.AttachSubject(ctx, tutor.ID, subject.ID); err != nil {
			return err
		}
		tutor.Subjects = append(tutor.Subjects, *subject)
	}

	if len(tutor.Subjects) == 0 {
		subject, err := subjects.GetOrCreate(ctx, model.DefaultSubjectName)
		if err != nil {
			return err
		}
		if err := tutors.AttachSubject(ctx, tutor.ID, subject.ID); err != nil {
			return err
		}
		tutor.Subjects = append(tutor.Subjects, *subject)
	}

	return nil
}

func (s *TutorService) validate(ctx context.Context, tutor *model.Tutor, excludeID int64) error {
	if strings.TrimSpace(tutor.Name) == "" {
		return model.NewFieldError("name", model.CodeRequired, "name is required")
	}
	if strings.TrimSpace(tutor.Email) == "" {
		return model.NewFieldError("email", model.CodeRequired, "email is required")
	}
	if !model.ValidRate(tutor.Rate) {
		return model.NewFieldError("rate", model.CodeInvalid,
			fmt.Sprintf("rate must be greater than 0 and less than %s", model.MaxRate.StringFixed(0)))
	}

	if tutor.UserID != 0 {
		owner, err := s.users.GetByID(ctx, tutor.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return model.NewFieldError("user_id", model.CodeUnknownParty,
				fmt.Sprintf("user with id %d does not exist", tutor.UserID))
		}
	}

	taken, err := s.tutors.EmailTaken(ctx, tutor.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return model.NewFieldError("email", model.CodeExists,
			"a tutor with this email already exists")
	}

	return nil
}
