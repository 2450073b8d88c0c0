package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/codetutors/tutorhub/internal/model"
	"github.com/codetutors/tutorhub/internal/repository"
	"github.com/codetutors/tutorhub/internal/repository/base"
)

// UserService owns the user lifecycle, including the user-type state
// transition: a student-typed user has exactly one Student record, a
// tutor-typed user exactly one Tutor record, and switching type away
// deletes the dependent record.
type UserService struct {
	pool     *pgxpool.Pool
	users    *repository.UserRepository
	students *repository.StudentRepository
	tutors   *repository.TutorRepository
	subjects *repository.SubjectRepository
	logger   *zap.Logger
}

func NewUserService(
	pool *pgxpool.Pool,
	users *repository.UserRepository,
	students *repository.StudentRepository,
	tutors *repository.TutorRepository,
	subjects *repository.SubjectRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		pool:     pool,
		users:    users,
		students: students,
		tutors:   tutors,
		subjects: subjects,
		logger:   logger,
	}
}

func (s *UserService) Create(ctx context.Context, user *model.User) error {
	if user.UserType == "" {
		user.UserType = model.UserTypeStudent
	}
	if err := validateUserFields(user); err != nil {
		return err
	}
	forceAdminType(user)

	if err := s.checkUsernameFree(ctx, user.Username, 0); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
		return mapUserUniqueViolation(err)
	}

	if err := syncDependents(ctx, s.dependents(tx), user); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("user created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("user_type", string(user.UserType)),
	)

	return nil
}

func (s *UserService) Update(ctx context.Context, user *model.User) error {
	if err := validateUserFields(user); err != nil {
		return err
	}
	forceAdminType(user)

	if err := s.checkUsernameFree(ctx, user.Username, user.ID); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	users := s.users.WithTx(tx)

	existing, err := users.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return model.ErrNotFound
	}

	if err := users.Update(ctx, user); err != nil {
		return mapUserUniqueViolation(err)
	}

	if err := syncDependents(ctx, s.dependents(tx), user); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("user updated", zap.Int64("user_id", user.ID))

	return nil
}

// SetUserType is the explicit state transition for user_type. It updates the
// user and deterministically creates/deletes the dependent Student or Tutor
// record in the same transaction.
func (s *UserService) SetUserType(ctx context.Context, id int64, newType model.UserType) (*model.User, error) {
	if !newType.Valid() {
		return nil, model.NewFieldError("user_type", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid user type", newType))
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	users := s.users.WithTx(tx)

	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrNotFound
	}

	user.UserType = newType
	forceAdminType(user)

	if err := users.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := syncDependents(ctx, s.dependents(tx), user); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("user type changed",
		zap.Int64("user_id", user.ID),
		zap.String("user_type", string(user.UserType)),
	)

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

// Delete removes the user; dependent Student/Tutor rows cascade at the
// schema level.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Int64("user_id", id))

	return nil
}

// dependents scopes the dependent-record repositories to tx.
func (s *UserService) dependents(tx pgx.Tx) storageDependents {
	return storageDependents{
		students: s.students.WithTx(tx),
		tutors:   s.tutors.WithTx(tx),
		subjects: s.subjects.WithTx(tx),
	}
}

// checkUsernameFree is the application-level counterpart of the username
// unique index; the index remains the backstop under concurrency.
func (s *UserService) checkUsernameFree(ctx context.Context, username string, excludeID int64) error {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != excludeID {
		return model.NewFieldError("username", model.CodeExists, "this username is already taken")
	}
	return nil
}

func validateUserFields(user *model.User) error {
	if !model.ValidUsername(user.Username) {
		return model.NewFieldError("username", model.CodeInvalid,
			"username must consist of @ followed by at least three alphanumericals")
	}
	if strings.TrimSpace(user.Email) == "" {
		return model.NewFieldError("email", model.CodeRequired, "email is required")
	}
	if !user.UserType.Valid() {
		return model.NewFieldError("user_type", model.CodeInvalidChoice,
			fmt.Sprintf("%q is not a valid user type", user.UserType))
	}
	return nil
}

// forceAdminType keeps the @johndoe account admin-typed no matter what the
// caller asked for.
func forceAdminType(user *model.User) {
	if user.Username == model.AdminUsername {
		user.UserType = model.UserTypeAdmin
	}
}

func mapUserUniqueViolation(err error) error {
	if !base.IsUniqueViolation(err) {
		return err
	}
	if strings.Contains(base.ViolatedConstraint(err), "email") {
		return model.NewFieldError("email", model.CodeExists, "a user with this email already exists")
	}
	return model.NewFieldError("username", model.CodeExists, "this username is already taken")
}
