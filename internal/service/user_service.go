package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "bistro/internal/errors"
	"bistro/internal/model"
	"bistro/internal/repository"
)

// ErrUserAlreadyExists is returned when signing up an email that is already stored.
var ErrUserAlreadyExists = errors.New("user already exists")

// UserService exposes user and role administration.
type UserService interface {
	CreateUser(ctx context.Context, user *model.User) (*model.InsertResult, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	PromoteToAdmin(ctx context.Context, email string) (*model.UpdateResult, error)
	DeleteUser(ctx context.Context, email string) (*model.DeleteResult, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService. Roles are never cached.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// CreateUser is idempotent by email: an existing record is left untouched
// and ErrUserAlreadyExists is returned.
func (s *userService) CreateUser(ctx context.Context, user *model.User) (*model.InsertResult, error) {
	if user.Email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput)
	}

	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	user.ID = 0
	user.Role = model.RoleUser
	if err := s.repo.Create(ctx, user); err != nil {
		// A concurrent signup won the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &model.InsertResult{Acknowledged: true, InsertedID: fmt.Sprintf("%d", user.ID)}, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// IsAdmin reports whether the stored user has the admin role. Unknown users
// are not admins.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	return user.IsAdmin(), nil
}

func (s *userService) PromoteToAdmin(ctx context.Context, email string) (*model.UpdateResult, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput)
	}
	affected, err := s.repo.SetRole(ctx, email, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("promote user: %w", err)
	}
	return &model.UpdateResult{Acknowledged: true, ModifiedCount: affected}, nil
}

func (s *userService) DeleteUser(ctx context.Context, email string) (*model.DeleteResult, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput)
	}
	affected, err := s.repo.DeleteByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: affected}, nil
}
