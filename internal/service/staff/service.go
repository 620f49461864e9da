package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
	apperrors "github.com/hms/hms-api/pkg/errors"
)

const bcryptCost = 12

type Service interface {
	List(ctx context.Context) ([]*model.User, error)
	Create(ctx context.Context, req *model.CreateStaffRequest) (*model.User, error)
	ListRoles(ctx context.Context) ([]string, error)
	ListDoctors(ctx context.Context) ([]*model.DoctorProfile, error)
}

type service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return users, nil
}

func (s *service) Create(ctx context.Context, req *model.CreateStaffRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user, req.Role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Validation("username or email already in use")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation(fmt.Sprintf("unknown role %q", req.Role))
		}
		return nil, fmt.Errorf("failed to create staff user: %w", err)
	}
	return user, nil
}

func (s *service) ListRoles(ctx context.Context) ([]string, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *service) ListDoctors(ctx context.Context) ([]*model.DoctorProfile, error) {
	profiles, err := s.repo.ListDoctorProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor profiles: %w", err)
	}
	return profiles, nil
}
