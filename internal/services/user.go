package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orgcalendar/internal/domain"
	"orgcalendar/internal/policy"
)

// memberRoles are the roles listed by ListMembers.
var memberRoles = []domain.Role{domain.RoleMember, domain.RoleSecretary, domain.RoleConvenor}

type userService struct {
	userRepo       domain.UserRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewUserService creates a UserService backed by userRepo.
func NewUserService(userRepo domain.UserRepository, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *userService) List(ctx context.Context, actor domain.Principal) ([]*domain.User, error) {
	if err := policy.RequireListUsers(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) ListMembers(ctx context.Context, _ domain.Principal) ([]*domain.UserRef, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	members, err := s.userRepo.ListActiveByRoles(ctx, memberRoles)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *userService) GetByID(ctx context.Context, _ domain.Principal, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.get(ctx, id)
}

func (s *userService) Update(ctx context.Context, actor domain.Principal, id string, in domain.UserUpdate) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireUserUpdate(actor, user.ID, in); err != nil {
		return nil, err
	}

	var ve domain.ValidationError
	if name, ok := trimmed(in.Name); ok {
		if name == "" {
			ve.Add("name", "Name cannot be empty")
		}
		user.Name = name
	}
	if phone, ok := trimmed(in.Phone); ok {
		user.Phone = phone
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			ve.Add("role", "Invalid role")
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
