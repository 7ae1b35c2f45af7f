package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

// Service handles user business logic
type Service struct {
	repo   Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates a new user service
func NewService(repo Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		logger: log.WithComponent("user_service"),
		now:    time.Now,
	}
}

// Register registers a new user
// Returns the created user (without password hash exposed) and any error
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*User, error) {
	now := s.now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		FullName:  strings.TrimSpace(fullName),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.ValidateEmail(); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check if user exists: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithContext(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login authenticates a user with email and password
// Returns the user if authentication succeeds
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Don't reveal that the user doesn't exist
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// Last-login bookkeeping must not block a successful login
	user.UpdateLastLogin(s.now().UTC())
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("failed to update last login", "user_id", user.ID)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
