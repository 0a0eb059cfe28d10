package user

import (
	"context"
	defError "errors"
	"lexdraft/internal/domain"
	"lexdraft/internal/errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service defines the interface for user business logic
type Service interface {
	Register(ctx context.Context, user *domain.User) error
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, profile ProfileUpdate) (*domain.User, error)
	IncreaseTokenVersion(ctx context.Context, id string) error
}

// ProfileUpdate carries the editable profile fields; nil fields are left untouched
type ProfileUpdate struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
}

// DefaultService implements Service
type DefaultService struct {
	repository UserRepository
}

// NewService creates a new user service
func NewService(repository UserRepository) Service {
	return &DefaultService{repository: repository}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register registers a new user
func (s *DefaultService) Register(ctx context.Context, user *domain.User) error {
	user.Email = normalizeEmail(user.Email)

	// Check if user with email already exists
	_, err := s.repository.FindByEmail(ctx, user.Email)
	if err != nil && !defError.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		return errors.UnprocessableEntity("User already registered", nil).WithDetail("email", "taken")
	}

	// Hash the password before saving
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.UnprocessableEntity("Password cannot be used", err)
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""
	user.IsActive = true

	return s.repository.Create(ctx, user)
}

// Login authenticates a user
func (s *DefaultService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repository.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Unauthorized("Invalid email or password", err)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, errors.Unauthorized("User is not active", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	return user, nil
}

// GetUserByID gets a user by ID
func (s *DefaultService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("User not found", err)
		}
		return nil, err
	}
	return user, nil
}

func (s *DefaultService) UpdateProfile(ctx context.Context, id string, profile ProfileUpdate) (*domain.User, error) {
	changes := map[string]any{}
	if profile.FullName != nil {
		name := strings.TrimSpace(*profile.FullName)
		if name == "" {
			return nil, errors.UnprocessableEntity("Full name cannot be empty", nil).WithDetail("full_name", "required")
		}
		changes["full_name"] = name
	}
	if profile.Bio != nil {
		changes["bio"] = *profile.Bio
	}
	if profile.AvatarURL != nil {
		changes["avatar_url"] = strings.TrimSpace(*profile.AvatarURL)
	}

	if len(changes) > 0 {
		if err := s.repository.UpdateProfile(ctx, id, changes); err != nil {
			if defError.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.NotFound("User not found", err)
			}
			return nil, err
		}
	}

	return s.GetUserByID(ctx, id)
}

func (s *DefaultService) IncreaseTokenVersion(ctx context.Context, id string) error {
	return s.repository.IncreaseTokenVersion(ctx, id)
}
