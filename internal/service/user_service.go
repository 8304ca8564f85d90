package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/service/auth"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/google/uuid"
)

// RegisterParams carries the fields of a registration request.
type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Profile     domain.UserProfile
}

// UserService provides user registration, authentication and profile operations.
type UserService interface {
	// Register creates a new user. Returns store.ErrEmailExists or
	// store.ErrUsernameExists (checked in that order) on a collision.
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)

	// Authenticate checks credentials. Unknown emails and wrong passwords both
	// return ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID. Returns store.ErrUserNotFound if absent.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile merges the supplied profile fields into the user.
	// Returns ErrForbidden unless actingUserID == userID.
	UpdateProfile(ctx context.Context, userID, actingUserID uuid.UUID, profile domain.UserProfile) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger.With("component", "user_service"),
	}
}

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(params.Username, params.Email, params.Password, params.DisplayName, params.Profile)
	if err != nil {
		log.Debug("registration rejected by validation", "error", err)
		return nil, err
	}

	// Friendly pre-checks. The unique indexes still decide if two
	// registrations race past these.
	taken, err := s.userStore.EmailExists(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		log.Debug("registration with existing email")
		return nil, store.ErrEmailExists
	}
	taken, err = s.userStore.UsernameExists(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		log.Debug("registration with existing username", "username", user.Username)
		return nil, store.ErrUsernameExists
	}

	user.HashedPassword, err = s.hasher.Hash(params.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("registration lost a uniqueness race", "field", store.DuplicateField(err))
			return nil, err
		}
		log.Error("failed to save user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", "error", err)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !s.hasher.Verify(user.HashedPassword, password) {
		log.Debug("login with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	log.Debug("user authenticated", "user_id", user.ID)
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateProfile implements UserService.UpdateProfile
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID, actingUserID uuid.UUID,
	profile domain.UserProfile,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID != actingUserID {
		log.Warn("attempt to edit another user's profile",
			"user_id", userID,
			"acting_user_id", actingUserID)
		return nil, ErrForbidden
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := user.ApplyProfile(profile); err != nil {
		return nil, err
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		log.Error("failed to update user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("user profile updated", "user_id", userID)
	return user, nil
}
