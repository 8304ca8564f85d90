package store

import (
	"context"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The caller sets HashedPassword.
	// Returns ErrEmailExists or ErrUsernameExists when a unique constraint
	// rejects the insert, whichever column collided.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their (normalised) email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailExists and UsernameExists back the friendly pre-checks done before
	// an insert. The unique indexes remain the real enforcement.
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)

	// Update writes the profile fields and UpdatedAt of an existing user.
	// Identity columns (email, username, password hash) are not touched.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx pgx.Tx) UserStore
}
