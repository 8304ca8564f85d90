package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field bounds for user records.
const (
	UsernameMinLength    = 3
	UsernameMaxLength    = 50
	PasswordMinLength    = 6
	PasswordMaxLength    = 72 // bcrypt ignores bytes past 72
	DisplayNameMaxLength = 100
	BioMaxLength         = 500
	LocationMaxLength    = 100
	PhoneMaxLength       = 20
	AvatarMaxLength      = 2048
)

// User represents a registered marketplace member.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	DisplayName    string    `json:"display_name"`
	Bio            *string   `json:"bio"`
	Avatar         *string   `json:"avatar"`
	Location       *string   `json:"location"`
	Phone          *string   `json:"phone"`
	IsVerified     bool      `json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserProfile holds the optional, self-editable profile fields of a user.
// A nil field means "not supplied".
type UserProfile struct {
	DisplayName *string
	Bio         *string
	Avatar      *string
	Location    *string
	Phone       *string
}

// NewUser creates a new User with a fresh ID and timestamps.
// The email is normalised to lower case. The password is validated but not stored:
// the caller hashes it and sets HashedPassword before persisting.
func NewUser(username, email, password, displayName string, profile UserProfile) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:          uuid.New(),
		Username:    strings.TrimSpace(username),
		Email:       NormalizeEmail(email),
		DisplayName: strings.TrimSpace(displayName),
		Bio:         profile.Bio,
		Avatar:      profile.Avatar,
		Location:    profile.Location,
		Phone:       profile.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns a *ValidationError naming the first field that fails.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if err := checkLength("username", u.Username, UsernameMinLength, UsernameMaxLength); err != nil {
		return err
	}
	if !validEmail(u.Email) {
		return NewValidationError("email", "must be a valid email address", ErrInvalidEmail)
	}
	if err := checkLength("display_name", u.DisplayName, 1, DisplayNameMaxLength); err != nil {
		return err
	}
	return validateProfileFields(u.Bio, u.Avatar, u.Location, u.Phone)
}

// ApplyProfile merges the supplied profile fields into the user and refreshes UpdatedAt.
// The user is left unchanged when the result would be invalid.
func (u *User) ApplyProfile(p UserProfile) error {
	updated := *u
	if p.DisplayName != nil {
		updated.DisplayName = strings.TrimSpace(*p.DisplayName)
	}
	if p.Bio != nil {
		updated.Bio = p.Bio
	}
	if p.Avatar != nil {
		updated.Avatar = p.Avatar
	}
	if p.Location != nil {
		updated.Location = p.Location
	}
	if p.Phone != nil {
		updated.Phone = p.Phone
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*u = updated
	return nil
}

// ValidatePassword checks the plaintext password length bounds.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return NewValidationError("password", "is required", ErrInvalidPassword)
	case len(password) < PasswordMinLength:
		return NewValidationError("password", "must be at least 6 characters", ErrInvalidPassword)
	case len(password) > PasswordMaxLength:
		return NewValidationError("password", "must be at most 72 characters", ErrInvalidPassword)
	}
	return nil
}

// NormalizeEmail trims and lower-cases an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateProfileFields(bio, avatar, location, phone *string) error {
	if err := checkOptionalLength("bio", bio, BioMaxLength); err != nil {
		return err
	}
	if err := checkOptionalLength("avatar", avatar, AvatarMaxLength); err != nil {
		return err
	}
	if err := checkOptionalLength("location", location, LocationMaxLength); err != nil {
		return err
	}
	return checkOptionalLength("phone", phone, PhoneMaxLength)
}
