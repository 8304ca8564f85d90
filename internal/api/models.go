package api

import (
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/google/uuid"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username    string  `json:"username"     validate:"required,min=3,max=50"`
	Email       string  `json:"email"        validate:"required,email"`
	Password    string  `json:"password"     validate:"required,min=6,max=72"`
	DisplayName string  `json:"display_name" validate:"required,min=1,max=100"`
	Bio         *string `json:"bio"          validate:"omitempty,max=500"`
	Location    *string `json:"location"     validate:"omitempty,max=100"`
	Phone       *string `json:"phone"        validate:"omitempty,max=20"`
}

func (r RegisterRequest) params() service.RegisterParams {
	return service.RegisterParams{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		DisplayName: r.DisplayName,
		Profile: domain.UserProfile{
			Bio:      r.Bio,
			Location: r.Location,
			Phone:    r.Phone,
		},
	}
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse defines the successful response for the login endpoint.
type TokenResponse struct {
	// AccessToken is the JWT used for API authorization
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`

	User UserResponse `json:"user"`
}

// UserResponse is the public view of a user. The password hash never leaves the service.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Bio         *string   `json:"bio"`
	Avatar      *string   `json:"avatar"`
	Location    *string   `json:"location"`
	Phone       *string   `json:"phone"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		Location:    u.Location,
		Phone:       u.Phone,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
	}
}

// UpdateUserRequest is a partial profile update. Omitted fields are left as they are;
// identity fields (email, username, password) are not accepted.
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio"          validate:"omitempty,max=500"`
	Avatar      *string `json:"avatar"       validate:"omitempty,max=2048"`
	Location    *string `json:"location"     validate:"omitempty,max=100"`
	Phone       *string `json:"phone"        validate:"omitempty,max=20"`
}

func (r UpdateUserRequest) profile() domain.UserProfile {
	return domain.UserProfile{
		DisplayName: r.DisplayName,
		Bio:         r.Bio,
		Avatar:      r.Avatar,
		Location:    r.Location,
		Phone:       r.Phone,
	}
}

// ProductRequest is the body of product create and update requests.
// Update is a full replacement, so the same shape serves both.
type ProductRequest struct {
	Title       string   `json:"title"       validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=1000"`
	Price       float64  `json:"price"       validate:"gt=0,lte=9999999999.99"`
	Category    string   `json:"category"    validate:"required,max=50"`
	Images      []string `json:"images"      validate:"max=10,dive,required"`
	Condition   string   `json:"condition"   validate:"required,oneof=new like_new good fair poor"`
	Location    *string  `json:"location"    validate:"omitempty,max=100"`
}

func (r ProductRequest) details() domain.ProductDetails {
	return domain.ProductDetails{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Images:      r.Images,
		Condition:   domain.Condition(r.Condition),
		Location:    r.Location,
	}
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse carries a category product count.
type CountResponse struct {
	Count int64 `json:"count"`
}
