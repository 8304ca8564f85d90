package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Condition describes the wear of a listed item.
type Condition string

// Allowed product conditions.
const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// IsValid reports whether c is one of the allowed conditions.
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Field bounds for product records.
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
	CategoryMaxLength    = 50
	MaxProductImages     = 10

	// MaxPrice is the largest value the price column (NUMERIC(12, 2)) holds.
	MaxPrice = 9999999999.99
)

// Product is a secondhand item listed by a seller.
//
// The Seller* fields are a snapshot of the seller's profile taken when the
// listing was created; they are not refreshed when the profile changes.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Condition   Condition `json:"condition"`
	Location    *string   `json:"location"`

	SellerID       uuid.UUID `json:"seller_id"`
	SellerName     string    `json:"seller_name"`
	SellerEmail    *string   `json:"seller_email"`
	SellerPhone    *string   `json:"seller_phone"`
	SellerLocation *string   `json:"seller_location"`

	IsAvailable bool      `json:"is_available"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductDetails are the owner-editable fields of a listing.
type ProductDetails struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Images      []string
	Condition   Condition
	Location    *string
}

// Validate checks the listing fields.
func (d ProductDetails) Validate() error {
	if err := checkLength("title", d.Title, 1, TitleMaxLength); err != nil {
		return err
	}
	if err := checkLength("description", d.Description, 1, DescriptionMaxLength); err != nil {
		return err
	}
	if err := validatePrice(d.Price); err != nil {
		return err
	}
	if err := checkLength("category", d.Category, 1, CategoryMaxLength); err != nil {
		return err
	}
	if d.Category == AllCategoriesID {
		return NewValidationError("category", "must be a concrete category", nil)
	}
	if !d.Condition.IsValid() {
		return NewValidationError("condition",
			"must be one of new, like_new, good, fair, poor", ErrInvalidCondition)
	}
	if len(d.Images) > MaxProductImages {
		return NewValidationError("images", "has too many entries", nil)
	}
	for _, img := range d.Images {
		if strings.TrimSpace(img) == "" {
			return NewValidationError("images", "must not contain empty entries", nil)
		}
	}
	return checkOptionalLength("location", d.Location, LocationMaxLength)
}

// validatePrice accepts positive amounts up to MaxPrice with at most two
// decimal places, the same range the price column stores without rounding.
func validatePrice(price float64) error {
	if !(price > 0) {
		return NewValidationError("price", "must be greater than zero", ErrInvalidPrice)
	}
	if price > MaxPrice {
		return NewValidationError("price", "must be at most 9999999999.99", ErrInvalidPrice)
	}
	cents := price * 100
	if math.Abs(cents-math.Round(cents)) > 1e-3 {
		return NewValidationError("price", "must have at most 2 decimal places", ErrInvalidPrice)
	}
	return nil
}

// normalized trims text fields and guarantees a non-nil image slice.
func (d ProductDetails) normalized() ProductDetails {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	if d.Images == nil {
		d.Images = []string{}
	}
	return d
}

// NewProduct creates an available listing for seller with zero views.
func NewProduct(seller *User, details ProductDetails) (*Product, error) {
	if seller == nil || seller.ID == uuid.Nil {
		return nil, NewValidationError("seller_id", "is required", ErrInvalidID)
	}

	details = details.normalized()
	if err := details.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	email := seller.Email
	p := &Product{
		ID:             uuid.New(),
		SellerID:       seller.ID,
		SellerName:     seller.DisplayName,
		SellerEmail:    &email,
		SellerPhone:    seller.Phone,
		SellerLocation: seller.Location,
		IsAvailable:    true,
		Views:          0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	p.setDetails(details)
	return p, nil
}

// Replace overwrites every editable field and refreshes UpdatedAt.
// Seller, availability and views are untouched.
func (p *Product) Replace(details ProductDetails) error {
	details = details.normalized()
	if err := details.Validate(); err != nil {
		return err
	}
	p.setDetails(details)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// OwnedBy reports whether userID is the seller of the product.
func (p *Product) OwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && p.SellerID == userID
}

func (p *Product) setDetails(d ProductDetails) {
	p.Title = d.Title
	p.Description = d.Description
	p.Price = d.Price
	p.Category = d.Category
	p.Images = d.Images
	p.Condition = d.Condition
	p.Location = d.Location
}
