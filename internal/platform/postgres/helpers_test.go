package postgres

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

var fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleUser() *domain.User {
	return &domain.User{
		ID:             uuid.MustParse("0b8a3e1c-6a55-4d57-9e0e-6f0a1c2d3e4f"),
		Username:       "seller",
		Email:          "seller@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		DisplayName:    "Sam Seller",
		Bio:            strPtr("I sell things"),
		Avatar:         strPtr("https://img.example/a.png"),
		Location:       strPtr("Austin"),
		Phone:          strPtr("555-0100"),
		CreatedAt:      fixedTime,
		UpdatedAt:      fixedTime,
	}
}

func userRows(users ...*domain.User) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "username", "email", "hashed_password", "display_name", "bio", "avatar",
		"location", "phone", "is_verified", "created_at", "updated_at",
	})
	for _, u := range users {
		rows.AddRow(u.ID, u.Username, u.Email, u.HashedPassword, u.DisplayName, u.Bio, u.Avatar,
			u.Location, u.Phone, u.IsVerified, u.CreatedAt, u.UpdatedAt)
	}
	return rows
}

func sampleProduct(sellerID uuid.UUID, title string) *domain.Product {
	return &domain.Product{
		ID:             uuid.New(),
		Title:          title,
		Description:    "Works fine",
		Price:          50,
		Category:       "sports",
		Images:         []string{"https://img.example/bike.jpg"},
		Condition:      domain.ConditionGood,
		Location:       strPtr("Austin"),
		SellerID:       sellerID,
		SellerName:     "Sam Seller",
		SellerEmail:    strPtr("seller@example.com"),
		SellerPhone:    strPtr("555-0100"),
		SellerLocation: strPtr("Austin"),
		IsAvailable:    true,
		Views:          3,
		CreatedAt:      fixedTime,
		UpdatedAt:      fixedTime,
	}
}

func productRows(products ...*domain.Product) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "title", "description", "price", "category", "images", "condition", "location",
		"seller_id", "seller_name", "seller_email", "seller_phone", "seller_location",
		"is_available", "views", "created_at", "updated_at",
	})
	for _, p := range products {
		rows.AddRow(p.ID, p.Title, p.Description, p.Price, p.Category, p.Images, string(p.Condition),
			p.Location, p.SellerID, p.SellerName, p.SellerEmail, p.SellerPhone, p.SellerLocation,
			p.IsAvailable, p.Views, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}
