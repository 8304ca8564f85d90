package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryRows(cats ...*domain.Category) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "name", "icon", "product_count", "color", "created_at"})
	for _, c := range cats {
		rows.AddRow(c.ID, c.Name, c.Icon, c.ProductCount, c.Color, c.CreatedAt)
	}
	return rows
}

func TestCategoryStoreSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	seed := domain.DefaultCategories()

	mock := newMock(t)
	for i, c := range seed {
		affected := int64(1)
		if i%2 == 0 {
			affected = 0 // already present
		}
		mock.ExpectExec(`INSERT INTO categories .+ ON CONFLICT DO NOTHING`).
			WithArgs(c.ID, c.Name, c.Icon, c.Color, c.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", affected))
	}

	inserted, err := NewPostgresCategoryStore(mock, discardLogger()).Seed(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, len(seed)/2, inserted)
}

func TestCategoryStoreSeedError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO categories`).WillReturnError(errors.New("boom"))

	_, err := NewPostgresCategoryStore(mock, discardLogger()).Seed(context.Background(), domain.DefaultCategories())
	assert.ErrorContains(t, err, `"all"`)
}

func TestCategoryStoreCreate(t *testing.T) {
	ctx := context.Background()
	c, err := domain.NewCategory("toys", "Toys", "Puzzle", "")
	require.NoError(t, err)

	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO categories`).
		WithArgs(c.ID, c.Name, c.Icon, c.Color, c.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO categories`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "categories_name_key"})

	s := NewPostgresCategoryStore(mock, discardLogger())
	require.NoError(t, s.Create(ctx, c))
	assert.ErrorIs(t, s.Create(ctx, c), store.ErrCategoryExists)
}

func TestCategoryStoreGetAndList(t *testing.T) {
	ctx := context.Background()
	books := &domain.Category{ID: "books", Name: "Books", Icon: "Book", ProductCount: 2, Color: "c", CreatedAt: fixedTime}
	all := &domain.Category{ID: "all", Name: "All Categories", Icon: "Grid3X3", Color: "c", CreatedAt: fixedTime}

	mock := newMock(t)
	mock.ExpectQuery(`FROM categories WHERE id = \$1`).WithArgs("books").WillReturnRows(categoryRows(books))
	mock.ExpectQuery(`FROM categories WHERE id = \$1`).WithArgs("nope").WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`FROM categories ORDER BY name`).WillReturnRows(categoryRows(all, books))

	s := NewPostgresCategoryStore(mock, discardLogger())
	got, err := s.Get(ctx, "books")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ProductCount)

	_, err = s.Get(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "all", list[0].ID)
}

func TestCategoryStoreAdjustCount(t *testing.T) {
	ctx := context.Background()

	mock := newMock(t)
	mock.ExpectExec(`SET product_count = GREATEST\(product_count \+ \$2, 0\)`).
		WithArgs("sports", 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`SET product_count = GREATEST`).
		WithArgs("ghost", -1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	s := NewPostgresCategoryStore(mock, discardLogger())
	require.NoError(t, s.AdjustCount(ctx, "sports", 1))
	assert.ErrorIs(t, s.AdjustCount(ctx, "ghost", -1), store.ErrCategoryNotFound)
}

func TestCategoryStoreTotalCountExcludesAggregate(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SUM\(product_count\).+WHERE id <> \$1`).
		WithArgs(domain.AllCategoriesID).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(int64(7)))

	total, err := NewPostgresCategoryStore(mock, discardLogger()).TotalCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
}

func TestCategoryStoreReconcile(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`WITH live AS .+ UPDATE categories`).
		WithArgs(domain.AllCategoriesID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	changed, err := NewPostgresCategoryStore(mock, discardLogger()).Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
}
