package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, title, description, price, category, images, condition, location,
	seller_id, seller_name, seller_email, seller_phone, seller_location,
	is_available, views, created_at, updated_at`

// defaultListLimit applies when a caller passes a non-positive limit.
const defaultListLimit = 20

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the ProductStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// WithTx implements store.ProductStore.WithTx
func (s *PostgresProductStore) WithTx(tx pgx.Tx) store.ProductStore {
	return &PostgresProductStore{db: tx, logger: s.logger}
}

// Create implements store.ProductStore.Create
// Returns store.ErrUserNotFound or store.ErrCategoryNotFound when a foreign key is violated.
func (s *PostgresProductStore) Create(ctx context.Context, p *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := s.db.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Price,
		p.Category,
		p.Images,
		string(p.Condition),
		p.Location,
		p.SellerID,
		p.SellerName,
		p.SellerEmail,
		p.SellerPhone,
		p.SellerLocation,
		p.IsAvailable,
		p.Views,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.String("product_id", p.ID.String()),
			slog.String("seller_id", p.SellerID.String()))
		return fmt.Errorf("failed to create product: %w", MapError(err))
	}

	log.Info("product created successfully",
		slog.String("product_id", p.ID.String()),
		slog.String("seller_id", p.SellerID.String()),
		slog.String("category", p.Category))
	return nil
}

// GetByID implements store.ProductStore.GetByID
func (s *PostgresProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return s.getOne(ctx, "get", query, id)
}

// GetForUpdate implements store.ProductStore.GetForUpdate
func (s *PostgresProductStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, "lock", query, id)
}

// IncrementViews implements store.ProductStore.IncrementViews
func (s *PostgresProductStore) IncrementViews(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		UPDATE products SET views = views + 1
		WHERE id = $1
		RETURNING ` + productColumns
	return s.getOne(ctx, "view", query, id)
}

func (s *PostgresProductStore) getOne(ctx context.Context, op, query string, id uuid.UUID) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := scanProduct(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("product not found",
				slog.String("op", op),
				slog.String("product_id", id.String()))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to read product",
			slog.String("op", op),
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to %s product: %w", op, err)
	}
	return p, nil
}

// ListAvailable implements store.ProductStore.ListAvailable
func (s *PostgresProductStore) ListAvailable(
	ctx context.Context,
	filter store.ProductFilter,
) ([]*domain.Product, error) {
	query, args := buildListQuery(filter)
	return s.list(ctx, query, args...)
}

// ListBySeller implements store.ProductStore.ListBySeller
func (s *PostgresProductStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE seller_id = $1
		ORDER BY created_at DESC
	`
	return s.list(ctx, query, sellerID)
}

// buildListQuery renders the availability listing for filter. Only
// positional parameters carry user input.
func buildListQuery(filter store.ProductFilter) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	b.WriteString("SELECT " + productColumns + "\n\t\tFROM products\n\t\tWHERE is_available")
	if filter.Category != "" && filter.Category != domain.AllCategoriesID {
		b.WriteString(" AND category = " + arg(filter.Category))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		p := arg("%" + escapeLike(search) + "%")
		b.WriteString(" AND (title ILIKE " + p + ` ESCAPE '\' OR description ILIKE ` + p + ` ESCAPE '\')`)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}
	b.WriteString("\n\t\tORDER BY created_at DESC, id")
	b.WriteString("\n\t\tLIMIT " + arg(limit) + " OFFSET " + arg(skip))
	return b.String(), args
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *PostgresProductStore) list(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	log.Debug("listed products", slog.Int("count", len(products)))
	return products, nil
}

// Update implements store.ProductStore.Update
func (s *PostgresProductStore) Update(ctx context.Context, p *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE products
		SET title = $2, description = $3, price = $4, category = $5, images = $6,
			condition = $7, location = $8, updated_at = $9
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Price,
		p.Category,
		p.Images,
		string(p.Condition),
		p.Location,
		p.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.String("product_id", p.ID.String()))
		return fmt.Errorf("failed to update product: %w", MapError(err))
	}
	if err := CheckRowsAffected(tag, store.ErrProductNotFound); err != nil {
		log.Debug("product not found for update", slog.String("product_id", p.ID.String()))
		return err
	}

	log.Info("product updated successfully", slog.String("product_id", p.ID.String()))
	return nil
}

// Delete implements store.ProductStore.Delete
func (s *PostgresProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if err := CheckRowsAffected(tag, store.ErrProductNotFound); err != nil {
		log.Debug("product not found for delete", slog.String("product_id", id.String()))
		return err
	}

	log.Info("product deleted successfully", slog.String("product_id", id.String()))
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p         domain.Product
		condition string
	)
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Images,
		&condition,
		&p.Location,
		&p.SellerID,
		&p.SellerName,
		&p.SellerEmail,
		&p.SellerPhone,
		&p.SellerLocation,
		&p.IsAvailable,
		&p.Views,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Condition = domain.Condition(condition)
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}
