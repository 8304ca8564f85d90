package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, name, icon, product_count, color, created_at`

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx pgx.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

// Seed implements store.CategoryStore.Seed
// ON CONFLICT DO NOTHING makes concurrent first calls safe: whichever insert
// loses the race is silently skipped.
func (s *PostgresCategoryStore) Seed(ctx context.Context, categories []*domain.Category) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO categories (id, name, icon, product_count, color, created_at)
		VALUES ($1, $2, $3, 0, $4, $5)
		ON CONFLICT DO NOTHING
	`
	inserted := 0
	for _, c := range categories {
		tag, err := s.db.Exec(ctx, query, c.ID, c.Name, c.Icon, c.Color, c.CreatedAt)
		if err != nil {
			log.Error("failed to seed category",
				slog.String("error", err.Error()),
				slog.String("category_id", c.ID))
			return inserted, fmt.Errorf("failed to seed category %q: %w", c.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if inserted > 0 {
		log.Info("seeded categories", slog.Int("inserted", inserted))
	}
	return inserted, nil
}

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, c *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO categories (id, name, icon, product_count, color, created_at)
		VALUES ($1, $2, $3, 0, $4, $5)
	`
	if _, err := s.db.Exec(ctx, query, c.ID, c.Name, c.Icon, c.Color, c.CreatedAt); err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("category already exists", slog.String("category_id", c.ID))
			return mapped
		}
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("category_id", c.ID))
		return fmt.Errorf("failed to create category: %w", mapped)
	}

	log.Info("category created successfully", slog.String("category_id", c.ID))
	return nil
}

// Get implements store.CategoryStore.Get
func (s *PostgresCategoryStore) Get(ctx context.Context, id string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("category not found", slog.String("category_id", id))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category",
			slog.String("error", err.Error()),
			slog.String("category_id", id))
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`)
	if err != nil {
		log.Error("failed to query categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// AdjustCount implements store.CategoryStore.AdjustCount
// The increment happens in a single statement so concurrent adjustments never
// lose updates.
func (s *PostgresCategoryStore) AdjustCount(ctx context.Context, id string, delta int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE categories
		SET product_count = GREATEST(product_count + $2, 0)
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, id, delta)
	if err != nil {
		log.Error("failed to adjust category count",
			slog.String("error", err.Error()),
			slog.String("category_id", id),
			slog.Int("delta", delta))
		return fmt.Errorf("failed to adjust category count: %w", err)
	}
	if err := CheckRowsAffected(tag, store.ErrCategoryNotFound); err != nil {
		log.Warn("category not found for count adjustment",
			slog.String("category_id", id),
			slog.Int("delta", delta))
		return err
	}

	log.Debug("category count adjusted",
		slog.String("category_id", id),
		slog.Int("delta", delta))
	return nil
}

// TotalCount implements store.CategoryStore.TotalCount
func (s *PostgresCategoryStore) TotalCount(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(SUM(product_count), 0)::BIGINT
		FROM categories
		WHERE id <> $1
	`
	var total int64
	if err := s.db.QueryRow(ctx, query, domain.AllCategoriesID).Scan(&total); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to sum category counts",
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to sum category counts: %w", err)
	}
	return total, nil
}

// Reconcile implements store.CategoryStore.Reconcile
func (s *PostgresCategoryStore) Reconcile(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		WITH live AS (
			SELECT c.id, COUNT(p.id) AS n
			FROM categories c
			LEFT JOIN products p ON p.category = c.id AND p.is_available
			WHERE c.id <> $1
			GROUP BY c.id
		)
		UPDATE categories c
		SET product_count = live.n
		FROM live
		WHERE c.id = live.id AND c.product_count <> live.n
	`
	tag, err := s.db.Exec(ctx, query, domain.AllCategoriesID)
	if err != nil {
		log.Error("failed to reconcile category counts", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to reconcile category counts: %w", err)
	}

	changed := int(tag.RowsAffected())
	if changed > 0 {
		log.Warn("category counts drifted and were repaired", slog.Int("categories", changed))
	}
	return changed, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.ProductCount, &c.Color, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
