package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"rent-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Repository defines read access to the product catalogue.
type Repository interface {
	// GetAll retrieves all products.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when the
	// product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// pgRepository implements Repository using PostgreSQL.
type pgRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRepository creates a new PostgreSQL-backed catalogue repository.
func NewRepository(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &pgRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

// GetAll retrieves all products.
func (r *pgRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, category, base_price, purchase_price, rental_options, availability, created_at
		FROM products
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *pgRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, name, category, base_price, purchase_price, rental_options, availability, created_at
		FROM products
		WHERE id = $1
	`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query product: %w", err)
		}
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, nil
	}

	product, err := scanProduct(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to scan product")
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	return product, nil
}

func scanProduct(row pgx.Rows) (*model.Product, error) {
	var (
		product    model.Product
		optionsRaw []byte
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.BasePrice,
		&product.PurchasePrice,
		&optionsRaw,
		&product.Availability,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(optionsRaw) > 0 {
		if err := json.Unmarshal(optionsRaw, &product.RentalOptions); err != nil {
			return nil, fmt.Errorf("failed to decode rental options: %w", err)
		}
	}

	return &product, nil
}
