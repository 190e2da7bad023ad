package store

import (
	"context"
	"encoding/json"
	"fmt"

	"rent-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// Pub/sub channel carrying the id of a changed record.
	channelRecord     = "records:%s"
	channelCollection = "records:all"
)

// pgStore implements RecordStore with one JSONB document per customer in
// PostgreSQL and Redis pub/sub as the change channel. Changes are
// published after commit; subscribers re-fetch the authoritative copy, so
// rapid successive writes coalesce into the latest snapshot.
type pgStore struct {
	pool   *pgxpool.Pool
	rdb    *redis.Client
	logger zerolog.Logger
}

// New creates a PostgreSQL/Redis-backed record store.
func New(pool *pgxpool.Pool, rdb *redis.Client, logger zerolog.Logger) RecordStore {
	return &pgStore{
		pool:   pool,
		rdb:    rdb,
		logger: logger.With().Str("component", "record-store").Logger(),
	}
}

// EnsureRecord creates the record if it does not exist yet.
func (s *pgStore) EnsureRecord(ctx context.Context, record *model.CustomerRecord) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	query := `
		INSERT INTO customer_records (id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := s.pool.Exec(ctx, query, record.ID, doc); err != nil {
		s.logger.Error().Err(err).Str("customer_id", record.ID).Msg("failed to ensure record")
		return fmt.Errorf("failed to ensure record: %w", err)
	}

	return nil
}

// GetRecord fetches the authoritative copy of one customer record.
func (s *pgStore) GetRecord(ctx context.Context, customerID string) (*model.CustomerRecord, error) {
	query := `SELECT doc FROM customer_records WHERE id = $1`

	var doc []byte
	err := s.pool.QueryRow(ctx, query, customerID).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to query record")
		return nil, fmt.Errorf("failed to query record: %w", err)
	}

	return decodeRecord(doc)
}

// WriteFields merges the given top-level fields into the record document.
func (s *pgStore) WriteFields(ctx context.Context, customerID string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode field patch: %w", err)
	}

	query := `
		UPDATE customer_records
		SET doc = doc || $2::jsonb, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query, customerID, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to write fields")
		return fmt.Errorf("failed to write fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	s.publish(ctx, customerID)
	return nil
}

// Apply runs fn against the record inside one transaction with a row lock.
func (s *pgStore) Apply(ctx context.Context, customerID string, fn func(record *model.CustomerRecord) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var doc []byte
	err = tx.QueryRow(ctx, `SELECT doc FROM customer_records WHERE id = $1 FOR UPDATE`, customerID).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			err = model.ErrNotFound
		}
		return err
	}

	record, err := decodeRecord(doc)
	if err != nil {
		return err
	}

	if err = fn(record); err != nil {
		return err
	}

	doc, err = json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if _, err = tx.Exec(ctx, `UPDATE customer_records SET doc = $2, updated_at = now() WHERE id = $1`, customerID, doc); err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to update record")
		return fmt.Errorf("failed to update record: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.publish(ctx, customerID)
	return nil
}

// ListRecords returns all customer records.
func (s *pgStore) ListRecords(ctx context.Context) ([]model.CustomerRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM customer_records ORDER BY id`)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query records")
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []model.CustomerRecord
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		record, err := decodeRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// FindOrder locates an order by id across all customers' records.
func (s *pgStore) FindOrder(ctx context.Context, orderID string) (string, *model.Order, error) {
	needle, err := json.Marshal([]map[string]string{{"id": orderID}})
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode order query: %w", err)
	}

	query := `SELECT id, doc FROM customer_records WHERE doc->'orders' @> $1::jsonb`

	var (
		customerID string
		doc        []byte
	)
	err = s.pool.QueryRow(ctx, query, needle).Scan(&customerID, &doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to locate order")
		return "", nil, fmt.Errorf("failed to locate order: %w", err)
	}

	record, err := decodeRecord(doc)
	if err != nil {
		return "", nil, err
	}

	order := record.FindOrder(orderID)
	if order == nil {
		return "", nil, model.ErrNotFound
	}

	return customerID, order, nil
}

// publish notifies subscribers that the record changed. Best-effort: a
// missed notification only delays convergence until the next change.
func (s *pgStore) publish(ctx context.Context, customerID string) {
	if err := s.rdb.Publish(ctx, fmt.Sprintf(channelRecord, customerID), customerID).Err(); err != nil {
		s.logger.Warn().Err(err).Str("customer_id", customerID).Msg("failed to publish record change")
	}
	if err := s.rdb.Publish(ctx, channelCollection, customerID).Err(); err != nil {
		s.logger.Warn().Err(err).Str("customer_id", customerID).Msg("failed to publish collection change")
	}
}

func decodeRecord(doc []byte) (*model.CustomerRecord, error) {
	var record model.CustomerRecord
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &record, nil
}
