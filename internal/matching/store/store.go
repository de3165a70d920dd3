package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindClient(ctx context.Context, rawDescription string) (uuid.UUID, bool, error) {
	query := `
		SELECT client_id
		FROM payer_mappings
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var clientID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, rawDescription).Scan(&clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, false, nil
		}

		return uuid.Nil, false, fmt.Errorf("finding payer: %w", err)
	}

	return clientID, true, nil
}

func (s *Store) CreateMapping(ctx context.Context, m *matching.Mapping) error {
	query := `
		INSERT INTO payer_mappings (raw_pattern, client_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, m.RawPattern, m.ClientID).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payer mapping: %w", database.Translate(err))
	}

	return nil
}

func (s *Store) ListMappings(ctx context.Context) ([]*matching.Mapping, error) {
	query := `
		SELECT id, raw_pattern, client_id, created_at
		FROM payer_mappings
		ORDER BY raw_pattern
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payer mappings: %w", err)
	}
	defer rows.Close()

	var out []*matching.Mapping

	for rows.Next() {
		var m matching.Mapping
		if err := rows.Scan(&m.ID, &m.RawPattern, &m.ClientID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payer mapping: %w", err)
		}

		out = append(out, &m)
	}

	return out, rows.Err()
}

var _ matching.Repository = (*Store)(nil)
