package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/streetsweeper/internal/address"
)

// Row statuses in raw_address.
const (
	StatusPending   = "pending"
	StatusParsed    = "parsed"
	StatusUnmatched = "unmatched"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS raw_address (
		id          BIGSERIAL PRIMARY KEY,
		address     TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		parsed_at   TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS raw_address_status_idx ON raw_address (status, id)`,
	`CREATE TABLE IF NOT EXISTS parsed_address (
		raw_id                BIGINT PRIMARY KEY REFERENCES raw_address (id) ON DELETE CASCADE,
		number                TEXT,
		prefix                TEXT,
		street                TEXT,
		street_type           TEXT,
		suffix                TEXT,
		unit_prefix           TEXT,
		unit                  TEXT,
		city                  TEXT,
		state                 TEXT,
		postal_code           TEXT,
		postal_code_ext       TEXT,
		street2               TEXT,
		street_type2          TEXT,
		prefix2               TEXT,
		suffix2               TEXT,
		redundant_street_type BOOLEAN NOT NULL DEFAULT false,
		line1                 TEXT NOT NULL,
		line2                 TEXT NOT NULL
	)`,
}

const upsertParsed = `
	INSERT INTO parsed_address (
		raw_id, number, prefix, street, street_type, suffix, unit_prefix, unit,
		city, state, postal_code, postal_code_ext,
		street2, street_type2, prefix2, suffix2,
		redundant_street_type, line1, line2
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	ON CONFLICT (raw_id) DO UPDATE SET
		number = EXCLUDED.number,
		prefix = EXCLUDED.prefix,
		street = EXCLUDED.street,
		street_type = EXCLUDED.street_type,
		suffix = EXCLUDED.suffix,
		unit_prefix = EXCLUDED.unit_prefix,
		unit = EXCLUDED.unit,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		postal_code = EXCLUDED.postal_code,
		postal_code_ext = EXCLUDED.postal_code_ext,
		street2 = EXCLUDED.street2,
		street_type2 = EXCLUDED.street_type2,
		prefix2 = EXCLUDED.prefix2,
		suffix2 = EXCLUDED.suffix2,
		redundant_street_type = EXCLUDED.redundant_street_type,
		line1 = EXCLUDED.line1,
		line2 = EXCLUDED.line2`

// RawAddress is one unparsed input row.
type RawAddress struct {
	ID      int64
	Address string
}

// Store reads raw addresses and writes parsed ones.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Import bulk-loads addresses as pending rows using COPY.
func (s *Store) Import(ctx context.Context, addresses []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("raw_address", "address"))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare copy: %w", err)
	}

	count := 0
	for _, a := range addresses {
		if a == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, a); err != nil {
			stmt.Close()
			return 0, fmt.Errorf("failed to copy address %d: %w", count+1, err)
		}
		count++
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("failed to close copy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return count, nil
}

// Pending returns up to limit rows that have not been parsed yet, oldest first.
func (s *Store) Pending(ctx context.Context, limit int) ([]RawAddress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, address FROM raw_address WHERE status = $1 ORDER BY id LIMIT $2`,
		StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending addresses: %w", err)
	}
	defer rows.Close()

	var out []RawAddress
	for rows.Next() {
		var r RawAddress
		if err := rows.Scan(&r.ID, &r.Address); err != nil {
			return nil, fmt.Errorf("failed to scan pending address: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pending addresses: %w", err)
	}
	return out, nil
}

// SaveParsed stores the parsed record and marks the raw row as parsed.
func (s *Store) SaveParsed(ctx context.Context, id int64, a address.Address) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, upsertParsed,
		id, nullable(a.Number), nullable(a.Prefix), nullable(a.Street), nullable(a.StreetType),
		nullable(a.Suffix), nullable(a.UnitPrefix), nullable(a.Unit),
		nullable(a.City), nullable(a.State), nullable(a.PostalCode), nullable(a.PostalCodeExt),
		nullable(a.Street2), nullable(a.StreetType2), nullable(a.Prefix2), nullable(a.Suffix2),
		a.RedundantStreetType, a.Line1(), a.Line2())
	if err != nil {
		return fmt.Errorf("failed to save parsed address %d: %w", id, err)
	}

	if err := setStatus(ctx, tx, id, StatusParsed); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit parsed address %d: %w", id, err)
	}
	return nil
}

// MarkUnmatched records that no address shape matched the row.
func (s *Store) MarkUnmatched(ctx context.Context, id int64) error {
	return setStatus(ctx, s.db, id, StatusUnmatched)
}

// Counts returns the number of raw rows per status.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM raw_address GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count addresses: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setStatus(ctx context.Context, e execer, id int64, status string) error {
	res, err := e.ExecContext(ctx,
		`UPDATE raw_address SET status = $1, parsed_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to mark address %d %s: %w", id, status, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to mark address %d %s: %w", id, status, sql.ErrNoRows)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
