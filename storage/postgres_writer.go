package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gelbeseiten-scraper/config"
	"gelbeseiten-scraper/models"
	"gelbeseiten-scraper/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS gelbeseiten_listings (
	id BIGSERIAL PRIMARY KEY,
	run_id UUID NOT NULL,
	name TEXT NOT NULL,
	profession TEXT NOT NULL,
	location TEXT NOT NULL,
	address TEXT,
	street TEXT,
	postal_code TEXT,
	city TEXT,
	phone TEXT,
	rating TEXT,
	reviews TEXT,
	category TEXT,
	website TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_gelbeseiten_listings_entry
	ON gelbeseiten_listings (name, profession, location, (COALESCE(address, '')));
CREATE INDEX IF NOT EXISTS idx_gelbeseiten_listings_city ON gelbeseiten_listings(city);
`

const insertSQL = `
INSERT INTO gelbeseiten_listings
	(run_id, name, profession, location, address, street, postal_code, city, phone, rating, reviews, category, website)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (name, profession, location, (COALESCE(address, ''))) DO NOTHING;
`

// PostgresWriter stores listings in Postgres, tagging every row with the
// id of the run that produced it.
type PostgresWriter struct {
	pool  *pgxpool.Pool
	runID uuid.UUID
}

func NewPostgresWriter(cfg *config.Config, runID uuid.UUID) (*PostgresWriter, error) {
	var pool *pgxpool.Pool

	err := utils.Retry(cfg.MaxRetries, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		p, err := pgxpool.New(ctx, cfg.PostgresDSN())
		if err != nil {
			return fmt.Errorf("failed to create postgres pool: %w", err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return fmt.Errorf("failed to connect postgres: %w", err)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PostgresWriter{pool: pool, runID: runID}, nil
}

func (w *PostgresWriter) Name() string { return "postgres" }

func (w *PostgresWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

func (w *PostgresWriter) EnsureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if _, err := w.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Save implements the runner's sink for one profession.
func (w *PostgresWriter) Save(profession string, listings []models.Listing) error {
	if err := w.WriteBatch(listings); err != nil {
		return fmt.Errorf("save %q to postgres: %w", profession, err)
	}
	utils.Success("Saved %d listings for %q to PostgreSQL", len(listings), profession)
	return nil
}

func (w *PostgresWriter) WriteBatch(listings []models.Listing) error {
	batch := buildBatch(w.runID, listings)
	if batch.Len() == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results := w.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
	}
	return nil
}

func buildBatch(runID uuid.UUID, listings []models.Listing) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, l := range listings {
		if args := rowArgs(runID, l); args != nil {
			batch.Queue(insertSQL, args...)
		}
	}
	return batch
}

// rowArgs returns the insert arguments for l, or nil if l has no name.
// Optional fields go in as NULL when empty.
func rowArgs(runID uuid.UUID, l models.Listing) []any {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		return nil
	}
	street, postalCode, city := ParseAddress(l.Address)

	return []any{
		runID.String(),
		name,
		l.Profession,
		l.Location,
		nullable(l.Address),
		nullable(street),
		nullable(postalCode),
		nullable(city),
		nullable(l.Phone),
		nullable(l.Rating),
		nullable(l.Reviews),
		nullable(l.Category),
		nullable(l.Website),
	}
}
