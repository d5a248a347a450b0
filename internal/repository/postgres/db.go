package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/jwalitptl/patio-health/internal/config"
)

const connectTimeout = 5 * time.Second

func NewDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	// ConnectContext pings and closes the pool itself when the ping fails
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS portal_users (
	seq            BIGSERIAL PRIMARY KEY,
	id             TEXT NOT NULL,
	email          TEXT NOT NULL,
	name           TEXT NOT NULL,
	role           TEXT NOT NULL,
	specialization TEXT,
	department     TEXT,
	phone          TEXT,
	date_of_birth  TEXT,
	address        TEXT,
	avatar         TEXT,
	password_hash  TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS portal_users_email_idx ON portal_users (email);
CREATE INDEX IF NOT EXISTS portal_users_id_idx ON portal_users (id);
`

// Migrate creates the identity table. Email is indexed but deliberately not unique.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate identity table: %w", err)
	}
	return nil
}
