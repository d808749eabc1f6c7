package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements DDL idempotente de las dos colecciones.
// El índice único parcial sobre id_number es la versión PostgreSQL de un
// "sparse unique index": los registros sin documento no compiten entre sí.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS loans (
		id                  UUID PRIMARY KEY,
		name                TEXT NOT NULL,
		phone               TEXT NOT NULL,
		address             TEXT NOT NULL DEFAULT '',
		join_date           TIMESTAMPTZ NOT NULL,
		id_type             TEXT NOT NULL DEFAULT '',
		id_number           TEXT,
		image_url           TEXT NOT NULL DEFAULT '',
		image_public_id     TEXT NOT NULL DEFAULT '',
		loan_amount         NUMERIC(14,2) NOT NULL CHECK (loan_amount >= 0),
		interest_rate       NUMERIC(7,4) NOT NULL CHECK (interest_rate >= 0),
		term                TEXT NOT NULL DEFAULT 'months',
		months              INT NOT NULL DEFAULT 0,
		years               INT NOT NULL DEFAULT 0,
		total_payable       NUMERIC(16,2),
		monthly_installment NUMERIC(16,2),
		status              TEXT NOT NULL DEFAULT 'active',
		total_loans         INT NOT NULL DEFAULT 1 CHECK (total_loans >= 1),
		notes               TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS loans_id_number_key
		ON loans (id_number) WHERE id_number IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS loans_status_idx ON loans (status)`,
	`CREATE INDEX IF NOT EXISTS loans_created_at_idx ON loans (created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id              UUID PRIMARY KEY,
		first_name      TEXT NOT NULL,
		last_name       TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL,
		address         TEXT NOT NULL DEFAULT '',
		join_date       TIMESTAMPTZ NOT NULL,
		id_type         TEXT NOT NULL DEFAULT '',
		id_number       TEXT NOT NULL DEFAULT '',
		photo_url       TEXT NOT NULL DEFAULT '',
		photo_public_id TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS customers_created_at_idx ON customers (created_at DESC)`,
}

// EnsureSchema crea tablas e índices si no existen. Se ejecuta en el arranque.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
