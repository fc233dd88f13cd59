package report

import (
	"context"
	"database/sql"

	// Registers the postgres driver.
	_ "github.com/lib/pq"
)

// Store is an optional export sink for the final account report. The
// core never reads account state back; storage is write-only output.
type Store interface {
	SaveReport(ctx context.Context, rows []Row) error
}

// PostgresStore exports report rows to an account_balances table.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to the given DSN and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return NewPostgresStore(db), nil
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SaveReport upserts every row in a single transaction so a partial
// export never becomes visible.
func (p *PostgresStore) SaveReport(ctx context.Context, rows []Row) error {
	const query = `INSERT INTO account_balances (client_id, available, held, total, locked)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (client_id) DO UPDATE
	SET available = EXCLUDED.available,
	    held = EXCLUDED.held,
	    total = EXCLUDED.total,
	    locked = EXCLUDED.locked`

	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	for _, row := range rows {
		_, err := dbTx.ExecContext(ctx, query,
			int64(row.Client),
			row.Available.Decimal(),
			row.Held.Decimal(),
			row.Total.Decimal(),
			row.Locked,
		)
		if err != nil {
			return err
		}
	}
	return dbTx.Commit()
}

// Close releases the connection pool.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}

var _ Store = (*PostgresStore)(nil)
