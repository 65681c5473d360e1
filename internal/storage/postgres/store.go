package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"time"

	_ "github.com/lib/pq"
	interfaces "github.com/sheikh-saqib/payments-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
)

// Open opens and pings a postgres connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// PostgresBalanceSink exports the final balances of a run into the
// client_balances table. Every run writes its own rows, keyed by run id.
type PostgresBalanceSink struct {
	db    *sql.DB
	runID string
	now   func() time.Time
}

func NewPostgresBalanceSink(db *sql.DB, runID string) *PostgresBalanceSink {
	return &PostgresBalanceSink{
		db:    db,
		runID: runID,
		now:   time.Now,
	}
}

// EnsureSchema creates the client_balances table when missing.
func (p *PostgresBalanceSink) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS client_balances (
	run_id      TEXT           NOT NULL,
	client_id   INTEGER        NOT NULL,
	available   NUMERIC(20, 4) NOT NULL,
	held        NUMERIC(20, 4) NOT NULL,
	total       NUMERIC(20, 4) NOT NULL,
	locked      BOOLEAN        NOT NULL,
	exported_at TIMESTAMPTZ    NOT NULL,
	PRIMARY KEY (run_id, client_id)
)`

	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create client_balances table: %w", err)
	}
	return nil
}

func (p *PostgresBalanceSink) saveBalance(ctx context.Context, dbTx *sql.Tx, b models.AccountSnapshot, exportedAt time.Time) error {
	const query = `INSERT INTO client_balances (run_id, client_id, available, held, total, locked, exported_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := dbTx.ExecContext(ctx, query,
		p.runID,
		int64(b.Client),
		b.Available.StringFixed(models.AmountPlaces),
		b.Held.StringFixed(models.AmountPlaces),
		b.Total.StringFixed(models.AmountPlaces),
		b.Locked,
		exportedAt,
	)
	return err
}

// WriteBalances stores every balance in a single database transaction.
// Either all rows of the run are written or none are.
func (p *PostgresBalanceSink) WriteBalances(ctx context.Context, balances iter.Seq[models.AccountSnapshot]) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}

	defer func() {
		if err != nil {
			_ = dbTx.Rollback()
		}
	}()

	exportedAt := p.now().UTC()
	for b := range balances {
		if err = p.saveBalance(ctx, dbTx, b, exportedAt); err != nil {
			return fmt.Errorf("export client %d: %w", b.Client, err)
		}
	}

	if err = dbTx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

// LoadBalances reads back the balances exported by runID, ordered by client.
func LoadBalances(ctx context.Context, db *sql.DB, runID string) ([]models.AccountSnapshot, error) {
	const query = `SELECT client_id, available, held, total, locked FROM client_balances
	WHERE run_id = $1 ORDER BY client_id`

	rows, err := db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []models.AccountSnapshot
	for rows.Next() {
		var (
			b      models.AccountSnapshot
			client int64
		)
		if err := rows.Scan(&client, &b.Available, &b.Held, &b.Total, &b.Locked); err != nil {
			return nil, err
		}
		b.Client = models.ClientID(client)
		balances = append(balances, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return balances, nil
}

var _ interfaces.BalanceSink = (*PostgresBalanceSink)(nil)
