package postgres

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var insertBalance = regexp.QuoteMeta(`INSERT INTO client_balances (run_id, client_id, available, held, total, locked, exported_at)`)

func testBalances() []models.AccountSnapshot {
	return []models.AccountSnapshot{
		{Client: 1, Available: decimal.RequireFromString("1.5"), Total: decimal.RequireFromString("1.5")},
		{Client: 2, Available: decimal.RequireFromString("-3"), Held: decimal.RequireFromString("4"), Total: decimal.RequireFromString("1"), Locked: true},
	}
}

func newSink(t *testing.T) (*PostgresBalanceSink, sqlmock.Sqlmock, time.Time) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sink := NewPostgresBalanceSink(db, "run-1")
	sink.now = func() time.Time { return now }
	return sink, mock, now
}

func TestWriteBalances(t *testing.T) {
	sink, mock, now := newSink(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertBalance).
		WithArgs("run-1", int64(1), "1.5000", "0.0000", "1.5000", false, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertBalance).
		WithArgs("run-1", int64(2), "-3.0000", "4.0000", "1.0000", true, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, sink.WriteBalances(context.Background(), slices.Values(testBalances())))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteBalancesRollsBackOnFailure(t *testing.T) {
	sink, mock, _ := newSink(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertBalance).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertBalance).WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	err := sink.WriteBalances(context.Background(), slices.Values(testBalances()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export client 2")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	sink, mock, _ := newSink(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS client_balances")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, sink.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadBalances(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"client_id", "available", "held", "total", "locked"}).
		AddRow(int64(1), "1.5000", "0.0000", "1.5000", false).
		AddRow(int64(2), "-3.0000", "4.0000", "1.0000", true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT client_id, available, held, total, locked FROM client_balances")).
		WithArgs("run-1").
		WillReturnRows(rows)

	got, err := LoadBalances(context.Background(), db, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, models.ClientID(2), got[1].Client)
	assert.True(t, got[1].Available.Equal(decimal.RequireFromString("-3")))
	assert.True(t, got[1].Held.Equal(decimal.RequireFromString("4")))
	assert.True(t, got[1].Locked)
	require.NoError(t, mock.ExpectationsWereMet())
}
