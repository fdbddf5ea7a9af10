//go:build integration_test || all_tests

package db_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/2beens/muscleforge/internal/db"
	"github.com/2beens/muscleforge/internal/db/dbtest"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pg *dbtest.Postgres

func TestMain(m *testing.M) {
	var err error
	pg, err = dbtest.StartPostgres(context.Background())
	if err != nil {
		fmt.Printf("start postgres: %s\n", err)
		os.Exit(1)
	}
	code := m.Run()
	pg.Close()
	os.Exit(code)
}

func countAccounts(t *testing.T, ctx context.Context) int {
	var n int
	require.NoError(t, pg.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM account`).Scan(&n))
	return n
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, pg.Reset(ctx))

	err := db.WithTx(ctx, pg.Pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO account (username, password_hash) VALUES ('committed', 'x')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countAccounts(t, ctx))

	boom := errors.New("boom")
	err = db.WithTx(ctx, pg.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO account (username, password_hash) VALUES ('rolled-back', 'x')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, countAccounts(t, ctx))

	assert.Panics(t, func() {
		_ = db.WithTx(ctx, pg.Pool, func(tx pgx.Tx) error {
			_, _ = tx.Exec(ctx, `INSERT INTO account (username, password_hash) VALUES ('panicked', 'x')`)
			panic("mid-transaction")
		})
	})
	assert.Equal(t, 1, countAccounts(t, ctx))
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, pg.Pool))
	require.NoError(t, db.Migrate(ctx, pg.Pool))
}
