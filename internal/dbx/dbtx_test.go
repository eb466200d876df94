package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbx_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY, v TEXT);`)
	require.NoError(t, err)
	return db
}

func TestWithConn_RunsFnAndReleases(t *testing.T) {
	db := setupDB(t)

	var got int
	err := WithConn(context.Background(), db, func(ctx context.Context, conn DBTX) error {
		return conn.QueryRowContext(ctx, `SELECT 1`).Scan(&got)
	})
	require.NoError(t, err)
	require.Equal(t, 1, got)

	// the single pooled connection must be free again
	require.Equal(t, 0, db.Stats().InUse)
	require.NoError(t, db.PingContext(context.Background()))
}

func TestWithConn_ReleasesOnFnError(t *testing.T) {
	db := setupDB(t)

	boom := errors.New("boom")
	err := WithConn(context.Background(), db, func(ctx context.Context, conn DBTX) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, db.Stats().InUse)
}

func TestWithConn_ReleasesOnPanic(t *testing.T) {
	db := setupDB(t)

	func() {
		defer func() {
			require.NotNil(t, recover(), "panic must be rethrown")
		}()
		_ = WithConn(context.Background(), db, func(ctx context.Context, conn DBTX) error {
			panic("kaboom")
		})
	}()

	require.Equal(t, 0, db.Stats().InUse)
}

func TestWithConn_AcquireError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithConn(context.Background(), db, func(ctx context.Context, conn DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "acquire connection")
	require.False(t, called)
}
