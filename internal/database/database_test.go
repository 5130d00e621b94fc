package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDSN(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		cfg := Config{Driver: DriverMySQL, User: "todo", Pass: "secret", Host: "db", Port: "3306", Name: "todos"}
		assert.Equal(t, "todo:secret@tcp(db:3306)/todos?parseTime=true", cfg.GetDSN())
	})

	t.Run("postgres defaults port", func(t *testing.T) {
		cfg := Config{Driver: DriverPostgres, User: "todo", Pass: "secret", Host: "db", Name: "todos"}
		assert.Equal(t, "postgres://todo:secret@db:5432/todos?sslmode=disable", cfg.GetDSN())
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := Config{Driver: DriverSQLite, Path: "/tmp/todo.db"}
		assert.Equal(t, "/tmp/todo.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", cfg.GetDSN())
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("DB_PATH", "local.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_ACQUIRE_TIMEOUT", "2s")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "local.db", cfg.Path)
	assert.Equal(t, 7, cfg.MaxOpenConns)
	assert.Equal(t, 25, cfg.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 2*time.Second, cfg.AcquireTimeout)
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := ConfigFromEnv()
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("bad number", func(t *testing.T) {
		t.Setenv("DB_DRIVER", DriverMySQL)
		t.Setenv("DB_MAX_OPEN_CONNS", "many")
		_, err := ConfigFromEnv()
		assert.ErrorContains(t, err, "DB_MAX_OPEN_CONNS")
	})
}

func TestRebind(t *testing.T) {
	query := "UPDATE todo_item SET checked = TRUE WHERE list_id = ? AND id = ?"

	assert.Equal(t, query, Dialect{Driver: DriverMySQL}.Rebind(query))
	assert.Equal(t, query, Dialect{Driver: DriverSQLite}.Rebind(query))
	assert.Equal(t,
		"UPDATE todo_item SET checked = TRUE WHERE list_id = $1 AND id = $2",
		Dialect{Driver: DriverPostgres}.Rebind(query))
}

func TestSupportsReturning(t *testing.T) {
	assert.False(t, Dialect{Driver: DriverMySQL}.SupportsReturning())
	assert.True(t, Dialect{Driver: DriverPostgres}.SupportsReturning())
	assert.True(t, Dialect{Driver: DriverSQLite}.SupportsReturning())
}

func TestPoolAcquire(t *testing.T) {
	cfg := Config{
		Driver:       DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "pool.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	db, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	pool := NewPool(db, 50*time.Millisecond)

	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	// 唯一のコネクションが貸し出し中なので取得はタイムアウトする
	_, err = pool.Acquire(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, conn.Close())
	conn, err = pool.Acquire(context.Background())
	require.NoError(t, err, "released connection should be reusable")
	require.NoError(t, conn.Close())

	require.NoError(t, db.Close())
	_, err = pool.Acquire(context.Background())
	assert.Error(t, err)
}
