// Package database はコネクションプールの構築と取得を扱います。
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" ドライバを登録
	_ "github.com/mattn/go-sqlite3"    // "sqlite3" ドライバを登録
)

// Config はデータベース接続の設定です。
type Config struct {
	Driver          string
	User            string
	Pass            string
	Host            string
	Port            string
	Name            string
	Path            string // sqlite3 のファイルパス
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AcquireTimeout  time.Duration
}

// ConfigFromEnv は環境変数から設定を読み込みます。
// .env の読み込みは呼び出し側 (cmd/api) で godotenv.Load() により行われます。
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Driver:          getenv("DB_DRIVER", DriverMySQL),
		User:            os.Getenv("DB_USER"),
		Pass:            os.Getenv("DB_PASS"),
		Host:            getenv("DB_HOST", "127.0.0.1"),
		Port:            os.Getenv("DB_PORT"),
		Name:            os.Getenv("DB_NAME"),
		Path:            getenv("DB_PATH", "todo.db"),
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
	}

	var err error
	if cfg.MaxOpenConns, err = intEnv("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns); err != nil {
		return Config{}, err
	}
	if cfg.MaxIdleConns, err = intEnv("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns); err != nil {
		return Config{}, err
	}
	if cfg.ConnMaxLifetime, err = durationEnv("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime); err != nil {
		return Config{}, err
	}
	if cfg.AcquireTimeout, err = durationEnv("DB_ACQUIRE_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if _, err := DialectFor(cfg.Driver); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GetDSN はドライバごとの接続文字列 (DSN) を構築します。
func (c Config) GetDSN() string {
	switch c.Driver {
	case DriverPostgres:
		port := c.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", c.User, c.Pass, net.JoinHostPort(c.Host, port), c.Name)
	case DriverSQLite:
		return c.Path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
	default:
		port := c.Port
		if port == "" {
			port = "3306"
		}
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Pass
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, port)
		mc.DBName = c.Name
		mc.ParseTime = true
		return mc.FormatDSN()
	}
}

// Open はコネクションプールを開き、疎通を確認します。
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
