package database

import (
	"context"
	"database/sql"
	"time"
)

// Pool はリクエストごとにコネクションを貸し出します。
// 取得したコネクションは Close() でプールに返却します。
type Pool interface {
	Acquire(ctx context.Context) (*sql.Conn, error)
}

// SQLPool は *sql.DB を Pool として使うためのラッパーです。
type SQLPool struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPool は新しいSQLPoolを作成します。timeout が 0 の場合は呼び出し元の ctx に従います。
func NewPool(db *sql.DB, timeout time.Duration) *SQLPool {
	return &SQLPool{db: db, timeout: timeout}
}

// Acquire はプールからコネクションを1つ取得します。
// プールが枯渇している場合は空きが出るか ctx が終了するまで待ちます。
func (p *SQLPool) Acquire(ctx context.Context) (*sql.Conn, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return p.db.Conn(ctx)
}
