package database

import (
	"fmt"
	"strconv"
	"strings"
)

// 対応しているドライバ名 (database/sql に登録される名前)
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Dialect はドライバごとのSQLの差分を吸収します。
type Dialect struct {
	Driver string
}

// DialectFor はドライバ名に対応する Dialect を返します。
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
		return Dialect{Driver: driver}, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SupportsReturning は INSERT ... RETURNING が使えるかどうかを返します。
// MySQL は使えないため LastInsertId で代用します。
func (d Dialect) SupportsReturning() bool {
	return d.Driver != DriverMySQL
}

// Rebind は ? プレースホルダをドライバの形式に書き換えます。
func (d Dialect) Rebind(query string) string {
	if d.Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
