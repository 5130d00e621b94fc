// Package testutil はテスト用のデータベースとルーターを提供します。
package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"go-todo-lists/backend/internal/database"
	"go-todo-lists/backend/internal/logging"
	"go-todo-lists/backend/internal/models"
	"go-todo-lists/backend/internal/repositories"
	"go-todo-lists/backend/internal/routes"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS todo_list (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS todo_item (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		list_id INTEGER NOT NULL REFERENCES todo_list(id),
		title TEXT NOT NULL,
		checked BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS todo_list (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(150) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS todo_item (
		id INT AUTO_INCREMENT PRIMARY KEY,
		list_id INT NOT NULL,
		title VARCHAR(150) NOT NULL,
		checked BOOLEAN NOT NULL DEFAULT FALSE,
		FOREIGN KEY (list_id) REFERENCES todo_list(id)
	)`,
}

// TestDB はテストで使うデータベース一式です。
type TestDB struct {
	DB      *sql.DB
	Dialect database.Dialect
	Repo    *repositories.TodoRepository
}

// SetupTestDB はテスト用のデータベースを作成し、空のテーブルを用意します。
// TEST_DB_DRIVER=mysql の場合は TEST_DB_* の MySQL を使い、それ以外は一時ディレクトリの sqlite を使います。
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	_ = godotenv.Load("../../.env")

	cfg, schema := testConfig(t)
	db, err := database.Open(context.Background(), cfg)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { db.Close() })

	if cfg.Driver == database.DriverMySQL {
		for _, stmt := range []string{"SET FOREIGN_KEY_CHECKS=0", "DROP TABLE IF EXISTS todo_item", "DROP TABLE IF EXISTS todo_list", "SET FOREIGN_KEY_CHECKS=1"} {
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}
	}
	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "Failed to create table")
	}

	dialect, err := database.DialectFor(cfg.Driver)
	require.NoError(t, err)
	return &TestDB{DB: db, Dialect: dialect, Repo: repositories.NewTodoRepository(dialect)}
}

func testConfig(t *testing.T) (database.Config, []string) {
	if os.Getenv("TEST_DB_DRIVER") == database.DriverMySQL {
		return database.Config{
			Driver:       database.DriverMySQL,
			User:         os.Getenv("TEST_DB_USER"),
			Pass:         os.Getenv("TEST_DB_PASS"),
			Host:         os.Getenv("TEST_DB_HOST"),
			Port:         os.Getenv("TEST_DB_PORT"),
			Name:         os.Getenv("TEST_DB_NAME"),
			MaxOpenConns: 10,
			MaxIdleConns: 10,
		}, mysqlSchema
	}
	return database.Config{
		Driver:       database.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "todo_test.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	}, sqliteSchema
}

// SetupTestRouter はテスト用のGinルーターをセットアップします。
func SetupTestRouter(t *testing.T, tdb *TestDB, logger *slog.Logger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if logger == nil {
		logger = logging.Discard()
	}
	return routes.SetupRouter(database.NewPool(tdb.DB, 0), tdb.Dialect, logger, routes.Options{
		AllowOrigins: []string{"http://localhost:3000"},
	})
}

// CreateTestList はリポジトリ経由でTodoリストを作成します。
func CreateTestList(t *testing.T, tdb *TestDB, title string) *models.TodoList {
	t.Helper()
	created, err := tdb.Repo.CreateTodo(context.Background(), tdb.DB, title)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	return created
}

// CreateTestItem はテスト用のアイテムを直接挿入します。
func CreateTestItem(t *testing.T, tdb *TestDB, listID int, title string, checked bool) models.TodoItem {
	t.Helper()
	result, err := tdb.DB.Exec(tdb.Dialect.Rebind("INSERT INTO todo_item (list_id, title, checked) VALUES (?, ?, ?)"), listID, title, checked)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return models.TodoItem{ID: int(id), ListID: listID, Title: title, Checked: checked}
}

// DoJSON はルーターにリクエストを送り、レスポンスを返します。
func DoJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
