// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"context"
	"database/sql"
	"errors"

	"go-todo-lists/backend/internal/apperror"
	"go-todo-lists/backend/internal/database"
	"go-todo-lists/backend/internal/models"
)

// RecentListLimit は GetTodos が返すリストの最大件数です。
const RecentListLimit = 10

// Querier は取得済みのコネクションです。*sql.Conn, *sql.DB, *sql.Tx が満たします。
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TodoRepository はTodoリストとアイテムのデータベース操作を行います。
type TodoRepository struct {
	dialect database.Dialect
}

// NewTodoRepository は新しいTodoRepositoryを作成します。
func NewTodoRepository(dialect database.Dialect) *TodoRepository {
	return &TodoRepository{dialect: dialect}
}

// GetTodos は新しい順に最大10件のTodoリストを取得します。
func (r *TodoRepository) GetTodos(ctx context.Context, q Querier) ([]models.TodoList, error) {
	query := r.dialect.Rebind("SELECT id, title FROM todo_list ORDER BY id DESC LIMIT ?")

	rows, err := q.QueryContext(ctx, query, RecentListLimit)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	defer rows.Close()

	todos := []models.TodoList{}
	for rows.Next() {
		l, err := models.ScanTodoList(rows)
		if err != nil {
			return nil, apperror.FromDB(err)
		}
		todos = append(todos, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.FromDB(err)
	}
	return todos, nil
}

// GetItems は指定リストのアイテムをID昇順で取得します。
// アイテムがない、またはリストが存在しない場合は空のスライスを返します。
func (r *TodoRepository) GetItems(ctx context.Context, q Querier, listID int) ([]models.TodoItem, error) {
	query := r.dialect.Rebind("SELECT id, list_id, title, checked FROM todo_item WHERE list_id = ? ORDER BY id")

	rows, err := q.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	defer rows.Close()

	items := []models.TodoItem{}
	for rows.Next() {
		i, err := models.ScanTodoItem(rows)
		if err != nil {
			return nil, apperror.FromDB(err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.FromDB(err)
	}
	return items, nil
}

// errCreateTodo は挿入が成功したのに行が返らなかった場合のエラーです。
func errCreateTodo() *apperror.AppError {
	return &apperror.AppError{
		Message: "Error creating todo list",
		Cause:   "unknown error",
		Type:    apperror.DBError,
	}
}

// CreateTodo は新しいTodoリストを挿入し、採番された行を返します。
func (r *TodoRepository) CreateTodo(ctx context.Context, q Querier, title string) (*models.TodoList, error) {
	var (
		created models.TodoList
		err     error
	)
	if r.dialect.SupportsReturning() {
		query := r.dialect.Rebind("INSERT INTO todo_list (title) VALUES (?) RETURNING id, title")
		created, err = models.ScanTodoList(q.QueryRowContext(ctx, query, title))
	} else {
		created, err = r.insertAndFetch(ctx, q, title)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errCreateTodo()
		}
		return nil, apperror.FromDB(err)
	}
	return &created, nil
}

// insertAndFetch は RETURNING が使えないドライバ向けに LastInsertId で行を読み直します。
func (r *TodoRepository) insertAndFetch(ctx context.Context, q Querier, title string) (models.TodoList, error) {
	result, err := q.ExecContext(ctx, r.dialect.Rebind("INSERT INTO todo_list (title) VALUES (?)"), title)
	if err != nil {
		return models.TodoList{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.TodoList{}, err
	}
	query := r.dialect.Rebind("SELECT id, title FROM todo_list WHERE id = ?")
	return models.ScanTodoList(q.QueryRowContext(ctx, query, id))
}

// CheckItem は未完了のアイテムを完了にします。
// 状態が遷移した (1行更新された) 場合のみ true を返します。
// アイテムが存在しない・別のリスト・既に完了済みの場合はいずれも false です。
func (r *TodoRepository) CheckItem(ctx context.Context, q Querier, listID, itemID int) (bool, error) {
	// checked = FALSE の条件で同時実行時もストアが1件だけ更新させる
	query := r.dialect.Rebind("UPDATE todo_item SET checked = TRUE WHERE list_id = ? AND id = ? AND checked = FALSE")

	result, err := q.ExecContext(ctx, query, listID, itemID)
	if err != nil {
		return false, apperror.FromDB(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperror.FromDB(err)
	}
	return rowsAffected == 1, nil
}
