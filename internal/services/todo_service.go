package services

import (
	"context"
	"database/sql"
	"log/slog"

	"go-todo-lists/backend/internal/apperror"
	"go-todo-lists/backend/internal/database"
	"go-todo-lists/backend/internal/logging"
	"go-todo-lists/backend/internal/models"
	"go-todo-lists/backend/internal/repositories"
)

// TodoService はリクエストごとにコネクションを取得し、リポジトリを呼び出します。
// リクエストをまたぐ状態は持ちません。
type TodoService struct {
	pool     database.Pool
	todoRepo *repositories.TodoRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(pool database.Pool, todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{pool: pool, todoRepo: todoRepo}
}

// GetClient はプールからコネクションを取得します。
// 失敗は DBError に変換し、CRITICAL で記録します。
func (s *TodoService) GetClient(ctx context.Context, log *slog.Logger) (*sql.Conn, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		appErr := apperror.FromDB(err)
		logging.Critical(ctx, log.With("cause", appErr.Cause), "Error creating client")
		return nil, appErr
	}
	return conn, nil
}

// LogError はエラーを ERROR で記録し、そのまま返します。分類は変えません。
func LogError(ctx context.Context, log *slog.Logger) func(error) error {
	return func(err error) error {
		appErr := apperror.FromDB(err)
		log.With("cause", appErr.Cause).ErrorContext(ctx, appErr.UserMessage())
		return err
	}
}

// GetTodos は最近のTodoリストを取得します。
func (s *TodoService) GetTodos(ctx context.Context, log *slog.Logger) ([]models.TodoList, error) {
	conn, err := s.GetClient(ctx, log)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	todos, err := s.todoRepo.GetTodos(ctx, conn)
	if err != nil {
		return nil, LogError(ctx, log)(err)
	}
	return todos, nil
}

// GetItems はリストのアイテムを取得します。
func (s *TodoService) GetItems(ctx context.Context, log *slog.Logger, listID int) ([]models.TodoItem, error) {
	conn, err := s.GetClient(ctx, log)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	items, err := s.todoRepo.GetItems(ctx, conn, listID)
	if err != nil {
		return nil, LogError(ctx, log)(err)
	}
	return items, nil
}

// CreateTodo は新しいTodoリストを作成します。
func (s *TodoService) CreateTodo(ctx context.Context, log *slog.Logger, title string) (*models.TodoList, error) {
	conn, err := s.GetClient(ctx, log)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	created, err := s.todoRepo.CreateTodo(ctx, conn, title)
	if err != nil {
		return nil, LogError(ctx, log)(err)
	}
	return created, nil
}

// CheckItem はアイテムを完了にし、状態が遷移したかどうかを返します。
func (s *TodoService) CheckItem(ctx context.Context, log *slog.Logger, listID, itemID int) (bool, error) {
	conn, err := s.GetClient(ctx, log)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	updated, err := s.todoRepo.CheckItem(ctx, conn, listID, itemID)
	if err != nil {
		return false, LogError(ctx, log)(err)
	}
	return updated, nil
}
