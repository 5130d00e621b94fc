// Package routesはroutingを行います。
package routes

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-todo-lists/backend/internal/database"
	"go-todo-lists/backend/internal/handlers"
	"go-todo-lists/backend/internal/repositories"
	"go-todo-lists/backend/internal/services"
)

// Options はルーターの設定です。
type Options struct {
	AllowOrigins []string
}

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(pool database.Pool, dialect database.Dialect, logger *slog.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	// CORS対策
	if len(opts.AllowOrigins) > 0 {
		config := cors.DefaultConfig()
		if len(opts.AllowOrigins) == 1 && opts.AllowOrigins[0] == "*" {
			config.AllowAllOrigins = true
		} else {
			config.AllowOrigins = opts.AllowOrigins
		}
		config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
		config.ExposeHeaders = []string{RequestIDHeader}
		r.Use(cors.New(config))
	}

	// リポジトリ
	todoRepo := repositories.NewTodoRepository(dialect)

	// サービス
	todoService := services.NewTodoService(pool, todoRepo)

	// ハンドラー
	todoHandler := handlers.NewTodoHandler(todoService, logger)

	// ルーティング
	// 一覧系は末尾スラッシュ付きでもリダイレクトせずに応答する
	r.GET("/", handlers.StatusHandler)
	for _, path := range []string{"/todos", "/todos/"} {
		r.GET(path, todoHandler.GetTodosHandler)
		r.POST(path, todoHandler.CreateTodoHandler)
	}
	for _, path := range []string{"/todos/:list_id/items", "/todos/:list_id/items/"} {
		r.GET(path, todoHandler.GetItemsHandler)
	}
	r.PUT("/todos/:list_id/items/:item_id", todoHandler.CheckItemHandler)

	return r
}
