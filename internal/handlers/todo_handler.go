package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-todo-lists/backend/internal/apperror"
	"go-todo-lists/backend/internal/logging"
	"go-todo-lists/backend/internal/models"
	"go-todo-lists/backend/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
	logger      *slog.Logger
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todoService: todoService, logger: logger}
}

// handlerLogger はリクエストのロガーに handler 名を付けた子ロガーを返します。
func (h *TodoHandler) handlerLogger(c *gin.Context, name string) *slog.Logger {
	return logging.FromContext(c.Request.Context(), h.logger).With("handler", name)
}

// StatusHandler はヘルスチェックです。
func StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.Status{Status: "OK"})
}

// GetTodosHandler は最近のTodoリストを返します。
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	log := h.handlerLogger(c, "get_todos")

	todos, err := h.todoService.GetTodos(c.Request.Context(), log)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetItemsHandler は指定リストのアイテムを返します。
func (h *TodoHandler) GetItemsHandler(c *gin.Context) {
	log := h.handlerLogger(c, "get_items")

	listID, ok := pathID(c, log, "list_id")
	if !ok {
		return
	}

	items, err := h.todoService.GetItems(c.Request.Context(), log, listID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateTodoHandler は新しいTodoリストを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	log := h.handlerLogger(c, "create_todo")

	var req models.CreateTodoList
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("invalid request payload", "details", err.Error())
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request payload"})
		return
	}

	created, err := h.todoService.CreateTodo(c.Request.Context(), log, req.Title)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// CheckItemHandler はアイテムを完了にします。
func (h *TodoHandler) CheckItemHandler(c *gin.Context) {
	log := h.handlerLogger(c, "check_item")

	listID, ok := pathID(c, log, "list_id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, log, "item_id")
	if !ok {
		return
	}

	updated, err := h.todoService.CheckItem(c.Request.Context(), log, listID, itemID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ResultResponse{Success: updated})
}

// pathID はパスパラメータを整数として取り出します。
// 数値でない場合はルートに一致しなかったものとしてログに残し、404 を返します。
func pathID(c *gin.Context, log *slog.Logger, name string) (int, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil {
		RespondError(c, services.LogError(c.Request.Context(), log)(apperror.NotFound("")))
		return 0, false
	}
	return int(id), true
}

// RespondError はエラーをステータスコードと {"error": message} に変換します。
// Cause はレスポンスに含めません。
func RespondError(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.FromDB(err)
	}
	c.JSON(appErr.StatusCode(), models.ErrorResponse{Error: appErr.UserMessage()})
}
