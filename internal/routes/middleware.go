package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-todo-lists/backend/internal/logging"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダーです。
const RequestIDHeader = "X-Request-ID"

// RequestLogger はリクエストごとに request_id 付きの子ロガーを作り、コンテキストに設定するミドルウェアです。
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		log := logger.With("request_id", requestID)
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), log))

		start := time.Now()
		c.Next()

		log.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
