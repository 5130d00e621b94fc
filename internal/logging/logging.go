// Package logging は構造化ロガー (log/slog) を構築します。
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelCritical はプロセスの健全性に関わる失敗 (コネクション取得失敗など) 用のレベルです。
const LevelCritical = slog.Level(12)

// Options はロガーの設定です。
type Options struct {
	Level   string // debug | info | warn | error | critical
	Format  string // json | text
	Version string
}

// ParseLevel はレベル名を slog.Level に変換します。
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "critical", "crit":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// New はルートロガーを作成します。
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	logger := slog.New(handler)
	if opts.Version != "" {
		logger = logger.With("v", opts.Version)
	}
	return logger, nil
}

// Discard はテスト用に何も出力しないロガーを返します。
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Critical は CRITICAL レベルで記録します。
func Critical(ctx context.Context, log *slog.Logger, msg string, args ...any) {
	log.Log(ctx, LevelCritical, msg, args...)
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level >= LevelCritical {
		a.Value = slog.StringValue("CRITICAL")
	}
	return a
}

type ctxKey struct{}

// WithContext はリクエスト用のロガーを ctx に格納します。
func WithContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext は ctx のロガーを返します。なければ fallback を返します。
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return fallback
}
