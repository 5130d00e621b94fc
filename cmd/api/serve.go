package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"go-todo-lists/backend/internal/database"
	"go-todo-lists/backend/internal/logging"
	"go-todo-lists/backend/internal/routes"
)

// serverConfig はHTTPサーバーの設定です。
type serverConfig struct {
	Host         string
	Port         string
	AllowOrigins []string
	LogLevel     string
	LogFormat    string
}

// serverConfigFromEnv は環境変数からサーバー設定を読み込みます。
func serverConfigFromEnv() serverConfig {
	cfg := serverConfig{
		Host:      envOr("SERVER_HOST", "0.0.0.0"),
		Port:      envOr("SERVER_PORT", "8080"),
		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "text"),
	}
	for _, origin := range strings.Split(envOr("CORS_ALLOW_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env がなくても環境変数だけで起動できるようにする
			if err := godotenv.Load(rootOpts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to load %s: %w", rootOpts.EnvFile, err)
			}

			srvCfg := serverConfigFromEnv()
			if host != "" {
				srvCfg.Host = host
			}
			if port != "" {
				srvCfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, srvCfg)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides SERVER_HOST)")
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides SERVER_PORT)")
	return cmd
}

func runServer(ctx context.Context, srvCfg serverConfig) error {
	logger, err := logging.New(os.Stderr, logging.Options{
		Level:   srvCfg.LogLevel,
		Format:  srvCfg.LogFormat,
		Version: version,
	})
	if err != nil {
		return err
	}

	dbCfg, err := database.ConfigFromEnv()
	if err != nil {
		return err
	}
	dialect, err := database.DialectFor(dbCfg.Driver)
	if err != nil {
		return err
	}
	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("Successfully connected to database", "driver", dbCfg.Driver)

	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRouter(database.NewPool(db, dbCfg.AcquireTimeout), dialect, logger, routes.Options{
		AllowOrigins: srvCfg.AllowOrigins,
	})

	addr := net.JoinHostPort(srvCfg.Host, srvCfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting server at http://%s/", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("cause", err.Error()))
		return err
	}
	return nil
}
