package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, https://todo.example.com,")
	t.Setenv("LOG_FORMAT", "json")

	cfg := serverConfigFromEnv()
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://todo.example.com"}, cfg.AllowOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}

func TestServeCommand_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	cmd := newRootCommand()
	cmd.SetArgs([]string{"serve", "--env-file", "does-not-exist.env"})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "unsupported database driver")
}
