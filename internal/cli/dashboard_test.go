package cli

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rileyhilliard/sysdash/internal/client"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSource(t *testing.T) {
	assert.Nil(t, tokenSource(config.AuthConfig{}))

	static := tokenSource(config.AuthConfig{Token: "s3cret"})
	require.IsType(t, client.StaticToken(""), static)
	tok, err := static.Token(time.Now())
	require.NoError(t, err)
	assert.Equal(t, "s3cret", tok)

	src := tokenSource(config.AuthConfig{JWTSecret: "shh", JWTSubject: "wall", JWTTTL: time.Minute})
	require.IsType(t, &client.JWTSource{}, src)
	tok, err = src.Token(time.Now())
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("shh"), nil })
	require.NoError(t, err)
	assert.Equal(t, "wall", claims.Subject)
}

func TestModelOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Poll.Interval = 2 * time.Second
	cfg.Poll.History = 90
	cfg.Display.DiskRates = config.DiskRatesZero
	cfg.Report.Dir = "/srv/reports"

	opts := modelOptions(cfg, logger.Noop())
	assert.Equal(t, "http://localhost:5000", opts.Endpoint)
	assert.Equal(t, 2*time.Second, opts.Interval)
	assert.Zero(t, opts.Timeout, "endpoint.timeout is applied by the client, not the scheduler")
	assert.Equal(t, 90, opts.HistorySize)
	assert.Equal(t, monitor.DiskRatesZero, opts.DiskRates)
	assert.Equal(t, 30, opts.ProcessNameMax)
	assert.Equal(t, 20, opts.GPUNameMax)
	assert.Equal(t, "/srv/reports", opts.ReportDir)
	assert.Nil(t, opts.Sink)
}

func TestOpenSession_Direct(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Endpoint.URL = "http://metrics.lan:5000"

	sess, err := openSession(context.Background(), cfg, logger.Noop())
	require.NoError(t, err)
	defer sess.Close()

	assert.Nil(t, sess.tunnel)
	assert.Equal(t, "http://metrics.lan:5000", sess.client.BaseURL())
}

func TestOpenSession_TunnelFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SSH_AUTH_SOCK", "")

	cfg := config.DefaultConfig()
	cfg.Endpoint.SSH = "me@127.0.0.1:1"
	cfg.Endpoint.Timeout = time.Second

	_, err := openSession(context.Background(), cfg, logger.Noop())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSSH))
}

func TestLoadConfig_Override(t *testing.T) {
	useConfig(t, "endpoint:\n  url: http://localhost:5000\nlog:\n  debug: true\n")
	defer logger.SetDebug(false)

	cfg, err := loadConfig(func(cfg *config.Config) error {
		return applyDashboardFlags(cfg, DashboardFlags{Interval: "3s"})
	})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Poll.Interval)
	assert.True(t, cfg.Log.Debug)

	_, err = loadConfig(func(cfg *config.Config) error {
		return applyDashboardFlags(cfg, DashboardFlags{History: 1})
	})
	require.Error(t, err)
}

func TestRedirectLogs(t *testing.T) {
	original := log.Writer()
	originalPrefix := log.Prefix()
	t.Cleanup(func() {
		log.SetOutput(original)
		log.SetPrefix(originalPrefix)
	})

	t.Run("to file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Log.File = filepath.Join(t.TempDir(), "sysdash.log")

		closeLog, err := redirectLogs(cfg, false)
		require.NoError(t, err)
		log.Print("fetch failed")
		closeLog()

		data, err := os.ReadFile(cfg.Log.File)
		require.NoError(t, err)
		assert.Contains(t, string(data), "sysdash")
		assert.Contains(t, string(data), "fetch failed")
	})

	t.Run("tui without file discards", func(t *testing.T) {
		log.SetOutput(original)
		closeLog, err := redirectLogs(config.DefaultConfig(), false)
		require.NoError(t, err)
		closeLog()
		assert.Equal(t, io.Discard, log.Writer())
	})

	t.Run("headless without file keeps stderr", func(t *testing.T) {
		log.SetOutput(original)
		closeLog, err := redirectLogs(config.DefaultConfig(), true)
		require.NoError(t, err)
		closeLog()
		assert.Equal(t, original, log.Writer())
	})

	t.Run("unwritable file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Log.File = filepath.Join(t.TempDir(), "missing", "dir", "sysdash.log")

		_, err := redirectLogs(cfg, false)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})
}
