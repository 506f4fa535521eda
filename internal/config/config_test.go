package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "http://localhost:5000", cfg.Endpoint.URL)
	assert.Equal(t, 10*time.Second, cfg.Endpoint.Timeout)
	assert.Equal(t, time.Second, cfg.Poll.Interval)
	assert.Equal(t, 60, cfg.Poll.History)
	assert.Equal(t, DiskRatesDelta, cfg.Display.DiskRates)
	assert.Equal(t, 30, cfg.Display.ProcessNameMax)
	assert.Equal(t, 20, cfg.Display.GPUNameMax)
	assert.Equal(t, "auto", cfg.Display.Color)
	assert.Equal(t, ".", cfg.Report.Dir)
	assert.Empty(t, cfg.Auth.Token)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeConfig(t, dir, `
version: 1
endpoint:
  url: http://metrics.lan:5000/
  timeout: 3s
  ssh: me@bastion
poll:
  interval: 500ms
  history: 120
display:
  disk_rates: zero
  process_name_max: 24
report:
  dir: /tmp/reports
log:
  debug: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://metrics.lan:5000", cfg.Endpoint.URL, "trailing slash trimmed")
	assert.Equal(t, 3*time.Second, cfg.Endpoint.Timeout)
	assert.Equal(t, "me@bastion", cfg.Endpoint.SSH)
	assert.Equal(t, 500*time.Millisecond, cfg.Poll.Interval)
	assert.Equal(t, 120, cfg.Poll.History)
	assert.Equal(t, DiskRatesZero, cfg.Display.DiskRates)
	assert.Equal(t, 24, cfg.Display.ProcessNameMax)
	assert.Equal(t, 20, cfg.Display.GPUNameMax, "unset keys keep defaults")
	assert.Equal(t, "/tmp/reports", cfg.Report.Dir)
	assert.True(t, cfg.Log.Debug)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeConfig(t, dir, "endpoint:\n  url: http://from-file:5000\n")

	t.Setenv("SYSDASH_ENDPOINT_URL", "http://from-env:6000")
	t.Setenv("SYSDASH_POLL_HISTORY", "30")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:6000", cfg.Endpoint.URL)
	assert.Equal(t, 30, cfg.Poll.History)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFile),
		[]byte("SYSDASH_AUTH_TOKEN=from-dotenv\n"), 0600))
	t.Setenv("SYSDASH_AUTH_TOKEN", "")
	require.NoError(t, os.Unsetenv("SYSDASH_AUTH_TOKEN"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Auth.Token)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Poll, cfg.Poll)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := writeConfig(t, dir, "endpoint: [unclosed\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeConfig(t, dir, "poll:\n  interval: 10ms\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "poll.interval")
	})
}

func TestFind(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("explicit", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "version: 1\n")
		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		path := writeConfig(t, dir, "version: 1\n")
		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Base(path), filepath.Base(found))
	})

	t.Run("global", func(t *testing.T) {
		chdir(t, t.TempDir())
		global := GlobalPath()
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0755))
		require.NoError(t, os.WriteFile(global, []byte("version: 1\n"), 0644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, found)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig().Endpoint.URL, cfg.Endpoint.URL)
}
