package cli

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `# my dashboard
endpoint:
  url: http://localhost:5000
poll:
  interval: 1s
`

func TestConfigSetCommand(t *testing.T) {
	path := useConfig(t, baseConfig)

	var out bytes.Buffer
	require.NoError(t, configSetCommand("poll.interval", "2s", &out))
	assert.Contains(t, out.String(), "Set poll.interval = 2s")

	require.NoError(t, configSetCommand("display.disk_rates", "zero", &out))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Poll.Interval)
	assert.Equal(t, "zero", cfg.Display.DiskRates)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my dashboard", "comments survive")
}

func TestConfigSetCommand_RollsBackInvalid(t *testing.T) {
	path := useConfig(t, baseConfig)

	err := configSetCommand("poll.interval", "10ms", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "poll.interval")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, baseConfig, string(data))
}

func TestConfigSetCommand_NoFile(t *testing.T) {
	noConfig(t)

	err := configSetCommand("poll.interval", "2s", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sysdash init")
}

func TestConfigPathCommand(t *testing.T) {
	path := useConfig(t, baseConfig)
	var out bytes.Buffer
	require.NoError(t, configPathCommand(&out))
	assert.Equal(t, path+"\n", out.String())

	noConfig(t)
	out.Reset()
	require.NoError(t, configPathCommand(&out))
	assert.Contains(t, out.String(), "using defaults")
}
