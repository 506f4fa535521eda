package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NonInteractiveDefaults(t *testing.T) {
	noConfig(t)

	var out bytes.Buffer
	require.NoError(t, Init(InitOptions{NonInteractive: true, Out: &out}))
	assert.Contains(t, out.String(), "Created .sysdash.yaml")

	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.Endpoint.URL)
	assert.Equal(t, time.Second, cfg.Poll.Interval)
	assert.Equal(t, 60, cfg.Poll.History)
	assert.Empty(t, cfg.Endpoint.SSH)
}

func TestInit_NonInteractiveFlags(t *testing.T) {
	noConfig(t)

	err := Init(InitOptions{
		URL:            "http://metrics.lan:5000/",
		Interval:       "2s",
		SSH:            "ops@bastion",
		NonInteractive: true,
		Out:            &bytes.Buffer{},
	})
	require.NoError(t, err)

	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, "http://metrics.lan:5000", cfg.Endpoint.URL, "trailing slash trimmed")
	assert.Equal(t, 2*time.Second, cfg.Poll.Interval)
	assert.Equal(t, "ops@bastion", cfg.Endpoint.SSH)

	data, err := os.ReadFile(config.ConfigFileName)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# sysdash configuration")
}

func TestInit_ExistingConfig(t *testing.T) {
	noConfig(t)
	require.NoError(t, os.WriteFile(config.ConfigFileName, []byte("endpoint:\n  url: http://old:1\n"), 0644))

	err := Init(InitOptions{URL: "http://new:2", NonInteractive: true, Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "--force")

	require.NoError(t, Init(InitOptions{URL: "http://new:2", Overwrite: true, NonInteractive: true, Out: &bytes.Buffer{}}))
	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, "http://new:2", cfg.Endpoint.URL)
}

func TestInit_Global(t *testing.T) {
	noConfig(t)

	require.NoError(t, Init(InitOptions{Global: true, NonInteractive: true, Out: &bytes.Buffer{}}))
	assert.FileExists(t, config.GlobalPath())
	assert.NoFileExists(t, filepath.Join(".", config.ConfigFileName))
}

func TestInit_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		opts InitOptions
		want string
	}{
		{name: "relative url", opts: InitOptions{URL: "metrics.lan"}, want: "isn't a usable endpoint URL"},
		{name: "ftp url", opts: InitOptions{URL: "ftp://metrics.lan"}, want: "isn't a usable endpoint URL"},
		{name: "bad interval", opts: InitOptions{Interval: "often"}, want: "valid interval"},
		{name: "interval too short", opts: InitOptions{Interval: "100ms"}, want: "poll.interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noConfig(t)
			tt.opts.NonInteractive = true
			tt.opts.Out = &bytes.Buffer{}

			err := Init(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.want)
			assert.NoFileExists(t, config.ConfigFileName)
		})
	}
}

func TestPromptValidators(t *testing.T) {
	assert.NoError(t, validateEndpointURL("http://localhost:5000"))
	assert.NoError(t, validateEndpointURL(" https://metrics.lan "))
	assert.Error(t, validateEndpointURL("localhost:5000"))
	assert.Error(t, validateEndpointURL("http://"))

	assert.NoError(t, validateInterval("1s"))
	assert.NoError(t, validateInterval("250ms"))
	assert.Error(t, validateInterval("249ms"))
	assert.Error(t, validateInterval("1"))
}
