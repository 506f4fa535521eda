package tunnel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSSHConfig(t *testing.T, home, content string) string {
	t.Helper()
	path := filepath.Join(home, ".ssh", "config")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestResolveSettings_HostStrings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USER", "alice")

	tests := []struct {
		host     string
		wantUser string
		wantHost string
		wantPort string
	}{
		{"metrics.lan", "alice", "metrics.lan", "22"},
		{"bob@metrics.lan", "bob", "metrics.lan", "22"},
		{"metrics.lan:2222", "alice", "metrics.lan", "2222"},
		{"bob@10.0.0.5:2200", "bob", "10.0.0.5", "2200"},
		{"metrics.lan:", "alice", "metrics.lan:", "22"},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			s := resolveSettings(tt.host, logger.Noop())
			assert.Equal(t, tt.wantUser, s.user)
			assert.Equal(t, tt.wantHost, s.hostname)
			assert.Equal(t, tt.wantPort, s.port)
		})
	}
}

func TestResolveSettings_FromSSHConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USER", "alice")
	writeSSHConfig(t, home, `
Host bastion
    HostName 203.0.113.7
    Port 2022
    User ops
    IdentityFile ~/.ssh/bastion_key
`)

	s := resolveSettings("bastion", logger.Noop())
	assert.Equal(t, "203.0.113.7", s.hostname)
	assert.Equal(t, "2022", s.port)
	assert.Equal(t, "ops", s.user)
	assert.Equal(t, filepath.Join(home, ".ssh", "bastion_key"), s.identityFile)
	assert.Equal(t, "203.0.113.7:2022", s.address())
	assert.Equal(t, "ops@203.0.113.7:2022", s.describe())
}

func TestResolveSettings_MatchBlockWarning(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeSSHConfig(t, home, `Host early
    HostName 10.0.0.1

Match host *.corp
    User corp

Host late
    HostName 10.0.0.2
`)

	log := logger.NewBufferLogger()
	early := resolveSettings("early", log)
	assert.Equal(t, "10.0.0.1", early.hostname)
	assert.False(t, log.HasLevel("warn"))

	late := resolveSettings("late", log)
	assert.Equal(t, "late", late.hostname, "entries after Match are not visible")
	assert.True(t, log.HasLevel("warn"))
}

func TestPreprocessSSHConfig(t *testing.T) {
	home := t.TempDir()
	path := writeSSHConfig(t, home, "Host a\n  Port 1\nmatch all\n  Port 2\n")

	content, line, err := preprocessSSHConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, line)
	assert.Equal(t, "Host a\n  Port 1", string(content))

	plain := writeSSHConfig(t, home, "Host a\n  Port 1\n")
	content, line, err = preprocessSSHConfig(plain)
	require.NoError(t, err)
	assert.Equal(t, 0, line)
	assert.Equal(t, "Host a\n  Port 1\n", string(content))

	_, _, err = preprocessSSHConfig(filepath.Join(home, "nope"))
	assert.Error(t, err)
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("22"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("2a"))
}
