package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// useConfig writes content as the active config file inside a fresh working
// directory and points --config at it for the rest of the test.
func useConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(dir, ".sysdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })
	return path
}

// noConfig runs the test somewhere no config file can be found.
func noConfig(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	old := cfgFile
	cfgFile = ""
	t.Cleanup(func() { cfgFile = old })
}

// chdir changes the working directory for the rest of the test and restores
// it afterwards (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
