package confgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroniclelabs/chronicle-cli/forwarder"
)

func TestWriteFiles(t *testing.T) {
	files, err := Generate(testForwarder(), []forwarder.Collector{syslogCollector()}, testOptions())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, files.WriteFiles(dir))

	config, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, files.Config, config)

	auth, err := os.ReadFile(filepath.Join(dir, AuthFileName))
	require.NoError(t, err)
	assert.Equal(t, files.Auth, auth)

	info, err := os.Stat(filepath.Join(dir, AuthFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "auth file must be owner-only")
}

func TestWriteFilesOverwrites(t *testing.T) {
	files, err := Generate(testForwarder(), []forwarder.Collector{syslogCollector()}, testOptions())
	require.NoError(t, err)

	dir := t.TempDir()
	stale := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(stale, []byte("stale contents"), 0o644))

	require.NoError(t, files.WriteFiles(dir))

	config, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Equal(t, files.Config, config)
}

func TestWriteFilesTightensLooseAuthPermissions(t *testing.T) {
	files, err := Generate(testForwarder(), []forwarder.Collector{syslogCollector()}, testOptions())
	require.NoError(t, err)

	dir := t.TempDir()
	loose := filepath.Join(dir, AuthFileName)
	require.NoError(t, os.WriteFile(loose, []byte("stale secrets"), 0o644))

	require.NoError(t, files.WriteFiles(dir))

	info, err := os.Stat(loose)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "overwriting must not keep loose permissions")
}

func TestWriteFilesMissingDirectory(t *testing.T) {
	files, err := Generate(testForwarder(), []forwarder.Collector{syslogCollector()}, testOptions())
	require.NoError(t, err)

	err = files.WriteFiles(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	// Documents survive a failed write for later retry.
	assert.NotEmpty(t, files.Config)
	assert.NotEmpty(t, files.Auth)
}
