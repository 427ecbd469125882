package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroniclelabs/chronicle-cli/config"
)

func TestMergeDefaults(t *testing.T) {
	resetFlags := func() {
		flagCredentialsFile = ""
		flagRegion = ""
	}
	t.Cleanup(resetFlags)

	t.Run("file values fill unset flags", func(t *testing.T) {
		resetFlags()
		mergeDefaults(&config.Config{CredentialsFile: "/secrets/sa.json", Region: "eu"})
		assert.Equal(t, "/secrets/sa.json", flagCredentialsFile)
		assert.Equal(t, "eu", flagRegion)
	})

	t.Run("flags win over file values", func(t *testing.T) {
		resetFlags()
		flagCredentialsFile = "/override.json"
		flagRegion = "asia-southeast1"
		mergeDefaults(&config.Config{CredentialsFile: "/secrets/sa.json", Region: "eu"})
		assert.Equal(t, "/override.json", flagCredentialsFile)
		assert.Equal(t, "asia-southeast1", flagRegion)
	})

	t.Run("region falls back to us", func(t *testing.T) {
		resetFlags()
		mergeDefaults(&config.Config{})
		assert.Equal(t, "us", flagRegion)
	})
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ips.txt")
	require.NoError(t, os.WriteFile(path, []byte("10.0.0.1\n\n  10.0.0.2  \n"), 0o600))

	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, lines)
}

func TestReadJSONFileRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	var out map[string]any
	assert.Error(t, readJSONFile(path, &out))
}
