package confgen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names expected by the forwarder host software.
const (
	ConfigFileName = "forwarder.conf"
	AuthFileName   = "forwarder_auth.conf"
)

// WriteFiles persists both documents into dir, truncating existing files.
// The auth file is written with owner-only permissions. On failure the
// in-memory documents remain usable, so callers can retry persistence
// without regenerating.
func (f *Files) WriteFiles(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", dir)
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(configPath, f.Config, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}

	authPath := filepath.Join(dir, AuthFileName)
	if err := os.WriteFile(authPath, f.Auth, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", AuthFileName, err)
	}
	// WriteFile keeps the mode of a pre-existing file; force owner-only.
	if err := os.Chmod(authPath, 0o600); err != nil {
		return fmt.Errorf("failed to restrict %s: %w", AuthFileName, err)
	}
	return nil
}
