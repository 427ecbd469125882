package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `
credentials_file: /secrets/chronicle.json
region: eu
`
	path := filepath.Join(t.TempDir(), "chronicle.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CredentialsFile != "/secrets/chronicle.json" {
		t.Errorf("CredentialsFile = %v", cfg.CredentialsFile)
	}
	if cfg.Region != "eu" {
		t.Errorf("Region = %v, want eu", cfg.Region)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CredentialsFile != "" || cfg.Region != "" {
		t.Errorf("missing file should yield empty config, got %+v", cfg)
	}
}

func TestLoadEmptyPathIsEmpty(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Region != "" {
		t.Errorf("empty path should yield empty config, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "valid region",
			config:  Config{Region: "asia-southeast1"},
			wantErr: false,
		},
		{
			name:    "unknown region",
			config:  Config{Region: "moon-base1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chronicle.yaml")
	if err := os.WriteFile(path, []byte("region: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load should reject malformed YAML")
	}
}
