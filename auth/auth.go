// Package auth builds authorized HTTP sessions from Google service account
// credentials files.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth scopes used by the Chronicle APIs.
const (
	BackstoryScope     = "https://www.googleapis.com/auth/chronicle-backstory"
	CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

// NewHTTPClient reads a service account credentials file and returns an
// HTTP client that attaches OAuth tokens to every request. With no explicit
// scopes the Chronicle backstory scope is used.
func NewHTTPClient(ctx context.Context, credentialsFile string, scopes ...string) (*http.Client, error) {
	if len(scopes) == 0 {
		scopes = []string{BackstoryScope}
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return oauth2.NewClient(ctx, creds.TokenSource), nil
}
