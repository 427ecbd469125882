package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chroniclelabs/chronicle-cli/auth"
	"github.com/chroniclelabs/chronicle-cli/client"
	"github.com/chroniclelabs/chronicle-cli/config"
	"github.com/chroniclelabs/chronicle-cli/regions"
	"github.com/chroniclelabs/chronicle-cli/servicemgmt"
)

// backstoryBaseURL is the regional API endpoint for the detect, lists,
// forwarder and data tap services.
const backstoryBaseURL = "https://backstory.googleapis.com"

var (
	version = "0.1.0"

	flagConfigPath      string
	flagCredentialsFile string
	flagRegion          string
	flagDebug           bool

	rootCmd = &cobra.Command{
		Use:   "chronicle",
		Short: "Chronicle security API client",
		Long: `Chronicle - security API client

Manage detection rules, retrohunts, reference lists, data taps,
forwarders and their collectors, and generate forwarder configuration
files locally.

Credentials are Google service account JSON files. Defaults for
--credentials-file and --region can be stored in ~/.chronicle.yaml.`,
		Version:           version,
		PersistentPreRunE: loadDefaults,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`Chronicle CLI {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", config.DefaultPath(), "Path to the defaults file")
	rootCmd.PersistentFlags().StringVar(&flagCredentialsFile, "credentials-file", "", "Path to a service account credentials JSON file")
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "Chronicle region (default us)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// loadDefaults fills unset persistent flags from the defaults file and
// validates the resulting settings.
func loadDefaults(cmd *cobra.Command, args []string) error {
	if flagDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	mergeDefaults(cfg)

	if !regions.Valid(flagRegion) {
		return fmt.Errorf("unknown region %q (supported: %v)", flagRegion, regions.Supported())
	}
	return nil
}

// mergeDefaults applies file defaults to flags the user did not set.
func mergeDefaults(cfg *config.Config) {
	if flagCredentialsFile == "" {
		flagCredentialsFile = cfg.CredentialsFile
	}
	if flagRegion == "" {
		flagRegion = cfg.Region
	}
	if flagRegion == "" {
		flagRegion = regions.Default
	}
}

// newBackstoryClient builds an authenticated client for the regional
// backstory endpoint.
func newBackstoryClient(ctx context.Context) (*client.Client, error) {
	httpClient, err := auth.NewHTTPClient(ctx, flagCredentialsFile, auth.BackstoryScope)
	if err != nil {
		return nil, err
	}
	return client.New(client.Config{
		BaseURL:    regions.URL(backstoryBaseURL, flagRegion),
		HTTPClient: httpClient,
		Logger:     log.Logger,
	})
}

// newServiceMgmtClient builds an authenticated client for the service
// management endpoint, which is not regionalized.
func newServiceMgmtClient(ctx context.Context) (*client.Client, error) {
	httpClient, err := auth.NewHTTPClient(ctx, flagCredentialsFile, auth.CloudPlatformScope)
	if err != nil {
		return nil, err
	}
	return client.New(client.Config{
		BaseURL:    servicemgmt.BaseURL,
		HTTPClient: httpClient,
		Logger:     log.Logger,
	})
}

// printJSON pretty-prints an API response to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// readJSONFile decodes a JSON resource definition from a file.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
