package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chroniclelabs/chronicle-cli/forwarder"
	"github.com/chroniclelabs/chronicle-cli/forwarder/confgen"
)

var (
	forwarderFile       string
	forwarderUpdateMask []string

	generateOutputDir     string
	generateCustomerID    string
	generateSecretKeyFile string
	generateVerbose       bool
)

var forwardersCmd = &cobra.Command{
	Use:   "forwarders",
	Short: "Manage log forwarders",
	Long: `Manage log forwarders.

A forwarder is a deployment of the log collection agent. Its definition
holds upload compression, regex filters, metadata labels and server
settings; the logs it tails are described by its collectors.`,
}

var forwardersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a forwarder from a JSON definition",
	Example: `  chronicle forwarders create --file forwarder.json`,
	RunE:    runForwardersCreate,
}

var forwardersGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Retrieve one forwarder",
	Example: `  chronicle forwarders get forwarders/3e9a8c6b-8b5f-47e2-b8b8-10b56ecb1d39`,
	Args:    cobra.ExactArgs(1),
	RunE:    runForwardersGet,
}

var forwardersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all forwarders",
	RunE:  runForwardersList,
}

var forwardersUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a forwarder from a JSON definition",
	Long: `Update a forwarder. The definition must carry the forwarder name, and
--update-mask selects which fields to replace. List fields are replaced
whole, not merged.`,
	Example: `  chronicle forwarders update --file forwarder.json --update-mask display_name`,
	RunE:    runForwardersUpdate,
}

var forwardersDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a forwarder",
	Args:  cobra.ExactArgs(1),
	RunE:  runForwardersDelete,
}

var forwardersGenerateCmd = &cobra.Command{
	Use:   "generate-files <name>",
	Short: "Generate forwarder configuration files locally",
	Long: `Fetch a forwarder and its collectors, then render the forwarder.conf
and forwarder_auth.conf files the collection agent consumes. Secrets
only ever appear in the auth file.`,
	Example: `  chronicle forwarders generate-files forwarders/3e9a8c6b-8b5f-47e2-b8b8-10b56ecb1d39 \
    --customer-id c8c65bfa-2f41-4e5f-b1e4-4a51a1f90c21 \
    --secret-key-file ingestion-key.json \
    --output-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runForwardersGenerate,
}

func init() {
	rootCmd.AddCommand(forwardersCmd)
	forwardersCmd.AddCommand(forwardersCreateCmd)
	forwardersCmd.AddCommand(forwardersGetCmd)
	forwardersCmd.AddCommand(forwardersListCmd)
	forwardersCmd.AddCommand(forwardersUpdateCmd)
	forwardersCmd.AddCommand(forwardersDeleteCmd)
	forwardersCmd.AddCommand(forwardersGenerateCmd)

	forwardersCreateCmd.Flags().StringVarP(&forwarderFile, "file", "f", "", "Path to a forwarder JSON definition")
	_ = forwardersCreateCmd.MarkFlagRequired("file")

	forwardersUpdateCmd.Flags().StringVarP(&forwarderFile, "file", "f", "", "Path to a forwarder JSON definition")
	forwardersUpdateCmd.Flags().StringSliceVar(&forwarderUpdateMask, "update-mask", nil, "Fields to replace (snake_case paths)")
	_ = forwardersUpdateCmd.MarkFlagRequired("file")
	_ = forwardersUpdateCmd.MarkFlagRequired("update-mask")

	forwardersGenerateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "", "Directory to write the generated files into (omit to skip writing)")
	forwardersGenerateCmd.Flags().StringVar(&generateCustomerID, "customer-id", "", "Customer UUID stamped into the output identity")
	forwardersGenerateCmd.Flags().StringVar(&generateSecretKeyFile, "secret-key-file", "", "File holding the ingestion secret key")
	forwardersGenerateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print the generated configuration to stdout")
	_ = forwardersGenerateCmd.MarkFlagRequired("customer-id")
	_ = forwardersGenerateCmd.MarkFlagRequired("secret-key-file")
}

func runForwardersCreate(cmd *cobra.Command, args []string) error {
	var f forwarder.Forwarder
	if err := readJSONFile(forwarderFile, &f); err != nil {
		return err
	}

	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	created, err := svc.CreateForwarder(cmd.Context(), &f)
	if err != nil {
		return err
	}
	return printJSON(created)
}

func runForwardersGet(cmd *cobra.Command, args []string) error {
	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	f, err := svc.GetForwarder(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(f)
}

func runForwardersList(cmd *cobra.Command, args []string) error {
	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	forwarders, err := svc.ListForwarders(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(forwarders)
}

func runForwardersUpdate(cmd *cobra.Command, args []string) error {
	var f forwarder.Forwarder
	if err := readJSONFile(forwarderFile, &f); err != nil {
		return err
	}

	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	updated, err := svc.UpdateForwarder(cmd.Context(), &f, forwarderUpdateMask)
	if err != nil {
		return err
	}
	return printJSON(updated)
}

func runForwardersDelete(cmd *cobra.Command, args []string) error {
	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	if err := svc.DeleteForwarder(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Info().Str("name", args[0]).Msg("forwarder deleted")
	return nil
}

func runForwardersGenerate(cmd *cobra.Command, args []string) error {
	secretKey, err := os.ReadFile(generateSecretKeyFile) // #nosec G304 -- path is intentional user input
	if err != nil {
		return fmt.Errorf("failed to read secret key: %w", err)
	}

	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	f, err := svc.GetForwarder(ctx, args[0])
	if err != nil {
		return err
	}
	collectors, err := svc.ListCollectors(ctx, args[0])
	if err != nil {
		return err
	}

	files, err := confgen.Generate(f, collectors, confgen.Options{
		Region:     flagRegion,
		CustomerID: generateCustomerID,
		SecretKey:  string(secretKey),
	})
	if err != nil {
		return err
	}

	if err := emitGeneratedFiles(files, generateOutputDir, generateVerbose, cmd.OutOrStdout()); err != nil {
		return err
	}
	if generateOutputDir != "" {
		log.Info().
			Str("forwarder", args[0]).
			Int("collectors", len(collectors)).
			Str("dir", generateOutputDir).
			Msg("configuration files written")
	}
	return nil
}

// emitGeneratedFiles prints both documents when verbose and persists them
// only when an output directory was selected.
func emitGeneratedFiles(files *confgen.Files, outputDir string, verbose bool, w io.Writer) error {
	if verbose {
		fmt.Fprintf(w, "=== %s ===\n%s\n", confgen.ConfigFileName, files.Config)
		fmt.Fprintf(w, "=== %s ===\n%s\n", confgen.AuthFileName, files.Auth)
	}
	if outputDir == "" {
		return nil
	}
	return files.WriteFiles(outputDir)
}

// newForwarderService wires the forwarder service to an authenticated
// backstory client.
func newForwarderService(cmd *cobra.Command) (*forwarder.Service, error) {
	api, err := newBackstoryClient(cmd.Context())
	if err != nil {
		return nil, err
	}
	return forwarder.NewService(api), nil
}
