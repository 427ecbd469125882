package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chroniclelabs/chronicle-cli/detect"
)

var (
	ruleFile      string
	rulePageSize  int
	rulePageToken string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage detection rules",
	Long: `Manage detection rules.

Rules are written in the YARA-L detection language. Every edit creates
a new version; live rules run continuously against incoming events.`,
}

var rulesCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a rule from a YARA-L source file",
	Example: `  chronicle rules create --file suspicious_login.yaral`,
	RunE:    runRulesCreate,
}

var rulesGetCmd = &cobra.Command{
	Use:   "get <version-id>",
	Short: "Retrieve one rule version",
	Long: `Retrieve a rule. Pass a bare rule id for the latest version, or a
version id (ru_<uuid>@v_<seconds>_<nanos>) for a specific one.`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesGet,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the latest version of every rule",
	RunE:  runRulesList,
}

var rulesCreateVersionCmd = &cobra.Command{
	Use:     "create-version <rule-id>",
	Short:   "Create a new version of an existing rule",
	Example: `  chronicle rules create-version ru_e4ba5e19-... --file suspicious_login.yaral`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRulesCreateVersion,
}

var rulesListVersionsCmd = &cobra.Command{
	Use:   "list-versions <rule-id>",
	Short: "List all versions of one rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesListVersions,
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <rule-id>",
	Short: "Delete a rule and all its versions",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesDelete,
}

var rulesEnableLiveCmd = &cobra.Command{
	Use:   "enable-live <rule-id>",
	Short: "Run the rule continuously against incoming events",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesEnableLive,
}

var rulesDisableLiveCmd = &cobra.Command{
	Use:   "disable-live <rule-id>",
	Short: "Stop running the rule against incoming events",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesDisableLive,
}

var rulesEnableAlertingCmd = &cobra.Command{
	Use:   "enable-alerting <rule-id>",
	Short: "Raise alerts for the rule's detections",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesEnableAlerting,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesCreateCmd)
	rulesCmd.AddCommand(rulesGetCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesCreateVersionCmd)
	rulesCmd.AddCommand(rulesListVersionsCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rulesCmd.AddCommand(rulesEnableLiveCmd)
	rulesCmd.AddCommand(rulesDisableLiveCmd)
	rulesCmd.AddCommand(rulesEnableAlertingCmd)

	rulesCreateCmd.Flags().StringVarP(&ruleFile, "file", "f", "", "Path to a YARA-L rule source file")
	_ = rulesCreateCmd.MarkFlagRequired("file")

	rulesCreateVersionCmd.Flags().StringVarP(&ruleFile, "file", "f", "", "Path to a YARA-L rule source file")
	_ = rulesCreateVersionCmd.MarkFlagRequired("file")

	rulesListCmd.Flags().IntVar(&rulePageSize, "page-size", 0, "Maximum rules per page")
	rulesListCmd.Flags().StringVar(&rulePageToken, "page-token", "", "Continuation token from a previous page")

	rulesListVersionsCmd.Flags().IntVar(&rulePageSize, "page-size", 0, "Maximum versions per page")
	rulesListVersionsCmd.Flags().StringVar(&rulePageToken, "page-token", "", "Continuation token from a previous page")
}

func runRulesCreate(cmd *cobra.Command, args []string) error {
	text, err := readRuleText(ruleFile)
	if err != nil {
		return err
	}

	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	rule, err := svc.CreateRule(cmd.Context(), text)
	if err != nil {
		return err
	}
	return printJSON(rule)
}

func runRulesGet(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	rule, err := svc.GetRule(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(rule)
}

func runRulesList(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	rules, nextPageToken, err := svc.ListRules(cmd.Context(), rulePageSize, rulePageToken)
	if err != nil {
		return err
	}
	return printPage(rules, nextPageToken)
}

func runRulesCreateVersion(cmd *cobra.Command, args []string) error {
	text, err := readRuleText(ruleFile)
	if err != nil {
		return err
	}

	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	rule, err := svc.CreateRuleVersion(cmd.Context(), args[0], text)
	if err != nil {
		return err
	}
	return printJSON(rule)
}

func runRulesListVersions(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	versions, nextPageToken, err := svc.ListRuleVersions(cmd.Context(), args[0], rulePageSize, rulePageToken)
	if err != nil {
		return err
	}
	return printPage(versions, nextPageToken)
}

func runRulesDelete(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	if err := svc.DeleteRule(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Info().Str("rule_id", args[0]).Msg("rule deleted")
	return nil
}

func runRulesEnableLive(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	if err := svc.EnableLiveRule(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Info().Str("rule_id", args[0]).Msg("live rule enabled")
	return nil
}

func runRulesDisableLive(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	if err := svc.DisableLiveRule(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Info().Str("rule_id", args[0]).Msg("live rule disabled")
	return nil
}

func runRulesEnableAlerting(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	if err := svc.EnableAlerting(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Info().Str("rule_id", args[0]).Msg("alerting enabled")
	return nil
}

func readRuleText(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return "", fmt.Errorf("failed to read rule: %w", err)
	}
	return string(data), nil
}

// newDetectService wires the detect service to an authenticated
// backstory client.
func newDetectService(cmd *cobra.Command) (*detect.Service, error) {
	api, err := newBackstoryClient(cmd.Context())
	if err != nil {
		return nil, err
	}
	return detect.NewService(api), nil
}

// printPage prints a page of results plus the continuation token when
// the server returned one.
func printPage(items any, nextPageToken string) error {
	if err := printJSON(items); err != nil {
		return err
	}
	if nextPageToken != "" {
		log.Info().Str("next_page_token", nextPageToken).Msg("more results available")
	}
	return nil
}
