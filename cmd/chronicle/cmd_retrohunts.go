package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	retrohuntStart     string
	retrohuntEnd       string
	retrohuntPageSize  int
	retrohuntPageToken string
	retrohuntFilter    string
)

var retrohuntsCmd = &cobra.Command{
	Use:   "retrohunts",
	Short: "Run rules over historical events",
	Long: `Run rules over historical events.

A retrohunt executes one rule version against events in a past time
range and records any detections it produces.`,
}

var retrohuntsRunCmd = &cobra.Command{
	Use:   "run <version-id>",
	Short: "Start a retrohunt for a rule version",
	Example: `  chronicle retrohunts run ru_e4ba5e19-...@v_1700000000_0 \
    --start-time 2024-04-01T00:00:00Z --end-time 2024-05-01T00:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrohuntsRun,
}

var retrohuntsGetCmd = &cobra.Command{
	Use:   "get <version-id> <retrohunt-id>",
	Short: "Retrieve one retrohunt",
	Args:  cobra.ExactArgs(2),
	RunE:  runRetrohuntsGet,
}

var retrohuntsListCmd = &cobra.Command{
	Use:   "list <version-id>",
	Short: "List the retrohunts of a rule version",
	Args:  cobra.ExactArgs(1),
	RunE:  runRetrohuntsList,
}

var retrohuntsDetectionsCmd = &cobra.Command{
	Use:   "detections <version-id>",
	Short: "List the detections of a rule version",
	Args:  cobra.ExactArgs(1),
	RunE:  runRetrohuntsDetections,
}

var retrohuntsErrorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "List rule execution errors",
	Example: `  chronicle retrohunts errors --rule-filter ru_e4ba5e19-...`,
	RunE:    runRetrohuntsErrors,
}

func init() {
	rootCmd.AddCommand(retrohuntsCmd)
	retrohuntsCmd.AddCommand(retrohuntsRunCmd)
	retrohuntsCmd.AddCommand(retrohuntsGetCmd)
	retrohuntsCmd.AddCommand(retrohuntsListCmd)
	retrohuntsCmd.AddCommand(retrohuntsDetectionsCmd)
	retrohuntsCmd.AddCommand(retrohuntsErrorsCmd)

	retrohuntsRunCmd.Flags().StringVar(&retrohuntStart, "start-time", "", "Event range start (RFC 3339)")
	retrohuntsRunCmd.Flags().StringVar(&retrohuntEnd, "end-time", "", "Event range end (RFC 3339)")
	_ = retrohuntsRunCmd.MarkFlagRequired("start-time")
	_ = retrohuntsRunCmd.MarkFlagRequired("end-time")

	for _, c := range []*cobra.Command{retrohuntsListCmd, retrohuntsDetectionsCmd, retrohuntsErrorsCmd} {
		c.Flags().IntVar(&retrohuntPageSize, "page-size", 0, "Maximum results per page")
		c.Flags().StringVar(&retrohuntPageToken, "page-token", "", "Continuation token from a previous page")
	}
	retrohuntsErrorsCmd.Flags().StringVar(&retrohuntFilter, "rule-filter", "", "Restrict errors to one rule or version id")
}

func runRetrohuntsRun(cmd *cobra.Command, args []string) error {
	start, err := time.Parse(time.RFC3339, retrohuntStart)
	if err != nil {
		return fmt.Errorf("invalid --start-time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, retrohuntEnd)
	if err != nil {
		return fmt.Errorf("invalid --end-time: %w", err)
	}

	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	retrohunt, err := svc.RunRetrohunt(cmd.Context(), args[0], start, end)
	if err != nil {
		return err
	}
	return printJSON(retrohunt)
}

func runRetrohuntsGet(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	retrohunt, err := svc.GetRetrohunt(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return printJSON(retrohunt)
}

func runRetrohuntsList(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	retrohunts, nextPageToken, err := svc.ListRetrohunts(cmd.Context(), args[0], retrohuntPageSize, retrohuntPageToken)
	if err != nil {
		return err
	}
	return printPage(retrohunts, nextPageToken)
}

func runRetrohuntsDetections(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	detections, nextPageToken, err := svc.ListDetections(cmd.Context(), args[0], retrohuntPageSize, retrohuntPageToken)
	if err != nil {
		return err
	}
	return printPage(detections, nextPageToken)
}

func runRetrohuntsErrors(cmd *cobra.Command, args []string) error {
	svc, err := newDetectService(cmd)
	if err != nil {
		return err
	}
	healthErrors, nextPageToken, err := svc.ListErrors(cmd.Context(), retrohuntFilter, retrohuntPageSize, retrohuntPageToken)
	if err != nil {
		return err
	}
	return printPage(healthErrors, nextPageToken)
}
