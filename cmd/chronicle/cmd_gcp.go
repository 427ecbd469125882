package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chroniclelabs/chronicle-cli/servicemgmt"
)

var (
	gcpOrganizationID   int64
	gcpFilterID         string
	gcpFilterExpression string
)

var gcpCmd = &cobra.Command{
	Use:   "gcp",
	Short: "Manage the GCP organization association",
	Long: `Manage the GCP organization association.

These commands talk to the service management endpoint with the
cloud-platform scope, controlling which GCP logs flow into Chronicle
and whether the organization stays connected at all.`,
}

var gcpGetSettingsCmd = &cobra.Command{
	Use:     "get-settings",
	Short:   "Retrieve the organization's Chronicle settings",
	Example: `  chronicle gcp get-settings --organization-id 123456789`,
	RunE:    runGCPGetSettings,
}

var gcpUpdateFilterCmd = &cobra.Command{
	Use:   "update-filter",
	Short: "Replace a log flow filter's expression",
	Example: `  chronicle gcp update-filter --organization-id 123456789 \
    --filter-id f1 --filter-expression 'log_id("dns.googleapis.com/dns_queries")'`,
	RunE: runGCPUpdateFilter,
}

var gcpDeleteAssociationCmd = &cobra.Command{
	Use:   "delete-association",
	Short: "Disconnect the organization from Chronicle",
	RunE:  runGCPDeleteAssociation,
}

func init() {
	rootCmd.AddCommand(gcpCmd)
	gcpCmd.AddCommand(gcpGetSettingsCmd)
	gcpCmd.AddCommand(gcpUpdateFilterCmd)
	gcpCmd.AddCommand(gcpDeleteAssociationCmd)

	gcpCmd.PersistentFlags().Int64Var(&gcpOrganizationID, "organization-id", 0, "Numeric GCP organization id")
	_ = gcpCmd.MarkPersistentFlagRequired("organization-id")

	gcpUpdateFilterCmd.Flags().StringVar(&gcpFilterID, "filter-id", "", "Log flow filter id")
	gcpUpdateFilterCmd.Flags().StringVar(&gcpFilterExpression, "filter-expression", "", "New filter expression")
	_ = gcpUpdateFilterCmd.MarkFlagRequired("filter-id")
	_ = gcpUpdateFilterCmd.MarkFlagRequired("filter-expression")
}

func runGCPGetSettings(cmd *cobra.Command, args []string) error {
	svc, err := newServiceMgmtService(cmd)
	if err != nil {
		return err
	}
	settings, err := svc.GetGCPSettings(cmd.Context(), gcpOrganizationID)
	if err != nil {
		return err
	}
	return printJSON(settings)
}

func runGCPUpdateFilter(cmd *cobra.Command, args []string) error {
	svc, err := newServiceMgmtService(cmd)
	if err != nil {
		return err
	}
	updated, err := svc.UpdateGCPLogFlowFilter(cmd.Context(), gcpOrganizationID, gcpFilterID, gcpFilterExpression)
	if err != nil {
		return err
	}
	return printJSON(updated)
}

func runGCPDeleteAssociation(cmd *cobra.Command, args []string) error {
	svc, err := newServiceMgmtService(cmd)
	if err != nil {
		return err
	}
	if err := svc.DeleteGCPAssociation(cmd.Context(), gcpOrganizationID); err != nil {
		return err
	}
	log.Info().Int64("organization_id", gcpOrganizationID).Msg("gcp association deleted")
	return nil
}

func newServiceMgmtService(cmd *cobra.Command) (*servicemgmt.Service, error) {
	api, err := newServiceMgmtClient(cmd.Context())
	if err != nil {
		return nil, err
	}
	return servicemgmt.NewService(api), nil
}
