package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chroniclelabs/chronicle-cli/datatap"
)

var (
	tapDisplayName string
	tapTopic       string
	tapFilter      string
	tapFormat      string
)

var datatapsCmd = &cobra.Command{
	Use:   "datataps",
	Short: "Manage data taps",
	Long: `Manage data taps.

A data tap streams a copy of ingested UDM events to a customer-owned
cloud pub/sub topic, optionally filtered and serialized as JSON or
marshalled proto.`,
}

var datatapsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a data tap",
	Example: `  chronicle datataps create --display-name AllEvents \
    --topic projects/my-project/topics/chronicle-events --format JSON`,
	RunE: runDatatapsCreate,
}

var datatapsGetCmd = &cobra.Command{
	Use:   "get <tap-id>",
	Short: "Retrieve one data tap",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatatapsGet,
}

var datatapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all data taps",
	RunE:  runDatatapsList,
}

var datatapsUpdateCmd = &cobra.Command{
	Use:   "update <tap-id>",
	Short: "Replace a data tap's configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatatapsUpdate,
}

var datatapsDeleteCmd = &cobra.Command{
	Use:   "delete <tap-id>",
	Short: "Delete a data tap",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatatapsDelete,
}

func init() {
	rootCmd.AddCommand(datatapsCmd)
	datatapsCmd.AddCommand(datatapsCreateCmd)
	datatapsCmd.AddCommand(datatapsGetCmd)
	datatapsCmd.AddCommand(datatapsListCmd)
	datatapsCmd.AddCommand(datatapsUpdateCmd)
	datatapsCmd.AddCommand(datatapsDeleteCmd)

	for _, c := range []*cobra.Command{datatapsCreateCmd, datatapsUpdateCmd} {
		c.Flags().StringVar(&tapDisplayName, "display-name", "", "Human readable tap name")
		c.Flags().StringVar(&tapTopic, "topic", "", "Destination pub/sub topic (projects/<p>/topics/<t>)")
		c.Flags().StringVar(&tapFilter, "filter", "", "UDM filter expression")
		c.Flags().StringVar(&tapFormat, "format", datatap.SinkFormatJSON, "Serialization: JSON or MARSHALLED_PROTO")
		_ = c.MarkFlagRequired("display-name")
		_ = c.MarkFlagRequired("topic")
	}
}

func tapFromFlags() *datatap.DataTap {
	return &datatap.DataTap{
		DisplayName:   tapDisplayName,
		CloudPubsub:   &datatap.CloudPubsub{Topic: tapTopic},
		Filter:        tapFilter,
		SerializedFmt: tapFormat,
	}
}

func runDatatapsCreate(cmd *cobra.Command, args []string) error {
	svc, err := newDatatapService(cmd)
	if err != nil {
		return err
	}
	created, err := svc.Create(cmd.Context(), tapFromFlags())
	if err != nil {
		return err
	}
	return printJSON(created)
}

func runDatatapsGet(cmd *cobra.Command, args []string) error {
	svc, err := newDatatapService(cmd)
	if err != nil {
		return err
	}
	tap, err := svc.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(tap)
}

func runDatatapsList(cmd *cobra.Command, args []string) error {
	svc, err := newDatatapService(cmd)
	if err != nil {
		return err
	}
	taps, err := svc.List(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(taps)
}

func runDatatapsUpdate(cmd *cobra.Command, args []string) error {
	svc, err := newDatatapService(cmd)
	if err != nil {
		return err
	}
	updated, err := svc.Update(cmd.Context(), args[0], tapFromFlags())
	if err != nil {
		return err
	}
	return printJSON(updated)
}

func runDatatapsDelete(cmd *cobra.Command, args []string) error {
	svc, err := newDatatapService(cmd)
	if err != nil {
		return err
	}
	if err := svc.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Info().Str("tap_id", args[0]).Msg("data tap deleted")
	return nil
}

func newDatatapService(cmd *cobra.Command) (*datatap.Service, error) {
	api, err := newBackstoryClient(cmd.Context())
	if err != nil {
		return nil, err
	}
	return datatap.NewService(api), nil
}
