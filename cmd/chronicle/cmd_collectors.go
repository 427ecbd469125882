package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chroniclelabs/chronicle-cli/forwarder"
)

var (
	collectorForwarder  string
	collectorFile       string
	collectorUpdateMask []string
)

var collectorsCmd = &cobra.Command{
	Use:   "collectors",
	Short: "Manage forwarder collectors",
	Long: `Manage forwarder collectors.

A collector describes one log source a forwarder tails: a file, a
syslog listener, a splunk instance, a pcap interface or a kafka topic.
Every collector belongs to exactly one forwarder.`,
}

var collectorsCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a collector from a JSON definition",
	Example: `  chronicle collectors create --forwarder forwarders/3e9a8c6b-... --file collector.json`,
	RunE:    runCollectorsCreate,
}

var collectorsGetCmd = &cobra.Command{
	Use:     "get <name>",
	Short:   "Retrieve one collector",
	Example: `  chronicle collectors get forwarders/3e9a8c6b-.../collectors/f1f39d4f-...`,
	Args:    cobra.ExactArgs(1),
	RunE:    runCollectorsGet,
}

var collectorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the collectors of a forwarder",
	RunE:  runCollectorsList,
}

var collectorsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a collector from a JSON definition",
	Long: `Update a collector. The definition must carry the collector name, and
--update-mask selects which fields to replace.`,
	Example: `  chronicle collectors update --file collector.json --update-mask config.log_type`,
	RunE:    runCollectorsUpdate,
}

var collectorsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a collector",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectorsDelete,
}

func init() {
	rootCmd.AddCommand(collectorsCmd)
	collectorsCmd.AddCommand(collectorsCreateCmd)
	collectorsCmd.AddCommand(collectorsGetCmd)
	collectorsCmd.AddCommand(collectorsListCmd)
	collectorsCmd.AddCommand(collectorsUpdateCmd)
	collectorsCmd.AddCommand(collectorsDeleteCmd)

	collectorsCreateCmd.Flags().StringVar(&collectorForwarder, "forwarder", "", "Parent forwarder name")
	collectorsCreateCmd.Flags().StringVarP(&collectorFile, "file", "f", "", "Path to a collector JSON definition")
	_ = collectorsCreateCmd.MarkFlagRequired("forwarder")
	_ = collectorsCreateCmd.MarkFlagRequired("file")

	collectorsListCmd.Flags().StringVar(&collectorForwarder, "forwarder", "", "Parent forwarder name")
	_ = collectorsListCmd.MarkFlagRequired("forwarder")

	collectorsUpdateCmd.Flags().StringVarP(&collectorFile, "file", "f", "", "Path to a collector JSON definition")
	collectorsUpdateCmd.Flags().StringSliceVar(&collectorUpdateMask, "update-mask", nil, "Fields to replace (snake_case paths)")
	_ = collectorsUpdateCmd.MarkFlagRequired("file")
	_ = collectorsUpdateCmd.MarkFlagRequired("update-mask")
}

func runCollectorsCreate(cmd *cobra.Command, args []string) error {
	var c forwarder.Collector
	if err := readJSONFile(collectorFile, &c); err != nil {
		return err
	}

	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	created, err := svc.CreateCollector(cmd.Context(), collectorForwarder, &c)
	if err != nil {
		return err
	}
	return printJSON(created)
}

func runCollectorsGet(cmd *cobra.Command, args []string) error {
	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	c, err := svc.GetCollector(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(c)
}

func runCollectorsList(cmd *cobra.Command, args []string) error {
	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	collectors, err := svc.ListCollectors(cmd.Context(), collectorForwarder)
	if err != nil {
		return err
	}
	return printJSON(collectors)
}

func runCollectorsUpdate(cmd *cobra.Command, args []string) error {
	var c forwarder.Collector
	if err := readJSONFile(collectorFile, &c); err != nil {
		return err
	}

	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	updated, err := svc.UpdateCollector(cmd.Context(), &c, collectorUpdateMask)
	if err != nil {
		return err
	}
	return printJSON(updated)
}

func runCollectorsDelete(cmd *cobra.Command, args []string) error {
	svc, err := newForwarderService(cmd)
	if err != nil {
		return err
	}
	if err := svc.DeleteCollector(cmd.Context(), args[0]); err != nil {
		return err
	}
	log.Info().Str("name", args[0]).Msg("collector deleted")
	return nil
}
