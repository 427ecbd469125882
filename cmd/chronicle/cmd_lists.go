package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chroniclelabs/chronicle-cli/lists"
)

var (
	listDescription string
	listLinesFile   string
	listPageSize    int
	listPageToken   string
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage reference lists",
	Long: `Manage reference lists.

A reference list is a named collection of lines (IPs, domains, hashes)
that detection rules reference by name. Updates replace the whole list.`,
}

var listsCreateCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create a reference list from a lines file",
	Example: `  chronicle lists create suspicious_ips --lines-file ips.txt --description "internal watchlist"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runListsCreate,
}

var listsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Retrieve one reference list",
	Args:  cobra.ExactArgs(1),
	RunE:  runListsGet,
}

var listsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all reference lists",
	RunE:  runListsList,
}

var listsUpdateCmd = &cobra.Command{
	Use:     "update <name>",
	Short:   "Replace a reference list's contents",
	Example: `  chronicle lists update suspicious_ips --lines-file ips.txt`,
	Args:    cobra.ExactArgs(1),
	RunE:    runListsUpdate,
}

func init() {
	rootCmd.AddCommand(listsCmd)
	listsCmd.AddCommand(listsCreateCmd)
	listsCmd.AddCommand(listsGetCmd)
	listsCmd.AddCommand(listsListCmd)
	listsCmd.AddCommand(listsUpdateCmd)

	listsCreateCmd.Flags().StringVar(&listLinesFile, "lines-file", "", "File with one list entry per line")
	listsCreateCmd.Flags().StringVar(&listDescription, "description", "", "Human readable description")
	_ = listsCreateCmd.MarkFlagRequired("lines-file")

	listsUpdateCmd.Flags().StringVar(&listLinesFile, "lines-file", "", "File with one list entry per line")
	listsUpdateCmd.Flags().StringVar(&listDescription, "description", "", "Human readable description")
	_ = listsUpdateCmd.MarkFlagRequired("lines-file")

	listsListCmd.Flags().IntVar(&listPageSize, "page-size", 0, "Maximum lists per page")
	listsListCmd.Flags().StringVar(&listPageToken, "page-token", "", "Continuation token from a previous page")
}

func runListsCreate(cmd *cobra.Command, args []string) error {
	lines, err := readLines(listLinesFile)
	if err != nil {
		return err
	}

	svc, err := newListsService(cmd)
	if err != nil {
		return err
	}
	created, err := svc.Create(cmd.Context(), args[0], listDescription, lines)
	if err != nil {
		return err
	}
	return printJSON(created)
}

func runListsGet(cmd *cobra.Command, args []string) error {
	svc, err := newListsService(cmd)
	if err != nil {
		return err
	}
	list, err := svc.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(list)
}

func runListsList(cmd *cobra.Command, args []string) error {
	svc, err := newListsService(cmd)
	if err != nil {
		return err
	}
	all, nextPageToken, err := svc.ListAll(cmd.Context(), listPageSize, listPageToken)
	if err != nil {
		return err
	}
	return printPage(all, nextPageToken)
}

func runListsUpdate(cmd *cobra.Command, args []string) error {
	lines, err := readLines(listLinesFile)
	if err != nil {
		return err
	}

	svc, err := newListsService(cmd)
	if err != nil {
		return err
	}
	updated, err := svc.Update(cmd.Context(), args[0], listDescription, lines)
	if err != nil {
		return err
	}
	return printJSON(updated)
}

// readLines splits a file into list entries, dropping blank lines.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func newListsService(cmd *cobra.Command) (*lists.Service, error) {
	api, err := newBackstoryClient(cmd.Context())
	if err != nil {
		return nil, err
	}
	return lists.NewService(api), nil
}
