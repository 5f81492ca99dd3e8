package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search knowledge points",
		Long:  "Case-insensitive substring search over titles, content, and tags. An empty query lists everything.",
		Run:   runSearch,
	}

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	results, err := a.store.Search(cmd.Context(), query)
	if err != nil {
		exitErr("search", err)
	}

	printResult(cmd.OutOrStdout(), results, func() string { return renderList(results) })
}
