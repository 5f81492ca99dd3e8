package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show counts by mastery and what is due today",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	stats, err := a.store.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	printResult(cmd.OutOrStdout(), stats, func() string { return renderStats(stats) })
}
