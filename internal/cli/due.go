package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List knowledge points due today",
		Run:   runDue,
	}

	RootCmd.AddCommand(cmd)
}

func runDue(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	due, err := a.store.Due(cmd.Context())
	if err != nil {
		exitErr("due", err)
	}

	printResult(cmd.OutOrStdout(), due, func() string { return renderList(due) })
}
