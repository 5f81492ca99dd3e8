package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a knowledge point",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	kp, err := a.store.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("show", err)
	}

	printResult(cmd.OutOrStdout(), kp, func() string { return renderCard(*kp) })
}
