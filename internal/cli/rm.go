package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/ebbinghaus/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a knowledge point",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	id := args[0]

	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	removed, err := a.store.Delete(cmd.Context(), id)
	if err != nil {
		exitErr("rm", err)
	}
	if !removed {
		exitErr("rm", fmt.Errorf("%w: %s", model.ErrNotFound, id))
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", id)
}
