package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "restore-backup",
		Short: "Restore the data saved by the last import",
		Run:   runRestore,
	}

	RootCmd.AddCommand(cmd)
}

func runRestore(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	n, err := a.store.RestoreBackup(cmd.Context())
	if err != nil {
		exitErr("restore-backup", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"restored":%d}`+"\n", n)
}
