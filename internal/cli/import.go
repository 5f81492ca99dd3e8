package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the collection with an exported JSON bundle",
		Long: "Replace all knowledge points (and settings, when the bundle has them) with the contents " +
			"of an export bundle. The current data is saved as a backup first; see restore-backup.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read input", err)
	}

	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	n, err := a.store.Import(cmd.Context(), data)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", n)
}
