package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/ebbinghaus/internal/export"
	"github.com/rcliao/ebbinghaus/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export knowledge points and settings",
		Long: "Export the whole collection. json and yaml write a re-importable bundle; " +
			"markdown writes a readable report grouped by mastery.",
		Run: runExport,
	}

	cmd.Flags().String("as", "json", "Export format: json, yaml, markdown")
	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	as, _ := cmd.Flags().GetString("as")
	output, _ := cmd.Flags().GetString("output")

	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			exitErr("export", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeExport(cmd.Context(), a, as, w); err != nil {
		exitErr("export", err)
	}
}

func writeExport(ctx context.Context, a *app, as string, w io.Writer) error {
	switch as {
	case "json":
		bundle, err := a.store.Export(ctx)
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		bundle, err := a.store.Export(ctx)
		if err != nil {
			return err
		}
		return export.YAML(w, bundle)
	case "markdown", "md":
		points, err := a.store.All(ctx)
		if err != nil {
			return err
		}
		return export.Markdown(w, points, a.store.Today())
	}
	return fmt.Errorf("%w: unknown export format %q", model.ErrInvalidArgument, as)
}
