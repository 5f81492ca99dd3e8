package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/ebbinghaus/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge points",
		Run:   runList,
	}

	cmd.Flags().StringP("mastery", "m", "", "Filter by mastery level")
	cmd.Flags().Bool("ids-only", false, "Only output ids")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	masteryStr, _ := cmd.Flags().GetString("mastery")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	var points []model.KnowledgePoint
	if masteryStr != "" {
		level, err := model.ParseMastery(masteryStr)
		if err != nil {
			exitErr("list", err)
		}
		points, err = a.store.ByMastery(cmd.Context(), level)
		if err != nil {
			exitErr("list", err)
		}
	} else {
		points, err = a.store.All(cmd.Context())
		if err != nil {
			exitErr("list", err)
		}
	}

	if idsOnly {
		for _, p := range points {
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
		}
		return
	}

	printResult(cmd.OutOrStdout(), points, func() string { return renderList(points) })
}
