package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/ebbinghaus/internal/model"
	"github.com/rcliao/ebbinghaus/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add <title> [content]",
		Short: "Add a knowledge point",
		Long:  "Add a knowledge point. Content can be a positional arg or piped via stdin; Markdown is kept as is.",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runAdd,
	}

	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	cmd.Flags().StringP("mastery", "m", string(model.Struggling), "Mastery: mastered, learning, struggling")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	tagsStr, _ := cmd.Flags().GetString("tags")
	masteryStr, _ := cmd.Flags().GetString("mastery")

	mastery, err := model.ParseMastery(masteryStr)
	if err != nil {
		exitErr("add", err)
	}

	// Content: positional arg first, then stdin
	var content string
	if len(args) > 1 {
		content = args[1]
	} else {
		if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}
	if strings.TrimSpace(content) == "" {
		exitErr("add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	kp, err := a.store.Add(cmd.Context(), store.AddParams{
		Title:        args[0],
		Content:      content,
		Tags:         splitTags(tagsStr),
		MasteryLevel: mastery,
	})
	if err != nil {
		exitErr("add", err)
	}

	printResult(cmd.OutOrStdout(), kp, func() string { return renderCard(*kp) })
}
