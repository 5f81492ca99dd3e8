package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/ebbinghaus/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a knowledge point",
		Long: "Edit a knowledge point. Changing the mastery level reschedules the next review from today " +
			"unless --next-review is given.",
		Args: cobra.ExactArgs(1),
		Run:  runEdit,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("content", "", "New content")
	cmd.Flags().StringP("tags", "t", "", "Replace tags (comma-separated, empty clears)")
	cmd.Flags().StringP("mastery", "m", "", "New mastery level")
	cmd.Flags().String("next-review", "", "Next review date (YYYY-MM-DD)")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	var patch model.Patch
	flags := cmd.Flags()

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		patch.Title = &v
	}
	if flags.Changed("content") {
		v, _ := flags.GetString("content")
		patch.Content = &v
	}
	if flags.Changed("tags") {
		v, _ := flags.GetString("tags")
		tags := splitTags(v)
		patch.Tags = &tags
	}
	if flags.Changed("mastery") {
		v, _ := flags.GetString("mastery")
		m, err := model.ParseMastery(v)
		if err != nil {
			exitErr("edit", err)
		}
		patch.MasteryLevel = &m
	}
	if flags.Changed("next-review") {
		v, _ := flags.GetString("next-review")
		patch.NextReview = &v
	}
	if patch == (model.Patch{}) {
		exitErr("edit", fmt.Errorf("%w: nothing to change", model.ErrInvalidArgument))
	}

	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	kp, err := a.store.Update(cmd.Context(), args[0], patch)
	if err != nil {
		exitErr("edit", err)
	}

	printResult(cmd.OutOrStdout(), kp, func() string { return renderCard(*kp) })
}
