package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/ebbinghaus/internal/model"
	"github.com/rcliao/ebbinghaus/internal/session"
)

func init() {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review the knowledge points due today",
		Long: "Step through today's due points. For each one answer y (remembered), n (forgot), " +
			"s (skip) or q (quit). Failed points that are still due come back before the pass ends.",
		Run: runReview,
	}

	cmd.Flags().Bool("show-content", false, "Show content immediately instead of waiting for Enter")
	_ = v.BindPFlag("review.show_content", cmd.Flags().Lookup("show-content"))

	RootCmd.AddCommand(cmd)
}

func runReview(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.Close()

	sess := session.New(a.store, a.log)
	if err := runReviewLoop(cmd.Context(), sess, cmd.InOrStdin(), cmd.OutOrStdout(), a.cfg.Review.ShowContent); err != nil {
		exitErr("review", err)
	}
}

var answers = map[string]string{
	"y": "success", "yes": "success",
	"n": "failure", "no": "failure",
	"s": "skip", "skip": "skip",
	"q": "quit", "quit": "quit",
}

// runReviewLoop reads one answer per line from in until the pass completes,
// the user quits, or input ends.
func runReviewLoop(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer, showContent bool) error {
	if err := sess.Start(ctx); err != nil {
		if errors.Is(err, model.ErrDueQueueEmpty) {
			fmt.Fprintln(out, "Nothing to review today.")
			return nil
		}
		return err
	}

	sc := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return strings.ToLower(strings.TrimSpace(sc.Text())), true
	}

	reviewed := 0
	for sess.State().Mode == session.Review {
		p, err := sess.Current(ctx)
		if err != nil {
			return err
		}
		pos, total := sess.Progress()
		fmt.Fprintf(out, "\n[%d/%d] %s  (%s)\n", pos, total, titleStyle.Render(p.Title), renderMastery(p.MasteryLevel))

		if !showContent {
			fmt.Fprint(out, "Press Enter to show the answer, q to quit: ")
			line, ok := readLine()
			if !ok || line == "q" {
				sess.Exit()
				break
			}
		}
		fmt.Fprintln(out, cardStyle.Render(p.Content))

		action, ok := "", true
		for action == "" && ok {
			fmt.Fprint(out, "Remembered? [y]es / [n]o / [s]kip / [q]uit: ")
			var line string
			line, ok = readLine()
			action = answers[line]
		}
		if !ok {
			sess.Exit()
			break
		}
		switch action {
		case "success":
			err = sess.Grade(ctx, model.Success)
			reviewed++
		case "failure":
			err = sess.Grade(ctx, model.Failure)
			reviewed++
		case "skip":
			err = sess.Skip(ctx)
		case "quit":
			sess.Exit()
		}
		if err != nil {
			return err
		}
	}

	if sess.State().Mode == session.Complete {
		fmt.Fprintf(out, "\nAll done for today. Reviewed %d.\n", reviewed)
	} else {
		fmt.Fprintf(out, "\nStopped. Reviewed %d.\n", reviewed)
	}
	return nil
}
