package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/aretw0/astronote/internal/editor"
	"github.com/aretw0/astronote/internal/platform"
	"github.com/aretw0/astronote/pkg/core"
	"github.com/aretw0/astronote/pkg/scheduler"
)

var (
	reviewNum    int
	reviewIgnore bool
)

// qualityLabels describe the SM-2 response scale, shown in the prompt.
var qualityLabels = [scheduler.MaxQuality + 1]string{
	"complete blackout",
	"incorrect response; the correct one remembered",
	"incorrect response; the correct one seemed easy to recall",
	"correct response recalled with serious difficulty",
	"correct response after a hesitation",
	"perfect response",
	"perfect response over multiple sessions",
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review due notes",
	Long: `Review walks through the notes whose due date has passed, oldest first.
Each note is opened in the configured editor; afterwards you rate the
review quality (0-6) and the next due date is computed from it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, store, err := openStore(ctx)
		if err != nil {
			fatal("Failed to open store", err)
		}
		defer store.Close()

		svc := newService(store)
		notes, err := svc.Due(ctx, reviewNum, reviewIgnore)
		if err != nil {
			fatal("Failed to list due notes", err)
		}
		if len(notes) == 0 {
			fmt.Println("There is no note to review (for now)!")
			return
		}

		for _, note := range notes {
			path := platform.Resolve(cfg.Root, note.Identity)
			fmt.Println(infoStyle.Render("Reviewing"), path)

			if err := editor.Open(cfg.EditorCommand(), path); err != nil {
				fatal("Editor failed", err)
			}

			quality, err := promptQuality(ctx, svc, note.Identity)
			if err != nil {
				fatal("Failed to read quality", err)
			}

			reviewed, err := svc.Review(ctx, note.Identity, quality)
			if err != nil {
				fatal(fmt.Sprintf("Failed to review %s", note.Identity), err)
			}

			fmt.Println(okStyle.Render("Next due:"), reviewed.NextDue.Format("2006-01-02 15:04"))
			fmt.Println()
		}
	},
}

// promptQuality asks for a response quality, showing the due date each
// answer would produce.
func promptQuality(ctx context.Context, svc *core.Service, identity string) (int, error) {
	previews, err := svc.Previews(ctx, identity)
	if err != nil {
		return 0, err
	}

	options := make([]huh.Option[int], 0, len(qualityLabels))
	for q, label := range qualityLabels {
		title := fmt.Sprintf("%d: %s %s", q, label,
			dimStyle.Render("(next: "+previews[q].Format("2006-01-02")+")"))
		options = append(options, huh.NewOption(title, q))
	}

	quality := scheduler.MinQuality
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("How did the review go?").
			Options(options...).
			Value(&quality),
	))
	if err := form.Run(); err != nil {
		return 0, err
	}
	return quality, nil
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().IntVarP(&reviewNum, "number", "n", 0, "Maximum notes to review (0 = all due)")
	reviewCmd.Flags().BoolVar(&reviewIgnore, "ignore-schedule", false, "Review notes even if they are not due yet")
}
