package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var postponeDays int

var postponeCmd = &cobra.Command{
	Use:   "postpone [path]...",
	Short: "Push the next review of notes into the future",
	Long: `Postpone moves the next due date of each given note to the current time
plus --days, without touching the rest of its schedule.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, store, err := openStore(ctx)
		if err != nil {
			fatal("Failed to open store", err)
		}
		defer store.Close()

		svc := newService(store)
		for _, arg := range args {
			identity, err := resolveIdentity(cfg.Root, arg)
			if err != nil {
				fatal(fmt.Sprintf("Cannot resolve %s", arg), err)
			}
			note, err := svc.Postpone(ctx, identity, postponeDays)
			if err != nil {
				fatal(fmt.Sprintf("Failed to postpone %s", identity), err)
			}
			fmt.Println(okStyle.Render("Postponed"), note.Identity,
				dimStyle.Render("(due "+note.NextDue.Format("2006-01-02 15:04")+")"))
		}
	},
}

func init() {
	rootCmd.AddCommand(postponeCmd)
	postponeCmd.Flags().IntVarP(&postponeDays, "days", "d", 1, "Days from now until the next review")
}
