package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [path]...",
	Short: "Restart the review schedule of notes",
	Long: `Reset discards the accumulated schedule of each given note and starts it
over as if it had just been added. The note itself is untouched.`,
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
			note, err := svc.Reset(ctx, identity)
			if err != nil {
				fatal(fmt.Sprintf("Failed to reset %s", identity), err)
			}
			fmt.Println(okStyle.Render("Reset"), note.Identity,
				dimStyle.Render("(due "+note.NextDue.Format("2006-01-02 15:04")+")"))
		}
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
