package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [path]...",
	Aliases: []string{"rm"},
	Short:   "Stop tracking notes",
	Long: `Remove deletes the review schedule of each given note. The file on disk
is left in place; only the tracking metadata goes away.`,
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
			if err := svc.Remove(ctx, identity); err != nil {
				fatal(fmt.Sprintf("Failed to remove %s", identity), err)
			}
			fmt.Println(okStyle.Render("Removed"), identity)
		}
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
