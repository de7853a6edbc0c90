package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	listNum  int
	listAll  bool
	listJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes that are due for review",
	Long: `List prints the notes whose due date has passed, oldest first.
With --all every tracked note is printed regardless of schedule.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, store, err := openStore(ctx)
		if err != nil {
			fatal("Failed to open store", err)
		}
		defer store.Close()

		svc := newService(store)
		notes, err := svc.Due(ctx, listNum, listAll)
		if err != nil {
			fatal("Failed to list notes", err)
		}

		if listJSON {
			serialized := make([]map[string]any, 0, len(notes))
			for _, note := range notes {
				serialized = append(serialized, map[string]any{
					"identity": note.Identity,
					"next_due": note.NextDue,
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(serialized); err != nil {
				fatal("Failed to encode notes", err)
			}
			return
		}

		if len(notes) == 0 {
			fmt.Println("There is no note to review (for now)!")
			return
		}
		for _, note := range notes {
			fmt.Println(dimStyle.Render(note.NextDue.Format("2006-01-02 15:04")), note.Identity)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listNum, "number", "n", 0, "Maximum notes to list (0 = no limit)")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "List every tracked note, not only the due ones")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print notes as JSON")
}
