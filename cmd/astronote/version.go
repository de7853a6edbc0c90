package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/astronote"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the astronote version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("astronote %s\n", astronote.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
