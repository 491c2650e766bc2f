package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of linkage-engine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("linkage-engine %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
