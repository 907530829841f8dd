package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/bramble"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bdl",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bdl version %s\n", strings.TrimSpace(bramble.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
