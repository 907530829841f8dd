package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bdl",
	Short: "Bramble is a branching-dialogue engine",
	Long:  `Bramble parses BDL scripts and drives interactive branching dialogues from them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the BDL scripts")
	rootCmd.PersistentFlags().String("entry", "main.bdl", "Entry script file")
	rootCmd.PersistentFlags().String("start", "start", "Start node in the entry script")
}
