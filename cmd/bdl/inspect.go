package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/bramble"
	"github.com/aretw0/bramble/internal/adapters/file"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the parsed documents as YAML",
	Long:  `Parses the entry script and its dependency closure and prints the resulting document structures, useful when debugging script grammar issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		entry, _ := cmd.Flags().GetString("entry")

		source, err := file.NewSource(dir)
		if err != nil {
			return err
		}
		engine, err := bramble.New(source, bramble.WithEntryFile(entry))
		if err != nil {
			return err
		}
		docs, err := engine.Inspect()
		if err != nil {
			return err
		}

		raw, err := yaml.Marshal(docs)
		if err != nil {
			return fmt.Errorf("encoding documents: %w", err)
		}
		fmt.Print(string(raw))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
