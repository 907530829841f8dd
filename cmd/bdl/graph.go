package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/bramble"
	"github.com/aretw0/bramble/internal/adapters/file"
	"github.com/aretw0/bramble/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the dialogue graph visualization",
	Long:  `Parses the entry script and its dependency closure and outputs a Mermaid diagram (graph TD) of the node graph.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		entry, _ := cmd.Flags().GetString("entry")
		start, _ := cmd.Flags().GetString("start")

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

		fmt.Print(graph.GenerateMermaid(docs, start))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
