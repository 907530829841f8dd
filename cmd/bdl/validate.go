package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/bramble/internal/adapters/file"
	"github.com/aretw0/bramble/internal/library"
	"github.com/aretw0/bramble/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dialogue graph for consistency",
	Long: `Crawls every literal edge reachable from the entry script's start node and
reports broken references, undeclared transfer targets and unreachable nodes.
Destinations computed from variables cannot be checked statically and are
listed as unverifiable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		entry, _ := cmd.Flags().GetString("entry")
		start, _ := cmd.Flags().GetString("start")
		return runValidate(dir, entry, start)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(dir, entry, start string) error {
	source, err := file.NewSource(dir)
	if err != nil {
		return err
	}

	lib := library.New(source, entry)
	report, err := validator.Validate(lib, start)
	if err != nil {
		return fmt.Errorf("loading %s: %w", entry, err)
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	if !report.OK() {
		for _, e := range report.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		return fmt.Errorf("found %d broken references", len(report.Errors))
	}

	fmt.Println("Graph is valid.")
	return nil
}
