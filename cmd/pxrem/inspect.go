package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	core "github.com/yacobolo/pxrem/internal/pxrem"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Count the rules of a generated stylesheet",
	Long:  `Parse a stylesheet and report rulesets, declarations and media blocks.`,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		//nolint:gosec // Path is an explicit CLI argument
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading stylesheet: %w", err)
		}

		stats, err := core.InspectStylesheet(string(data))
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", args[0], err)
		}

		core.NewReporter(os.Stdout, useColors()).PrintStylesheetStats(args[0], stats)
		return nil
	},
}
