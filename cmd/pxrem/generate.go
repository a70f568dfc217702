package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yacobolo/pxrem"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate pixel-to-rem utilities",
	Long: `Generate the utility set for the current revision and write it as a stylesheet
or as the JSON registration map. A cached set for the revision is reused as-is.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.Int("max-px", pxrem.ResolveConfig(pxrem.Options{}).MaxPxValue, "Largest pixel value to generate")
	f.Bool("full", false, "Use the full alias and breakpoint tables")
	f.Bool("responsive-shorthands", false, "Also emit breakpoint variants for m/p axis and rounded direction rules")
	f.StringToString("alias", nil, "Property aliases merged over the defaults (prefix=property)")
	f.StringToInt("breakpoint", nil, "Breakpoints merged over the defaults (name=width)")
	f.StringP("output", "o", "", "Output file (default stdout)")
	f.String("format", "", "Output format: css|json (default from output extension)")
	f.StringSlice("content", nil, "Glob patterns of content files; only referenced utilities are written")
	f.Bool("no-cache", false, "Skip the revision cache")
	f.Bool("config-aware-key", false, "Invalidate the cache when the configuration changes")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	config, err := buildGenerateConfig()
	if err != nil {
		return err
	}
	config.Plugin.Logger = newLogger()
	config.Writer = cmd.OutOrStdout()

	result, err := pxrem.Generate(config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if !isQuiet() && config.OutputPath != "" {
		if abs, err := filepath.Abs(result.OutputPath); err == nil {
			result.OutputPath = pxrem.GetRelativePath(abs)
		}
		newReporter().PrintGenerateSummary(*result)
	}

	return nil
}
