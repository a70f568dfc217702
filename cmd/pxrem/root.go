package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	core "github.com/yacobolo/pxrem/internal/pxrem"
)

var rootCmd = &cobra.Command{
	Use:   "pxrem",
	Short: "Pixel-to-rem utility class generator",
	Long: `Generate arbitrary-value pixel utilities (w-[12px], sm:p-[4px], rounded-tl-[2px])
converted to rem, cached per source revision.`,
	// Default behavior: run generate when no subcommand is given.
	// We must call loadConfig here because PreRunE of generateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(generateCmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.Bool("log-json", false, "Emit log records as JSON")
	pf.String("config", defaultConfigFile, "Config file path")
	pf.String("dir", ".", "Project directory used to find the repository and manifest")
	pf.String("cache-path", "", "Cache file (default <dir>/"+core.DefaultCacheFile+")")
	pf.String("manifest", "", "Version manifest used when no revision is available (default <dir>/"+core.DefaultManifestFile+")")
	pf.String("cache-key", "", "Fixed revision key, skips revision detection")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func useColors() bool {
	return core.ShouldUseColors(getBoolWithFallback("color", "color", false))
}

// newLogger builds the CLI logger from koanf state. Logs go to stderr so
// stdout stays clean for generated output.
func newLogger() *slog.Logger {
	return core.NewLogger(os.Stderr, core.LoggerOptions{
		Verbose:   getBoolWithFallback("verbose", "verbose", false),
		JSON:      getBoolWithFallback("log-json", "log-json", false),
		UseColors: useColors(),
	})
}

// newReporter writes human-readable results to stderr.
func newReporter() *core.Reporter {
	return core.NewReporter(os.Stderr, useColors())
}

func isQuiet() bool {
	return getBoolWithFallback("quiet", "quiet", false)
}
