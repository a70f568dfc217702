package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .pxrem.yaml config file",
	Long:  `Create a .pxrem.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# pxrem configuration
# Docs: https://github.com/yacobolo/pxrem

# Shared settings
verbose: false

# Generation settings
generate:
  max-px: 2000
  full: false                  # use the full alias and breakpoint tables
  responsive-shorthands: false # breakpoint variants for mx/my/px/py and rounded-{dir}
  property-aliases:            # merged over the defaults
    gap: gap
  breakpoints:                 # merged over the defaults
    sm: 640
    max-md: 768
  output: dist/pxrem.css
  format: css                  # css | json
  content:
    - "src/**/*.{html,vue,tsx,jsx}"

# Revision cache
cache:
  path: .pxrem-cache.json
  manifest: package.json       # version fallback when not in a git repository
  disabled: false
  config-aware: false          # invalidate when the configuration changes
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
