package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/pxrem"
	core "github.com/yacobolo/pxrem/internal/pxrem"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the revision cache",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

var cacheKeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Print the current revision key and its source",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := buildPluginConfig()
		config.Logger = newLogger()
		plugin := pxrem.New(buildOptions(), config)

		key, source, err := plugin.Keys().Resolve()
		if err != nil {
			return fmt.Errorf("resolving revision key: %w", err)
		}
		if config.ConfigAwareKey {
			key += "-" + core.Fingerprint(plugin.Config())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, source)
		return nil
	},
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the revisions held in the cache",
	RunE: func(_ *cobra.Command, _ []string) error {
		config := buildPluginConfig()
		config.Logger = newLogger()
		plugin := pxrem.New(buildOptions(), config)

		// The current key is informational only
		current, _, _ := plugin.Keys().Resolve()

		entry, _ := plugin.Cache().Read()
		if !isQuiet() {
			newReporter().PrintCacheEntry(plugin.Cache().Path(), entry, current)
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cache file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := buildPluginConfig()
		config.Logger = newLogger()
		cache := pxrem.New(pxrem.Options{}, config).Cache()

		if err := cache.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		if !isQuiet() {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", cache.Path())
		}
		return nil
	},
}

func init() {
	cacheKeyCmd.Flags().Bool("config-aware-key", false, "Suffix the key with the configuration fingerprint")

	cacheCmd.AddCommand(cacheKeyCmd)
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
