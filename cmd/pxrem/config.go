package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/pxrem"
)

const defaultConfigFile = ".pxrem.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		switch f.Value.Type() {
		case "stringToString":
			m, _ := flags.GetStringToString(f.Name)
			return f.Name, m
		case "stringToInt":
			m, _ := flags.GetStringToInt(f.Name)
			return f.Name, m
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (PXREM_* prefix)
	if err := k.Load(env.Provider("PXREM_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to its config key:
//
//	PXREM_GENERATE_MAX_PX -> generate.max-px
//	PXREM_CACHE_CONFIG_AWARE -> cache.config-aware
//	PXREM_VERBOSE -> verbose
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "PXREM_"))
	for _, section := range []string{"generate_", "cache_"} {
		if strings.HasPrefix(key, section) {
			rest := strings.TrimPrefix(key, section)
			return strings.TrimSuffix(section, "_") + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildOptions constructs the generator options from koanf state.
func buildOptions() pxrem.Options {
	return pxrem.Options{
		MaxPxValue:           getIntWithFallback("max-px", "generate.max-px", 0),
		Full:                 getBoolWithFallback("full", "generate.full", false),
		ResponsiveShorthands: getBoolWithFallback("responsive-shorthands", "generate.responsive-shorthands", false),
		PropertyAliases:      buildPropertyAliases(),
		Breakpoints:          buildBreakpoints(),
	}
}

// buildPropertyAliases reads --alias or generate.property-aliases.
// Entries are ordered by prefix.
func buildPropertyAliases() pxrem.PropertyAliases {
	m := getStringMapWithFallback("alias", "generate.property-aliases")
	aliases := make(pxrem.PropertyAliases, 0, len(m))
	for _, prefix := range sortedKeys(m) {
		aliases = append(aliases, pxrem.PropertyAlias{Prefix: prefix, Property: m[prefix]})
	}
	return aliases
}

// buildBreakpoints reads --breakpoint or generate.breakpoints, ordered by width.
func buildBreakpoints() pxrem.Breakpoints {
	m := k.IntMap("breakpoint")
	if len(m) == 0 {
		m = k.IntMap("generate.breakpoints")
	}

	breakpoints := make(pxrem.Breakpoints, 0, len(m))
	for _, name := range sortedKeys(m) {
		breakpoints = append(breakpoints, pxrem.Breakpoint{Name: name, Width: m[name]})
	}
	sort.SliceStable(breakpoints, func(i, j int) bool {
		return breakpoints[i].Width < breakpoints[j].Width
	})
	return breakpoints
}

// buildPluginConfig constructs the cache and revision key settings from koanf state.
func buildPluginConfig() pxrem.PluginConfig {
	return pxrem.PluginConfig{
		Dir:            getStringWithFallback("dir", "dir", "."),
		CachePath:      getStringWithFallback("cache-path", "cache.path", ""),
		ManifestPath:   getStringWithFallback("manifest", "cache.manifest", ""),
		CacheKey:       getStringWithFallback("cache-key", "cache.key", ""),
		DisableCache:   getBoolWithFallback("no-cache", "cache.disabled", false),
		ConfigAwareKey: getBoolWithFallback("config-aware-key", "cache.config-aware", false),
	}
}

// buildGenerateConfig constructs the library's GenerateConfig struct from koanf state.
func buildGenerateConfig() (pxrem.GenerateConfig, error) {
	output := getStringWithFallback("output", "generate.output", "")
	format, err := pxrem.DetermineOutputFormat(getStringWithFallback("format", "generate.format", ""), output)
	if err != nil {
		return pxrem.GenerateConfig{}, err
	}

	// Handle content: check flag key first, then config key
	var content []string
	if patterns := k.Strings("content"); len(patterns) > 0 {
		content = patterns
	} else if patterns := k.Strings("generate.content"); len(patterns) > 0 {
		content = patterns
	}

	return pxrem.GenerateConfig{
		Options:    buildOptions(),
		Plugin:     buildPluginConfig(),
		Content:    content,
		OutputPath: output,
		Format:     format,
	}, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getStringMapWithFallback checks the flag key first, then the config file key.
func getStringMapWithFallback(flagKey, configKey string) map[string]string {
	if m := k.StringMap(flagKey); len(m) > 0 {
		return m
	}
	return k.StringMap(configKey)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
