package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/pxrem"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// execute runs the CLI with args from a clean flag and config state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetKoanf()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags clears flag state left behind by earlier executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Changed = false
		switch f.Value.Type() {
		case "bool", "string", "int":
			_ = f.Value.Set(f.DefValue)
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pxrem.yaml")
	configContent := `
verbose: true

generate:
  max-px: 64
  full: true
  output: dist/rem.css
  content:
    - "src/**/*.vue"

cache:
  path: tmp/cache.json
  config-aware: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, 64, k.Int("generate.max-px"))
	assert.True(t, k.Bool("generate.full"))
	assert.Equal(t, "dist/rem.css", k.String("generate.output"))
	assert.Equal(t, []string{"src/**/*.vue"}, k.Strings("generate.content"))
	assert.Equal(t, "tmp/cache.json", k.String("cache.path"))
	assert.True(t, k.Bool("cache.config-aware"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config — should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.pxrem.yaml"))

	config, err := buildGenerateConfig()
	require.NoError(t, err)
	assert.Equal(t, pxrem.Options{
		PropertyAliases: pxrem.PropertyAliases{},
		Breakpoints:     pxrem.Breakpoints{},
	}, config.Options)
	assert.Equal(t, pxrem.PluginConfig{Dir: "."}, config.Plugin)
	assert.Empty(t, config.OutputPath)
	assert.Empty(t, config.Content)
	assert.Equal(t, pxrem.OutputCSS, config.Format)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"PXREM_VERBOSE":                        "verbose",
		"PXREM_LOG_JSON":                       "log-json",
		"PXREM_GENERATE_MAX_PX":                "generate.max-px",
		"PXREM_GENERATE_RESPONSIVE_SHORTHANDS": "generate.responsive-shorthands",
		"PXREM_CACHE_CONFIG_AWARE":             "cache.config-aware",
		"PXREM_CACHE_PATH":                     "cache.path",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pxrem.yaml")
	configContent := `
generate:
  max-px: 10
cache:
  disabled: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	// Set env vars that should override config file
	t.Setenv("PXREM_GENERATE_MAX_PX", "20")
	t.Setenv("PXREM_CACHE_DISABLED", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, 20, buildOptions().MaxPxValue)
	assert.True(t, buildPluginConfig().DisableCache)
}

func TestBuildOptions_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pxrem.yaml")
	configContent := `
generate:
  max-px: 8
  responsive-shorthands: true
  property-aliases:
    w: inlineSize
    gap: gap
  breakpoints:
    xl: 1280
    sm: 600
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	options := buildOptions()
	assert.Equal(t, 8, options.MaxPxValue)
	assert.True(t, options.ResponsiveShorthands)
	assert.Equal(t, pxrem.PropertyAliases{{"gap", "gap"}, {"w", "inlineSize"}}, options.PropertyAliases)
	assert.Equal(t, pxrem.Breakpoints{{"sm", 600}, {"xl", 1280}}, options.Breakpoints)
}

func TestBuildGenerateConfig_FormatFromExtension(t *testing.T) {
	resetKoanf()
	t.Setenv("PXREM_GENERATE_OUTPUT", "dist/utilities.json")
	require.NoError(t, loadConfigFromPath("/nonexistent/.pxrem.yaml"))

	config, err := buildGenerateConfig()
	require.NoError(t, err)
	assert.Equal(t, pxrem.OutputJSON, config.Format)
}

func TestBuildGenerateConfig_UnknownFormat(t *testing.T) {
	resetKoanf()
	t.Setenv("PXREM_GENERATE_FORMAT", "scss")
	require.NoError(t, loadConfigFromPath("/nonexistent/.pxrem.yaml"))

	_, err := buildGenerateConfig()
	require.Error(t, err)
}

func TestGenerateCommand_WritesOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "generate",
		"--cache-key", "abc1234",
		"--max-px", "2",
		"--alias", "w=width",
		"--output", "dist/rem.css",
		"--quiet",
	)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("dist", "rem.css"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".w-\\[2px\\] {\n  width: 0.125rem;\n}")
	assert.Contains(t, string(data), "@media not all and (min-width: 640px)")
	assert.FileExists(t, ".pxrem-cache.json")
}

func TestGenerateCommand_FlagsOverrideConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".pxrem.yaml", []byte(`
generate:
  max-px: 1
  format: css
cache:
  key: from-file
`), 0o644))

	out, err := execute(t, "gen", "--max-px", "3", "--format", "json", "--no-cache", "--quiet")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"0.1875rem"`)
	assert.NoFileExists(t, ".pxrem-cache.json")
}

func TestRootCommand_DefaultsToGenerate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PXREM_GENERATE_MAX_PX", "1")

	out, err := execute(t, "--cache-key", "abc1234", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, ".w-\\[1px\\] {")
}

func TestCacheKeyCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("package.json", []byte(`{"version": "1.4.2"}`), 0o644))

	out, err := execute(t, "cache", "key")
	require.NoError(t, err)
	assert.Equal(t, "1.4.2\tmanifest\n", out)

	out, err = execute(t, "cache", "key", "--cache-key", "pinned")
	require.NoError(t, err)
	assert.Equal(t, "pinned\tstatic\n", out)
}

func TestCacheKeyCommand_NoSource(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "cache", "key")
	require.Error(t, err)
}

func TestCacheClearCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "generate", "--cache-key", "abc1234", "--max-px", "1", "--output", "rem.css", "--quiet")
	require.NoError(t, err)
	require.FileExists(t, ".pxrem-cache.json")

	out, err := execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")
	assert.NoFileExists(t, ".pxrem-cache.json")
}

func TestInspectCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("rem.css", []byte(`.w-\[1px\] { width: 0.0625rem; }
@media not all and (min-width: 640px) {
  .sm\:w-\[1px\] { width: 0.0625rem; }
}
`), 0o644))

	_, err := execute(t, "inspect", "rem.css")
	require.NoError(t, err)

	_, err = execute(t, "inspect", "missing.css")
	require.Error(t, err)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "init")
	require.NoError(t, err)

	// Verify file was created
	data, err := os.ReadFile(".pxrem.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "generate:")
	assert.Contains(t, string(data), "cache:")

	// The generated file loads cleanly
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".pxrem.yaml"))
	assert.Equal(t, 2000, buildOptions().MaxPxValue)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".pxrem.yaml", []byte("existing"), 0o644))

	_, err := execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".pxrem.yaml", []byte("existing"), 0o644))

	_, err := execute(t, "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(".pxrem.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "max-px: 2000")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pxrem "))
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}
