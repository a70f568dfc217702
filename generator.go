package pxrem

import (
	"fmt"
	"io"
	"os"
	"strings"

	core "github.com/yacobolo/pxrem/internal/pxrem"
)

// GenerateConfig configures a full generation run
type GenerateConfig struct {
	Options Options
	Plugin  PluginConfig

	// Content globs used to keep only referenced utilities; empty keeps all
	Content []string

	OutputPath string    // Output file; empty writes to Writer
	Writer     io.Writer // Used when OutputPath is empty, defaults to stdout
	Format     OutputFormat
}

// Generate is the main entry point
func Generate(config GenerateConfig) (*GenerateResult, error) {
	// 1. Generate through the cache
	plugin := New(config.Options, config.Plugin)
	generation, err := plugin.Generate(core.EscapeClassName)
	if err != nil {
		return nil, fmt.Errorf("generate failed: %w", err)
	}

	format := config.Format
	if format == "" {
		format = OutputCSS
	}

	result := &GenerateResult{
		RevisionKey:        generation.Key,
		KeySource:          generation.Source,
		CacheHit:           generation.CacheHit,
		UtilitiesGenerated: generation.Utilities.Len(),
		OutputPath:         config.OutputPath,
		Format:             format,
	}
	if !config.Plugin.DisableCache {
		result.CachePath = plugin.Cache().Path()
	}

	// 2. Keep only what the content references
	utilities := generation.Utilities
	if len(config.Content) > 0 {
		classNames, stats, err := ScanContent(config.Content)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		result.FilesScanned = stats.FilesScanned
		if stats.FilesScanned == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("no content files matched %s", strings.Join(config.Content, ", ")))
		}
		utilities = FilterUtilities(utilities, classNames, core.EscapeClassName)
	}
	result.UtilitiesWritten = utilities.Len()

	// 3. Write the artifact
	if config.OutputPath != "" {
		if err := writeOutputFile(config.OutputPath, utilities, format); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
		return result, nil
	}

	w := config.Writer
	if w == nil {
		w = os.Stdout
	}
	if err := WriteOutput(w, utilities, format); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	return result, nil
}
