package pxrem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sugawarayuuta/sonnet"
	core "github.com/yacobolo/pxrem/internal/pxrem"
)

// DetermineOutputFormat selects the output format from an explicit format
// flag, falling back to the output file extension and then to CSS.
func DetermineOutputFormat(formatFlag, outputPath string) (OutputFormat, error) {
	switch formatFlag {
	case "css":
		return OutputCSS, nil
	case "json":
		return OutputJSON, nil
	case "":
	default:
		return "", fmt.Errorf("unknown output format %q (want css or json)", formatFlag)
	}

	if filepath.Ext(outputPath) == ".json" {
		return OutputJSON, nil
	}
	return OutputCSS, nil
}

// WriteOutput writes utilities in the specified format
func WriteOutput(w io.Writer, utilities *UtilityMap, format OutputFormat) error {
	switch format {
	case OutputJSON:
		// The host registration format: selector → declarations or media block
		enc := sonnet.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(utilities)

	case OutputCSS, "":
		return core.RenderCSS(w, utilities)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeOutputFile writes utilities to path, creating parent directories
func writeOutputFile(path string, utilities *UtilityMap, format OutputFormat) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	//nolint:gosec // Output path comes from trusted configuration
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return WriteOutput(f, utilities, format)
}
