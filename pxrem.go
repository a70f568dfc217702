// Package pxrem generates pixel-to-rem utility classes for utility-first CSS
// frameworks and caches the generated set per source revision.
//
// # Plugin
//
// Register the utilities with a host that supplies a registration callback and
// its own class name escaping:
//
//	plugin := pxrem.New(pxrem.Options{MaxPxValue: 400}, pxrem.PluginConfig{})
//	err := plugin.Register(host)
//
// # Generation
//
// Write the utilities to a stylesheet, optionally keeping only the classes
// found in content files:
//
//	result, err := pxrem.Generate(pxrem.GenerateConfig{
//		Options:    pxrem.Options{Full: true},
//		Content:    []string{"src/**/*.{html,vue,tsx}"},
//		OutputPath: "dist/rem.css",
//		Format:     pxrem.OutputCSS,
//	})
//
// # CLI Tool
//
// Install with:
//
//	go install github.com/yacobolo/pxrem/cmd/pxrem@latest
package pxrem

import core "github.com/yacobolo/pxrem/internal/pxrem"

type (
	// Options are the caller-supplied partial options
	Options = core.PluginOptions
	// Config is the resolved generator configuration
	Config = core.Config

	UtilityMap      = core.UtilityMap
	Rule            = core.Rule
	Declaration     = core.Declaration
	Declarations    = core.Declarations
	PropertyAlias   = core.PropertyAlias
	PropertyAliases = core.PropertyAliases
	Breakpoint      = core.Breakpoint
	Breakpoints     = core.Breakpoints
	EscapeFunc      = core.EscapeFunc

	// GenerateResult contains pipeline stats
	GenerateResult = core.GenerateResult
	// OutputFormat is the generated artifact format
	OutputFormat = core.OutputFormat
)

const (
	OutputCSS  = core.OutputCSS
	OutputJSON = core.OutputJSON
)

// ResolveConfig merges options onto the built-in defaults
func ResolveConfig(options Options) Config {
	return core.ResolveConfig(options)
}

// EscapeClassName is the escape function used when no host provides one
func EscapeClassName(className string) string {
	return core.EscapeClassName(className)
}
