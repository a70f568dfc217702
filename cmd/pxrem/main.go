// Package main provides the pxrem CLI tool for generating pixel-to-rem utilities.
package main

import (
	"fmt"
	"os"

	core "github.com/yacobolo/pxrem/internal/pxrem"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, core.RenderStyle(core.StyleRed, "Error:", useColors()), err)
		os.Exit(1)
	}
}
