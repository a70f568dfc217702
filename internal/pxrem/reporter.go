package pxrem

import (
	"fmt"
	"io"
	"sort"
)

// Reporter handles formatting and outputting command results
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a new reporter
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintGenerateSummary outputs the outcome of a generate run
func (r *Reporter) PrintGenerateSummary(result GenerateResult) {
	status := RenderStyle(StyleYellow, "cache miss", r.useColors)
	if result.CacheHit {
		status = RenderStyle(StyleGreen, "cache hit", r.useColors)
	}

	target := result.OutputPath
	if target == "" {
		target = "stdout"
	}

	fmt.Fprintf(r.w, "Generated %s in %s\n",
		pluralizeCount(result.UtilitiesWritten, "utility", "utilities"),
		RenderStyle(StyleCyan, target, r.useColors))
	fmt.Fprintf(r.w, "  Revision: %s (%s, %s)\n",
		RenderStyle(StyleCyan, result.RevisionKey, r.useColors), result.KeySource, status)
	if result.CachePath != "" {
		fmt.Fprintf(r.w, "  Cache: %s\n", result.CachePath)
	}
	if result.FilesScanned > 0 {
		fmt.Fprintf(r.w, "  Content: %s scanned, %d of %d utilities used\n",
			pluralizeCount(result.FilesScanned, "file", "files"),
			result.UtilitiesWritten, result.UtilitiesGenerated)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(r.w, "  %s %s\n", RenderStyle(StyleYellow, "Warning:", r.useColors), w)
	}
}

// PrintCacheEntry lists the revisions held by a cache document
func (r *Reporter) PrintCacheEntry(path string, entry CacheEntry, currentKey string) {
	if len(entry) == 0 {
		fmt.Fprintf(r.w, "%s is empty\n", RenderStyle(StyleCyan, path, r.useColors))
		return
	}

	fmt.Fprintf(r.w, "%s (%s):\n",
		RenderStyle(StyleCyan, path, r.useColors),
		pluralizeCount(len(entry), "revision", "revisions"))

	keys := make([]string, 0, len(entry))
	for key := range entry {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		marker := ""
		if key == currentKey {
			marker = RenderStyle(StyleGreen, " (current)", r.useColors)
		}
		fmt.Fprintf(r.w, "* %s: %s%s\n", key,
			pluralizeCount(entry[key].Len(), "utility", "utilities"), marker)
	}
}

// PrintStylesheetStats outputs the result of inspecting a stylesheet
func (r *Reporter) PrintStylesheetStats(path string, stats StylesheetStats) {
	fmt.Fprintf(r.w, "%s:\n", RenderStyle(StyleCyan, path, r.useColors))
	fmt.Fprintf(r.w, "* rulesets: %d (%d inside media blocks)\n", stats.Rulesets, stats.MediaRules)
	fmt.Fprintf(r.w, "* declarations: %d\n", stats.Declarations)
	fmt.Fprintf(r.w, "* media blocks: %d\n", stats.MediaBlocks)

	queries := make([]string, 0, len(stats.MediaQueries))
	for q := range stats.MediaQueries {
		queries = append(queries, q)
	}
	sort.Strings(queries)
	for _, q := range queries {
		fmt.Fprintf(r.w, "  %s %s\n", RenderStyle(StyleGray, q, r.useColors),
			pluralizeCount(stats.MediaQueries[q], "block", "blocks"))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
