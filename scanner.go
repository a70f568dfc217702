package pxrem

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	core "github.com/yacobolo/pxrem/internal/pxrem"
)

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

const maxLineSize = 1024 * 1024

// arbitraryClassPattern matches arbitrary pixel value classes with any variant chain:
// w-[12px], sm:w-[12px], max-md:rounded-tl-[4px]
var arbitraryClassPattern = regexp.MustCompile(`(?:[\w-]+:)*[a-z][\w-]*-\[\d+px\]`)

// isGeneratedArtifact reports files written by pxrem itself
func isGeneratedArtifact(path string) bool {
	return filepath.Base(path) == core.DefaultCacheFile
}

// loadGitIgnore loads .gitignore from the working directory.
// A missing file means nothing is ignored.
func loadGitIgnore() *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(".gitignore")
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile determines if a file should be excluded from scanning
//
// Two-layer filtering:
// 1. Pattern check (fast): Skip pxrem's own artifacts
// 2. Gitignore check: Skip gitignored files (only for relative paths)
func shouldSkipFile(path string, gi *ignore.GitIgnore) bool {
	if isGeneratedArtifact(path) {
		return true
	}

	// Absolute paths (like /tmp/...) are outside the project
	if gi != nil && !filepath.IsAbs(path) && gi.MatchesPath(path) {
		return true
	}

	return false
}

// ScanContent expands the glob patterns and collects every arbitrary pixel
// value class name found in the matched files, sorted and deduplicated.
func ScanContent(patterns []string) ([]string, ScanStats, error) {
	files, stats, err := expandGlobPatternsWithStats(patterns, loadGitIgnore())
	if err != nil {
		return nil, stats, err
	}

	seen := make(map[string]struct{})
	for _, file := range files {
		names, err := scanFile(file)
		if err != nil {
			// Unreadable files are skipped
			stats.FilesScanned--
			stats.FilesSkipped++
			continue
		}
		for _, name := range names {
			seen[name] = struct{}{}
		}
	}

	classNames := make([]string, 0, len(seen))
	for name := range seen {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)

	return classNames, stats, nil
}

// expandGlobPatternsWithStats expands globs and tracks statistics
func expandGlobPatternsWithStats(patterns []string, gi *ignore.GitIgnore) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match, gi) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// scanFile extracts candidate class names from a single file
func scanFile(filePath string) ([]string, error) {
	//nolint:gosec // Paths come from user-supplied globs
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		names = append(names, extractClassNames(scanner.Text())...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

// extractClassNames returns the class names on a line. A variant chain such as
// hover:sm:w-[2px] also yields the bare utility w-[2px] and the breakpoint form
// sm:w-[2px], since the host derives other variants from registered utilities.
func extractClassNames(line string) []string {
	var names []string
	for _, match := range arbitraryClassPattern.FindAllString(line, -1) {
		names = append(names, match)

		variants := strings.Split(match, ":")
		if len(variants) == 1 {
			continue
		}
		utility := variants[len(variants)-1]
		names = append(names, utility)
		for _, variant := range variants[:len(variants)-1] {
			names = append(names, variant+":"+utility)
		}
	}
	return names
}

// FilterUtilities keeps only the selectors whose class name appears in classNames.
func FilterUtilities(utilities *UtilityMap, classNames []string, escape EscapeFunc) *UtilityMap {
	if escape == nil {
		escape = core.EscapeClassName
	}

	wanted := make(map[string]struct{}, len(classNames))
	for _, name := range classNames {
		wanted["."+escape(name)] = struct{}{}
	}

	return utilities.Filter(func(selector string) bool {
		_, ok := wanted[selector]
		return ok
	})
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
