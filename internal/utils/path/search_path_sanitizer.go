package pathutils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SearchPathSanitizerConfiguration controls search path sanitization behavior.
type SearchPathSanitizerConfiguration struct {
	// DropMissingDirectories removes paths that do not exist as directories.
	DropMissingDirectories bool
}

// SearchPathSanitizer normalizes directory list inputs consistently across commands.
type SearchPathSanitizer struct {
	homeExpander  *HomeExpander
	configuration SearchPathSanitizerConfiguration
}

// NewSearchPathSanitizer constructs a SearchPathSanitizer with default behavior.
func NewSearchPathSanitizer() *SearchPathSanitizer {
	return NewSearchPathSanitizerWithConfiguration(nil, SearchPathSanitizerConfiguration{})
}

// NewSearchPathSanitizerWithConfiguration constructs a SearchPathSanitizer using the provided expander and configuration.
func NewSearchPathSanitizerWithConfiguration(homeExpander *HomeExpander, configuration SearchPathSanitizerConfiguration) *SearchPathSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &SearchPathSanitizer{
		homeExpander:  resolvedExpander,
		configuration: configuration,
	}
}

// Sanitize trims whitespace, expands the user's home directory, and removes duplicate entries.
func (sanitizer *SearchPathSanitizer) Sanitize(candidatePaths []string) []string {
	expander := NewHomeExpander()
	configuration := SearchPathSanitizerConfiguration{}
	if sanitizer != nil {
		expander = sanitizer.homeExpander
		configuration = sanitizer.configuration
	}

	sanitizedPaths := make([]string, 0, len(candidatePaths))
	seenPaths := make(map[string]struct{}, len(candidatePaths))
	for candidateIndex := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePaths[candidateIndex])
		if len(trimmedCandidate) == 0 {
			continue
		}

		expandedPath := expander.Expand(trimmedCandidate)
		if len(expandedPath) == 0 {
			continue
		}

		canonicalPath := comparisonPath(canonicalizePath(expandedPath))
		if _, alreadySeen := seenPaths[canonicalPath]; alreadySeen {
			continue
		}
		seenPaths[canonicalPath] = struct{}{}

		if configuration.DropMissingDirectories && !directoryExists(expandedPath) {
			continue
		}

		sanitizedPaths = append(sanitizedPaths, expandedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}

	return sanitizedPaths
}

func directoryExists(path string) bool {
	pathInformation, statError := os.Stat(path)
	if statError != nil {
		return false
	}
	return pathInformation.IsDir()
}

func canonicalizePath(path string) string {
	cleanedPath := filepath.Clean(path)
	absolutePath, absoluteError := filepath.Abs(cleanedPath)
	if absoluteError == nil {
		return filepath.Clean(absolutePath)
	}
	return cleanedPath
}

func comparisonPath(path string) string {
	comparison := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		comparison = strings.ToLower(comparison)
	}
	return comparison
}
