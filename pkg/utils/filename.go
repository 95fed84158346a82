package utils

import (
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// DefaultFilename is substituted when sanitizing leaves nothing usable.
const DefaultFilename = "note"

// SanitizeFilename maps an arbitrary string to a key that is safe to use as
// a file or directory name: surrounding whitespace is trimmed and every
// character outside [A-Za-z0-9_-] becomes an underscore. The mapping is
// deterministic. An empty result falls back to DefaultFilename.
func SanitizeFilename(raw string) string {
	s := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(raw), "_")
	if s == "" {
		return DefaultFilename
	}
	return s
}
