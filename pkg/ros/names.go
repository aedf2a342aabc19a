package ros

import (
	"regexp"
	"strings"
)

var packageNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidPackageName follows REP 144: lowercase alphanumerics and single
// underscores, starting with a letter.
func ValidPackageName(name string) bool {
	if !packageNamePattern.MatchString(name) {
		return false
	}
	return !strings.Contains(name, "__") && !strings.HasSuffix(name, "_")
}
