package choice

import (
	"os"
	"regexp"
)

// Predicate reports whether a trimmed answer is acceptable.
type Predicate func(string) bool

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}$`)

// NonEmpty accepts any non-empty answer.
func NonEmpty(s string) bool {
	return len(s) > 0
}

// IsDir accepts paths of existing directories.
func IsDir(s string) bool {
	if s == "" {
		return false
	}
	info, err := os.Stat(s)
	return err == nil && info.IsDir()
}

// IsEmail accepts addresses of the form local@domain.tld.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// All combines predicates; every one has to accept.
func All(preds ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}
