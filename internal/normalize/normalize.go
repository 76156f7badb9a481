// Package normalize implements the single key-normalization rule shared by
// the build pipeline and the query engine: trim, then Unicode default
// case-fold.
//
// Using the same function on both sides is the whole ballgame — if build
// and query ever disagreed on how "İ" or "ß" fold, every non-ASCII key would
// silently miss. golang.org/x/text/cases.Fold implements Unicode default
// case-folding (simple, non-locale-tailored), not the locale-sensitive
// strings.ToLower, so this matches across hosts regardless of locale.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold(cases.Compact)

// Key trims s and applies Unicode default case-folding. It returns ok==false
// for an empty-after-trim input, which callers must treat as "no key", not
// as the empty string.
func Key(s string) (string, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", false
	}
	return folder.String(t), true
}
