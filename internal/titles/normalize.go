// Package titles turns free-text language model output into candidate movie titles.
package titles

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/filmyfim/filmyfim/internal/constants"
)

var (
	enumerationPrefix = regexp.MustCompile(`^\d+[.)\-]\s*`)
	bulletPrefix      = regexp.MustCompile(`^[-•*]\s*`)
	parenthetical     = regexp.MustCompile(`\([^)]*\)`)
	punctuation       = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s]`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
)

// Lines starting with these words are model preamble, not titles.
var fillerPrefixes = []string{"similar", "recommended"}

// Normalize extracts up to MaxCandidates titles from raw model output, in the order
// the model listed them. Duplicates are kept; callers dedupe against accepted names.
func Normalize(raw string) []string {
	return NormalizeN(raw, constants.MaxCandidates)
}

// NormalizeN is Normalize with an explicit cap.
func NormalizeN(raw string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	candidates := make([]string, 0, limit)
	for _, line := range strings.Split(raw, "\n") {
		title := CleanLine(line)
		if title == "" || isFiller(title) {
			continue
		}
		candidates = append(candidates, title)
		if len(candidates) == limit {
			break
		}
	}
	return candidates
}

// CleanLine strips numbering, bullets and parenthetical notes from a single line.
func CleanLine(line string) string {
	s := strings.TrimSpace(line)
	s = enumerationPrefix.ReplaceAllString(s, "")
	s = bulletPrefix.ReplaceAllString(s, "")
	s = parenthetical.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func isFiller(title string) bool {
	lower := strings.ToLower(title)
	for _, prefix := range fillerPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// Key returns the identity used to compare movie names: case folded, whitespace collapsed.
func Key(name string) string {
	collapsed := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
	return cases.Fold().String(collapsed)
}

// SearchQuery strips punctuation from a title so it can be sent as a catalog query.
func SearchQuery(title string) string {
	return strings.TrimSpace(punctuation.ReplaceAllString(title, ""))
}

// NameSet is a set of movie names compared by Key.
type NameSet map[string]struct{}

// NewNameSet builds a set from names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s NameSet) Add(name string) {
	s[Key(name)] = struct{}{}
}

func (s NameSet) Contains(name string) bool {
	_, ok := s[Key(name)]
	return ok
}

// Clone returns an independent copy, safe to hand to another goroutine.
func (s NameSet) Clone() NameSet {
	c := make(NameSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}
