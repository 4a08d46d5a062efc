// Package media resolves free-text exercise names, including AI-generated
// ones, to demonstration video and thumbnail URLs from a static table.
package media

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// TokenOverlapThreshold is the minimum fraction of a table key's tokens that
// must overlap the input for the token fallback to fire. Heuristic product
// constant; do not change without product input.
const TokenOverlapThreshold = 0.70

// Entry is one row of the compiled-in exercise media table.
type Entry struct {
	CanonicalName string `json:"canonical_name"`
	VideoURL      string `json:"video_url,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`

	key string // normalized lookup key
}

// Resolve matches a raw exercise name against the media table and returns
// the best entry, or nil when nothing matches. Matching is best effort:
// exact key match wins, then the first table entry (in declaration order)
// whose key and the input contain one another as substrings, then the first
// entry whose key tokens sufficiently overlap the input tokens. False
// positives are acceptable; callers fall back to a placeholder on nil.
func Resolve(rawName string) *Entry {
	name := Normalize(rawName)
	if name == "" {
		return nil
	}

	if e, ok := tableIndex[name]; ok {
		return e
	}

	// Declaration order matters here: the first key to fire wins, so table
	// ordering is part of the observable behavior.
	for i := range table {
		e := &table[i]
		if strings.Contains(name, e.key) || strings.Contains(e.key, name) {
			return e
		}
	}

	inputTokens := strings.Fields(name)
	for i := range table {
		e := &table[i]
		if tokenOverlap(strings.Fields(e.key), inputTokens) >= TokenOverlapThreshold {
			return e
		}
	}

	return nil
}

// Normalize lowercases the name, strips diacritics via NFD decomposition,
// drops everything outside [a-z0-9\s] and collapses whitespace.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark left over from decomposition
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenOverlap returns the fraction of key tokens that have at least one
// input token as substring or superstring.
func tokenOverlap(keyTokens, inputTokens []string) float64 {
	if len(keyTokens) == 0 {
		return 0
	}
	matched := 0
	for _, kt := range keyTokens {
		for _, it := range inputTokens {
			if strings.Contains(kt, it) || strings.Contains(it, kt) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(keyTokens))
}
