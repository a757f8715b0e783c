// Package ambiguity decides whether a raw substring hit for a keyword must be
// rejected as a false positive.
//
// Short Hebrew keywords are frequent accidental fragments of unrelated longer
// words: "מס" (tax) sits inside "מסעדה" (restaurant), "ביט" (the Bit payment
// app) inside "ביטוח" (insurance). The guard treats "keyword found as a word"
// and "keyword found as a substring" as different things: substring-only hits
// are rejected unless the keyword is explicitly whitelisted for substring
// matching.
package ambiguity

import (
	"strings"

	"shekelio/autocat/internal/textnorm"
)

// Entry describes one keyword in the false-positive table. The table is data,
// not code: it is loaded from YAML alongside the keyword lists so it can grow
// without touching matcher logic.
type Entry struct {
	Keyword string `yaml:"keyword"`
	// AllowSubstring whitelists the keyword for substring matching, lifting
	// the default rejection of non-word-bounded hits. Used for brand names
	// that routinely appear glued to other text.
	AllowSubstring bool `yaml:"allow_substring"`
	// KnownContainers documents longer words the keyword is known to appear
	// inside. Informational; the boundary check does the actual work.
	KnownContainers []string `yaml:"known_containers,omitempty"`
}

// Table is the YAML shape of the false-positive database.
type Table struct {
	FalsePositives []Entry `yaml:"false_positives"`
}

// Guard answers substring-acceptance questions for the keyword matcher.
type Guard struct {
	allowSubstring map[string]bool
	listed         map[string]bool
}

// NewGuard builds a Guard from table entries. Keywords are normalized so the
// guard agrees with the matcher about spelling.
func NewGuard(entries []Entry) *Guard {
	g := &Guard{
		allowSubstring: make(map[string]bool, len(entries)),
		listed:         make(map[string]bool, len(entries)),
	}
	for _, e := range entries {
		kw := textnorm.Normalize(e.Keyword)
		if kw == "" {
			continue
		}
		g.listed[kw] = true
		if e.AllowSubstring {
			g.allowSubstring[kw] = true
		}
	}
	return g
}

// AllowsSubstring reports whether the keyword is whitelisted for substring
// matching.
func (g *Guard) AllowsSubstring(keyword string) bool {
	return g.allowSubstring[textnorm.Normalize(keyword)]
}

// Listed reports whether the keyword appears in the false-positive table.
func (g *Guard) Listed(keyword string) bool {
	return g.listed[textnorm.Normalize(keyword)]
}

// IsFalsePositive reports whether every occurrence of keyword in text is a
// fragment of a longer token, for a keyword that is not whitelisted for
// substring matching. Both arguments are normalized before checking, so
// callers may pass raw text. A keyword that does not occur at all is not a
// false positive; it is simply absent.
func (g *Guard) IsFalsePositive(keyword, text string) bool {
	kw := textnorm.Normalize(keyword)
	norm := textnorm.Normalize(text)
	if kw == "" || norm == "" {
		return false
	}
	if !strings.Contains(norm, kw) {
		return false
	}
	if g.allowSubstring[kw] {
		return false
	}
	return !hasBoundedOccurrence(norm, kw)
}

// hasBoundedOccurrence reports whether kw occurs in norm on word boundaries
// at least once.
func hasBoundedOccurrence(norm, kw string) bool {
	for start := 0; ; {
		i := strings.Index(norm[start:], kw)
		if i < 0 {
			return false
		}
		idx := start + i
		if textnorm.IsBoundedAt(norm, idx, len(kw)) {
			return true
		}
		start = idx + 1
	}
}
