// Package match resolves a canonical model name against an auxiliary
// dataset's key space. Sources disagree on delimiters (space vs hyphen vs
// dot), vendor prefixing, and suffix conventions, so resolution runs a
// fixed cascade: cheap precise strategies first, looser ones only as a
// last resort and only above a length floor that contains the
// false-positive rate.
package match

import (
	"regexp"
	"sort"
	"strings"
)

// Strategy identifies which cascade stage produced a match.
type Strategy string

const (
	StrategyNone        Strategy = ""
	StrategyExact       Strategy = "exact"
	StrategyVariant     Strategy = "variant"
	StrategyContainment Strategy = "containment"
	StrategyTokens      Strategy = "tokens"
)

// containmentFloor is the minimum normalized length for the fuzzy
// containment stage; shorter candidates ("gpt", "o1") would match nearly
// everything.
const containmentFloor = 5

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	versionDotsRe   = regexp.MustCompile(`(\d+)\.(\d+)`)
	qualifierRe     = regexp.MustCompile(`\s*\((free|online|beta|preview)\)`)
	multiHyphenRe   = regexp.MustCompile(`--+`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]`)
	trailVersionRe  = regexp.MustCompile(`-v\d+(\.\d+)?$`)
	knownSuffixesRe = regexp.MustCompile(`-(instruct|chat|hf)$`)
)

// Resolve searches keys for an entry matching the model name, trying in
// order: exact lookup, canonical variants, fuzzy containment, and, when
// partialTokens is set (leaderboard resolution, where naming drift is
// heaviest), a partial hyphen-token match. The first hit wins; a miss
// is a first-class outcome, not an error.
func Resolve[E any](name, provider string, keys map[string]E, partialTokens bool) (E, Strategy, bool) {
	var zero E
	if len(keys) == 0 {
		return zero, StrategyNone, false
	}

	candidate := strings.ToLower(strings.TrimSpace(name))
	prov := strings.ToLower(strings.TrimSpace(provider))
	if candidate == "" {
		return zero, StrategyNone, false
	}

	// 1. Exact key lookup.
	if e, ok := keys[candidate]; ok {
		return e, StrategyExact, true
	}

	// 2. Canonical-variant lookup: each transform applied independently.
	for _, v := range variants(candidate, prov) {
		if e, ok := keys[v]; ok {
			return e, StrategyVariant, true
		}
	}

	// Strategies 3 and 4 scan the key space; sort keys so ties resolve
	// deterministically across runs.
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	// 3. Fuzzy containment on alphanumeric-only forms.
	simple := stripNonAlnum(candidate)
	simpleWithProv := stripNonAlnum(prov + candidate)
	for _, k := range sorted {
		keySimple := stripNonAlnum(k)
		if contains(simple, keySimple) || keySimple == simpleWithProv {
			return keys[k], StrategyContainment, true
		}
	}

	// 4. Partial-token match, guarded to candidates with more than two
	// significant tokens.
	if partialTokens {
		tokens := significantTokens(candidate)
		if len(tokens) > 2 {
			need := min(3, len(tokens))
			for _, k := range sorted {
				hits := 0
				for _, tok := range tokens {
					if strings.Contains(k, tok) {
						hits++
					}
				}
				if hits >= need {
					return keys[k], StrategyTokens, true
				}
			}
		}
	}

	return zero, StrategyNone, false
}

// variants applies the fixed transform catalog to a lowercased candidate.
// Transforms are independent, not composed (beyond the few documented
// pairings), each yielding one probe key, in priority order.
func variants(name, provider string) []string {
	hyphenated := whitespaceRe.ReplaceAllString(name, "-")
	noQualifier := strings.TrimSpace(qualifierRe.ReplaceAllString(name, ""))
	exp := strings.ReplaceAll(name, "experimental", "exp")

	v := []string{
		hyphenated,                             // whitespace -> hyphens
		strings.ReplaceAll(name, "-", " "),     // hyphens -> spaces
		strings.ReplaceAll(name, ".", "-"),     // version dots: "3.5" -> "3-5"
		strings.ReplaceAll(hyphenated, ".", "-"),
		versionDotsRe.ReplaceAllString(name, "$1-$2"),
		provider + "-" + name,
		provider + "/" + name,
		noQualifier,
		whitespaceRe.ReplaceAllString(noQualifier, "-"),
		exp,
		whitespaceRe.ReplaceAllString(exp, "-"),
		strings.ReplaceAll(name, "flash lite", "flash-lite"),
		strings.ReplaceAll(name, "flash-lite", "flash lite"),
		strings.ReplaceAll(name, ".", ""), // last-resort aggressive variant
	}

	out := v[:0]
	seen := make(map[string]struct{}, len(v))
	for _, s := range v {
		if s == "" || s == name {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// contains reports a fuzzy containment hit: one alphanumeric-only string
// is a substring of the other, and the shorter of the two is long enough
// to make that meaningful.
func contains(a, b string) bool {
	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}
	if shorter <= containmentFloor {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// NormalizeKey canonicalizes a raw dataset key: lowercase, whitespace and
// [_.] collapsed to single hyphens. Shared with the key-space builders so
// indexing and probing agree on one form.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, ".", "-")
	return multiHyphenRe.ReplaceAllString(s, "-")
}

// StripSuffixes removes trailing -instruct/-chat/-hf/-vN[.N] qualifiers
// from a normalized key, yielding the base-model form.
func StripSuffixes(key string) string {
	key = knownSuffixesRe.ReplaceAllString(key, "")
	return trailVersionRe.ReplaceAllString(key, "")
}

func stripNonAlnum(s string) string {
	return nonAlnumRe.ReplaceAllString(s, "")
}

// significantTokens splits a normalized candidate into hyphen-delimited
// tokens longer than one character.
func significantTokens(candidate string) []string {
	parts := strings.Split(NormalizeKey(candidate), "-")
	tokens := parts[:0]
	for _, p := range parts {
		if len(p) > 1 {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
