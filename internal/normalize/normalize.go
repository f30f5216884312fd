// Package normalize implements C1: turning a free-form ingredient
// name into a canonical string key, plus the fuzzy-candidate ladder
// and bounded Levenshtein distance used for last-resort matching in
// the nutrition resolver (C5) and canonical registry (C2).
package normalize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	nonWordRE    = regexp.MustCompile(`[^a-z0-9_]+`)
	numericSuffixRE = regexp.MustCompile(`_?\d+$`)
)

// brandPrefixes and packSuffixes are curated lists of noise tokens
// stripped before the core synonym pass. Kept small and explicit
// rather than data-driven, matching the CID registry's own curation
// style (C2).
var brandPrefixes = []string{
	"organic", "fresh", "frozen", "canned", "premium", "extra", "low fat",
	"fat free", "reduced fat", "whole", "skim", "lean", "boneless", "skinless",
}

var packSuffixes = []string{
	"pack", "packet", "bag", "box", "can", "jar", "bottle", "tub",
}

// qualityAdjectives are stripped after separators are normalized,
// since they rarely change the underlying ingredient identity.
var qualityAdjectives = []string{
	"large", "small", "medium", "jumbo", "extra_large", "free_range",
	"grass_fed", "wild_caught", "farm_raised",
}

// synonyms maps casual/regional naming onto one canonical token.
// Applied twice (before and after plural handling) per spec.md §4.1.
var synonyms = map[string]string{
	"garbanzo":      "chickpea",
	"garbanzos":     "chickpeas",
	"courgette":     "zucchini",
	"aubergine":     "eggplant",
	"scallion":      "green_onion",
	"scallions":     "green_onions",
	"cilantro":      "coriander",
	"capsicum":      "bell_pepper",
	"mince":         "ground_beef",
	"ketchup":       "tomato_sauce",
	"soda":          "soft_drink",
	"pop":           "soft_drink",
	"mayo":          "mayonnaise",
	"evoo":          "olive_oil",
	"peanut_butter_pb": "peanut_butter",
}

// pluralExceptions are words that end in "s" but are not plurals and
// must not be stripped (spec.md §4.1).
var pluralExceptions = map[string]bool{
	"oats": true, "hummus": true, "couscous": true, "asparagus": true, "lentils": true,
}

// Normalize is the total, deterministic function described in §4.1:
// lowercase, trim, collapse whitespace, substitute %→pct, separators
// to underscore, strip brand/quality prefixes and pack suffixes,
// strip quality adjectives, apply synonyms, handle plurals, re-apply
// synonyms.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "%", "pct")
	s = whitespaceRE.ReplaceAllString(s, " ")

	s = stripListedPhrases(s, brandPrefixes)
	s = stripListedPhrases(s, packSuffixes)

	// separators -> underscore
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = nonWordRE.ReplaceAllString(s, "_")
	s = collapseUnderscores(s)

	s = stripListedTokens(s, qualityAdjectives)
	s = applySynonyms(s)
	s = handlePlurals(s)
	s = applySynonyms(s)

	s = strings.Trim(s, "_")
	return s
}

func stripListedPhrases(s string, phrases []string) string {
	for _, p := range phrases {
		needle := strings.ReplaceAll(p, "_", " ")
		s = strings.ReplaceAll(s, needle+" ", "")
		s = strings.TrimSuffix(s, " "+needle)
		if s == needle {
			s = ""
		}
	}
	return strings.TrimSpace(s)
}

func stripListedTokens(s string, tokens []string) string {
	parts := strings.Split(s, "_")
	out := make([]string, 0, len(parts))
	blocked := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		blocked[t] = true
	}
	for _, p := range parts {
		if p == "" || blocked[p] {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, "_")
}

func collapseUnderscores(s string) string {
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

func applySynonyms(s string) string {
	if v, ok := synonyms[s]; ok {
		return v
	}
	// also try per-token substitution for multi-word keys
	parts := strings.Split(s, "_")
	changed := false
	for i, p := range parts {
		if v, ok := synonyms[p]; ok {
			parts[i] = v
			changed = true
		}
	}
	if changed {
		return strings.Join(parts, "_")
	}
	return s
}

func handlePlurals(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		parts[i] = singularize(p)
	}
	return strings.Join(parts, "_")
}

func singularize(word string) string {
	if pluralExceptions[word] {
		return word
	}
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "oes") && len(word) > 3:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 1:
		return word[:len(word)-1]
	default:
		return word
	}
}

// FuzzyCandidates returns an ordered list of lookup keys for tiered
// matching per §4.1: exact, quality-stripped (same as exact since
// Normalize already strips quality), first word, last word, and
// numeric-suffix-stripped.
func FuzzyCandidates(key string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(k string) {
		if k == "" || seen[k] {
			return
		}
		seen[k] = true
		out = append(out, k)
	}

	add(key)

	parts := strings.Split(key, "_")
	if len(parts) > 0 {
		add(parts[0])
		add(parts[len(parts)-1])
	}

	add(numericSuffixRE.ReplaceAllString(key, ""))

	return out
}
