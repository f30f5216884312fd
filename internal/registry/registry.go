// Package registry implements C2: the static CID registry mapping a
// normalized ingredient key to its IngredientSpec, the query ladder
// built per-CID for the market run (C8), and the expected nutrition
// fingerprint used to validate external lookups (C5).
package registry

import (
	"fmt"
	"strings"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/normalize"
)

// Registry is immutable after construction and safe for concurrent
// read access from every worker in C5/C8.
type Registry struct {
	specs   map[string]domain.IngredientSpec
	byKey   map[string]string // normalized key -> CID
}

// New builds a Registry from the built-in entries plus any lookup
// aliases derived from each spec's DisplayName and MustInclude words.
func New() *Registry {
	r := &Registry{
		specs: make(map[string]domain.IngredientSpec, len(entries)),
		byKey: make(map[string]string, len(entries)*2),
	}
	for _, spec := range entries {
		r.specs[spec.CID] = spec
		r.index(spec)
	}
	return r
}

func (r *Registry) index(spec domain.IngredientSpec) {
	key := normalize.Normalize(spec.DisplayName)
	r.addAlias(key, spec.CID)
	r.addAlias(normalize.Normalize(spec.CID), spec.CID)
	for _, w := range spec.MustInclude {
		r.addAlias(normalize.Normalize(w), spec.CID)
	}
}

// addAlias only claims a key for a CID if no earlier spec already
// claimed it — first-writer-wins, same collision policy as the
// canonical nutrition store (C4).
func (r *Registry) addAlias(key, cid string) {
	if key == "" {
		return
	}
	if _, exists := r.byKey[key]; exists {
		return
	}
	r.byKey[key] = cid
}

// Spec returns the IngredientSpec for a CID.
func (r *Registry) Spec(cid string) (domain.IngredientSpec, bool) {
	s, ok := r.specs[cid]
	return s, ok
}

// Lookup resolves a normalized key straight to a CID, exact match
// only. Fuzzy resolution is MapToCID's job.
func (r *Registry) Lookup(normalizedKey string) (string, bool) {
	cid, ok := r.byKey[normalizedKey]
	return cid, ok
}

// MapToCID resolves a planned ingredient's display name to a CID,
// walking the fuzzy-candidate ladder and finally a bounded
// Levenshtein scan over every known key before giving up (§4.2).
func (r *Registry) MapToCID(displayName string) (cid string, normalizedKey string, ok bool) {
	key := normalize.Normalize(displayName)
	for _, cand := range normalize.FuzzyCandidates(key) {
		if id, found := r.byKey[cand]; found {
			return id, key, true
		}
	}

	best := ""
	bestDist := normalize.DefaultCeiling + 1
	for k, id := range r.byKey {
		d := normalize.Levenshtein(key, k, normalize.DefaultCeiling)
		if d < bestDist {
			bestDist = d
			best = id
		}
	}
	if best != "" && bestDist <= normalize.DefaultCeiling {
		return best, key, true
	}
	return "", key, false
}

// QueryRung names one step of the tight→normal→wide ladder.
type QueryRung string

const (
	RungTight  QueryRung = "tight"
	RungNormal QueryRung = "normal"
	RungWide   QueryRung = "wide"
)

// LadderQuery is one generated query plus the rung it belongs to.
type LadderQuery struct {
	Rung  QueryRung
	Query string
}

// BuildQueries builds the three-rung query ladder for a CID (§4.8):
// tight includes every core (MustInclude) term plus the MustExclude
// negations, normal narrows to the first two core terms, and wide
// narrows further to just the first core term — each rung's terms a
// subset of the one before it, widening the search. Rungs can coincide
// when a CID has few core terms (e.g. egg's normal and wide).
func (r *Registry) BuildQueries(cid string) ([]LadderQuery, error) {
	spec, ok := r.specs[cid]
	if !ok {
		return nil, fmt.Errorf("registry: unknown cid %q", cid)
	}

	coreTerms := func(n int) []string {
		if n > len(spec.MustInclude) {
			n = len(spec.MustInclude)
		}
		return spec.MustInclude[:n]
	}

	build := func(terms []string, excludes []string) string {
		var b strings.Builder
		b.WriteString(spec.DisplayName)
		for _, must := range terms {
			b.WriteString(" ")
			b.WriteString(must)
		}
		for _, exclude := range excludes {
			b.WriteString(" -")
			b.WriteString(exclude)
		}
		return strings.TrimSpace(b.String())
	}

	return []LadderQuery{
		{Rung: RungTight, Query: build(spec.MustInclude, spec.MustExclude)},
		{Rung: RungNormal, Query: build(coreTerms(2), nil)},
		{Rung: RungWide, Query: build(coreTerms(1), nil)},
	}, nil
}

// ExpectedFingerprint returns the per-100g macro expectation a
// resolved SKU's nutrition must fall within tolerance of (§4.5).
func (r *Registry) ExpectedFingerprint(cid string) (domain.Macros, bool) {
	spec, ok := r.specs[cid]
	if !ok {
		return domain.Macros{}, false
	}
	return spec.ExpectedMacrosPer100g, true
}

// Size returns the number of CIDs in the registry.
func (r *Registry) Size() int { return len(r.specs) }
