package normalize

import "testing"

func TestNormalizeRoundTripIdempotent(t *testing.T) {
	cases := []string{
		"Organic Chicken Breast, Boneless/Skinless",
		"  Frozen Peas  ",
		"2% Milk",
		"Scallions",
		"Garbanzo Beans",
		"Rolled Oats",
		"Hummus",
		"Large Eggs",
		"",
	}
	for _, c := range cases {
		once := Normalize(c)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("normalize not idempotent for %q: once=%q twice=%q", c, once, twice)
		}
	}
}

func TestNormalizePluralExceptions(t *testing.T) {
	for _, w := range []string{"oats", "hummus", "couscous", "asparagus", "lentils"} {
		got := Normalize(w)
		if got != w {
			t.Errorf("expected plural exception %q preserved, got %q", w, got)
		}
	}
}

func TestNormalizeSynonyms(t *testing.T) {
	if got := Normalize("Garbanzo"); got != "chickpea" {
		t.Errorf("expected chickpea, got %q", got)
	}
	if got := Normalize("Courgette"); got != "zucchini" {
		t.Errorf("expected zucchini, got %q", got)
	}
}

func TestNormalizePercentAndSeparators(t *testing.T) {
	got := Normalize("2% milk")
	if got != "2pct_milk" {
		t.Errorf("expected 2pct_milk, got %q", got)
	}
}

func TestFuzzyCandidatesOrderedAndDeduped(t *testing.T) {
	cands := FuzzyCandidates("chicken_breast_2")
	if len(cands) == 0 {
		t.Fatal("expected at least one candidate")
	}
	if cands[0] != "chicken_breast_2" {
		t.Errorf("expected exact match first, got %q", cands[0])
	}
	seen := map[string]bool{}
	for _, c := range cands {
		if seen[c] {
			t.Errorf("duplicate candidate %q", c)
		}
		seen[c] = true
	}
}

func TestLevenshteinBasic(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"chicken", "chicken", 0},
		{"chicken", "chickn", 1},
		{"kitten", "sitting", 3},
		{"", "abc", 3},
	}
	for _, c := range cases {
		got := Levenshtein(c.a, c.b, 10)
		if got != c.want {
			t.Errorf("Levenshtein(%q,%q)=%d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestLevenshteinCeilingShortCircuit(t *testing.T) {
	got := Levenshtein("completely", "different_string", 2)
	if got != 3 {
		t.Errorf("expected ceiling+1=3 for distant strings, got %d", got)
	}
}

func TestMemoCachesResult(t *testing.T) {
	m := NewMemo()
	a := m.Normalize("Organic Chicken Breast")
	b := m.Normalize("Organic Chicken Breast")
	if a != b {
		t.Errorf("memo returned inconsistent results: %q vs %q", a, b)
	}
	if a != Normalize("Organic Chicken Breast") {
		t.Errorf("memo result diverged from direct Normalize call")
	}
}
