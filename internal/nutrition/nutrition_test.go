package nutrition

import "testing"

func TestHotPathAllEntriesPassKcalBalance(t *testing.T) {
	hp := NewHotPath()
	_, rejected := hp.AuditReport()
	if len(rejected) != 0 {
		t.Fatalf("expected no rejected hot-path rows, got %v", rejected)
	}
	if hp.Size() < 50 {
		t.Fatalf("expected a substantial hot-path table, got %d", hp.Size())
	}
}

func TestHotPathLookupKnownKey(t *testing.T) {
	hp := NewHotPath()
	row, ok := hp.Lookup("chicken_breast")
	if !ok {
		t.Fatal("expected chicken_breast to be found")
	}
	if row.KcalBalance() > kcalBalanceCeiling {
		t.Fatalf("kcal balance %v exceeds ceiling", row.KcalBalance())
	}
}

func TestCanonicalLoadsAndPassesGate(t *testing.T) {
	c := NewCanonical()
	if len(c.Rejected()) != 0 {
		t.Fatalf("expected no rejected canonical rows, got %v", c.Rejected())
	}
	if c.Size() == 0 {
		t.Fatal("expected canonical store to have entries")
	}
	row, ok := c.Lookup("watermelon")
	if !ok {
		t.Fatal("expected watermelon in canonical store")
	}
	if row.KcalBalance() > kcalBalanceCeiling {
		t.Fatalf("kcal balance %v exceeds ceiling", row.KcalBalance())
	}
}

func TestIngestionGateRejectsImpossibleRow(t *testing.T) {
	raw := []byte(`[{"key":"bad_row","kcal":100,"protein":60,"fat":60,"carb":0,"state":"raw"}]`)
	c, err := buildCanonical(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Size() != 0 {
		t.Fatalf("expected impossible macro row to be rejected, got %d rows", c.Size())
	}
	if len(c.Rejected()) != 1 {
		t.Fatalf("expected exactly one rejection, got %v", c.Rejected())
	}
}

func TestIngestionGateRejectsKcalOutOfRange(t *testing.T) {
	raw := []byte(`[{"key":"bad_kcal","kcal":950,"protein":0,"fat":0,"carb":0,"state":"raw"}]`)
	c, err := buildCanonical(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Size() != 0 {
		t.Fatalf("expected out-of-range kcal row to be rejected, got %d rows", c.Size())
	}
}

func TestIngestionGateFirstWriterWinsOnDuplicate(t *testing.T) {
	raw := []byte(`[
		{"key":"dup","kcal":118,"protein":10,"fat":2,"carb":15,"state":"raw"},
		{"key":"dup","kcal":200,"protein":20,"fat":0,"carb":30,"state":"raw"}
	]`)
	c, err := buildCanonical(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row, ok := c.Lookup("dup")
	if !ok {
		t.Fatal("expected dup key to resolve to first entry")
	}
	if row.KcalPer100g != 118 {
		t.Fatalf("expected first-writer-wins to keep kcal=118, got %v", row.KcalPer100g)
	}
}

func TestOfflinePrefersHotPathOverCanonical(t *testing.T) {
	o := NewOffline()
	_, src, ok := o.Lookup("chicken_breast")
	if !ok || src != "hotpath" {
		t.Fatalf("expected hotpath source for chicken_breast, got src=%v ok=%v", src, ok)
	}
	_, src, ok = o.Lookup("watermelon")
	if !ok || src != "canonical" {
		t.Fatalf("expected canonical source for watermelon, got src=%v ok=%v", src, ok)
	}
	_, _, ok = o.Lookup("totally_unknown_thing")
	if ok {
		t.Fatal("expected miss for unknown key")
	}
}
