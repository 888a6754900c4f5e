package fiscal

import "testing"

func TestClauseString(t *testing.T) {
	c := Clause{Field: "record_date", Op: OpGte, Value: "2024-03-01"}
	if got := c.String(); got != "record_date:gte:2024-03-01" {
		t.Errorf("unexpected clause: %q", got)
	}
}

func TestFilterJoinsWithCommas(t *testing.T) {
	var f Filter
	f = f.Where("record_date", OpGte, "2024-03-01")
	f = f.Where("record_date", OpLte, "2024-03-08")

	want := "record_date:gte:2024-03-01,record_date:lte:2024-03-08"
	if got := f.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFilterWhereSkipsEmptyValues(t *testing.T) {
	var f Filter
	f = f.Where("currency", OpEq, "")
	f = f.Where("record_date", OpEq, "   ")

	if !f.Empty() {
		t.Fatalf("expected empty filter, got %q", f.String())
	}
	if got := f.String(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}

	f = f.Where("currency", OpEq, "EUR")
	if f.Empty() {
		t.Fatal("expected filter with one clause")
	}
	if got := f.String(); got != "currency:eq:EUR" {
		t.Errorf("expected currency clause, got %q", got)
	}
}

func TestFilterLikeClause(t *testing.T) {
	f := Filter{}.Where("record_date", OpLike, "2024-03")
	if got := f.String(); got != "record_date:like:2024-03" {
		t.Errorf("expected like clause, got %q", got)
	}
}
