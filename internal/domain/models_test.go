package domain

import (
	"encoding/json"
	"testing"
)

func TestRecordFieldFallbacks(t *testing.T) {
	rec := Record{
		"record_date": "2024-03-15",
		"10_year":     "",
	}

	if got := rec.Field("record_date"); got != "2024-03-15" {
		t.Errorf("expected record_date value, got %q", got)
	}
	if got := rec.Field("missing"); got != Placeholder {
		t.Errorf("expected placeholder for missing field, got %q", got)
	}
	if got := rec.Field("10_year"); got != Placeholder {
		t.Errorf("expected placeholder for empty field, got %q", got)
	}
	if got := rec.FieldOr("missing", "0"); got != "0" {
		t.Errorf("expected fallback 0, got %q", got)
	}
	if got := rec.FieldOr("record_date", "0"); got != "2024-03-15" {
		t.Errorf("expected stored value over fallback, got %q", got)
	}
}

func TestRecordHasTreatsEmptyAsAbsent(t *testing.T) {
	rec := Record{"1_month": "4.50", "3_month": ""}

	if !rec.Has("1_month") {
		t.Error("expected 1_month to be present")
	}
	if rec.Has("3_month") {
		t.Error("expected empty 3_month to read as absent")
	}
	if rec.Has("6_month") {
		t.Error("expected missing 6_month to read as absent")
	}
}

func TestEnvelopeDecodeNullsToEmpty(t *testing.T) {
	payload := `{
		"data": [
			{"record_date": "2024-03-15", "1_month": "5.38", "30_year": null}
		],
		"meta": {"count": 1, "total-count": 42, "total-pages": 5}
	}`

	var env Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	if env.Empty() {
		t.Fatal("expected envelope with one record")
	}
	rec, ok := env.First()
	if !ok {
		t.Fatal("expected first record")
	}
	if got := rec.Field("1_month"); got != "5.38" {
		t.Errorf("expected 1_month 5.38, got %q", got)
	}
	if rec.Has("30_year") {
		t.Error("expected null 30_year to read as absent")
	}
	if env.Meta.Count != 1 {
		t.Errorf("expected count 1, got %d", env.Meta.Count)
	}
	if env.Meta.TotalCount != 42 {
		t.Errorf("expected total-count 42, got %d", env.Meta.TotalCount)
	}
	if env.Meta.TotalPages != 5 {
		t.Errorf("expected total-pages 5, got %d", env.Meta.TotalPages)
	}
}

func TestEnvelopeFirstOnEmpty(t *testing.T) {
	var env Envelope

	if !env.Empty() {
		t.Error("expected zero envelope to be empty")
	}
	if _, ok := env.First(); ok {
		t.Error("expected no first record on empty envelope")
	}
}

func TestEnvelopeHeadClamps(t *testing.T) {
	env := Envelope{Data: []Record{{"n": "1"}, {"n": "2"}, {"n": "3"}}}

	if got := len(env.Head(2)); got != 2 {
		t.Errorf("expected 2 records, got %d", got)
	}
	if got := len(env.Head(10)); got != 3 {
		t.Errorf("expected clamp to 3 records, got %d", got)
	}
	if got := len(env.Head(-1)); got != 0 {
		t.Errorf("expected no records for negative n, got %d", got)
	}
	if got := env.Head(2)[0]["n"]; got != "1" {
		t.Errorf("expected leading record first, got %q", got)
	}
}
