// Package domain holds the response models shared by the Fiscal Data
// client and the report renderer.
package domain

// Placeholder is rendered for fields a record does not carry.
const Placeholder = "N/A"

// Record is one fiscal data row. The API serializes every field as a string
// (or null, which decodes to the empty string), so values stay opaque strings
// until presentation decides otherwise.
type Record map[string]string

// Field returns the value for name, or Placeholder when absent.
func (r Record) Field(name string) string {
	return r.FieldOr(name, Placeholder)
}

// FieldOr returns the value for name, or fallback when absent.
func (r Record) FieldOr(name, fallback string) string {
	if v, ok := r[name]; ok && v != "" {
		return v
	}
	return fallback
}

// Has reports whether the record carries a non-empty value for name.
func (r Record) Has(name string) bool {
	v, ok := r[name]
	return ok && v != ""
}

// Meta is the envelope metadata block. Decoded for completeness, unused by
// the report sections.
type Meta struct {
	Count      int `json:"count"`
	TotalCount int `json:"total-count"`
	TotalPages int `json:"total-pages"`
}

// Envelope is the Fiscal Data API response wrapper. The zero value means
// "nothing to display" and doubles as the failure-path result.
type Envelope struct {
	Data []Record `json:"data"`
	Meta Meta     `json:"meta"`
}

// Empty reports whether the envelope carries no records.
func (e Envelope) Empty() bool {
	return len(e.Data) == 0
}

// First returns the most recent record (the API is queried newest-first).
func (e Envelope) First() (Record, bool) {
	if len(e.Data) == 0 {
		return nil, false
	}
	return e.Data[0], true
}

// Head returns up to n leading records without copying.
func (e Envelope) Head(n int) []Record {
	if n < 0 {
		n = 0
	}
	if n > len(e.Data) {
		n = len(e.Data)
	}
	return e.Data[:n]
}
