package fiscal

import "strings"

// Op is a Fiscal Data filter operator.
type Op string

// Operators understood by the API filter grammar.
const (
	OpEq   Op = "eq"
	OpGte  Op = "gte"
	OpLte  Op = "lte"
	OpLike Op = "like"
)

// Clause is a single field:operator:value filter segment.
type Clause struct {
	Field string
	Op    Op
	Value string
}

// String renders the clause in the wire form the API expects.
func (c Clause) String() string {
	return c.Field + ":" + string(c.Op) + ":" + c.Value
}

// Filter is an ordered list of clauses, joined with commas on the wire. An
// empty filter renders to "" and the query parameter is omitted entirely.
type Filter []Clause

// Where appends a clause. Clauses with an empty value are skipped so that
// optional bounds compose without conditionals at the call site.
func (f Filter) Where(field string, op Op, value string) Filter {
	if strings.TrimSpace(value) == "" {
		return f
	}
	return append(f, Clause{Field: field, Op: op, Value: value})
}

// Empty reports whether the filter has no clauses.
func (f Filter) Empty() bool {
	return len(f) == 0
}

// String joins the clauses with commas.
func (f Filter) String() string {
	if len(f) == 0 {
		return ""
	}

	parts := make([]string, 0, len(f))
	for _, c := range f {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ",")
}
