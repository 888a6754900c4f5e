package report

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatCurrency renders a numeric amount string as a dollar figure with
// thousands separators and exactly two decimals. Values that do not parse
// come back unchanged, so placeholders like "N/A" pass through.
func FormatCurrency(amount string) string {
	v, err := strconv.ParseFloat(strings.ReplaceAll(amount, ",", ""), 64)
	if err != nil {
		return amount
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// humanizeLabel turns a snake_case field name into its display label,
// e.g. "1_month" becomes "1 Month".
func humanizeLabel(field string) string {
	// cases.Title casers are stateful, so build one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(field, "_", " "))
}
