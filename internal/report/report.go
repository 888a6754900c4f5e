// Package report renders fetched fiscal datasets as the plain-text terminal
// report: a banner, numbered fetch steps, one boxed section per dataset, and
// a documentation footer.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bessent-hq/bessent-fiscal-reporter/internal/domain"
)

// Section layout shared by every dataset block.
const (
	sectionRuleWidth = 60
	recordRuleWidth  = 30
	bannerRuleWidth  = 31

	maxRateRecords = 10
	maxDebtRecords = 5
)

// rateFields lists the yield curve tenors in display order.
var rateFields = []string{
	"1_month",
	"3_month",
	"6_month",
	"1_year",
	"2_year",
	"5_year",
	"10_year",
	"30_year",
}

// Field names the renderer reads off records.
const (
	fieldRecordDate     = "record_date"
	fieldTotalDebt      = "tot_pub_debt_out_amt"
	fieldExchangeRate   = "exchange_rate"
	fieldClassification = "classification_desc"
	fieldCurrentMonth   = "current_month_net_amt"
	fieldFiscalYTD      = "fiscal_year_to_date_net_amt"
)

// DocsURL points readers at the upstream API reference.
const DocsURL = "https://fiscaldata.treasury.gov/api-documentation/"

// Renderer writes the terminal report. All output goes through a single
// writer, so sections appear in call order.
type Renderer struct {
	w io.Writer
}

// NewRenderer builds a renderer over w. A nil writer discards output.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = io.Discard
	}
	return &Renderer{w: w}
}

// Banner prints the program banner.
func (r *Renderer) Banner(title string) {
	fmt.Fprintln(r.w, title)
	fmt.Fprintln(r.w, strings.Repeat("=", bannerRuleWidth))
}

// Step prints the numbered progress line that precedes each fetch.
func (r *Renderer) Step(n int, action string) {
	fmt.Fprintf(r.w, "\n%d. %s\n", n, action)
}

// sectionHeader prints the boxed title that opens a dataset block.
func (r *Renderer) sectionHeader(title string) {
	rule := strings.Repeat("=", sectionRuleWidth)
	fmt.Fprintf(r.w, "\n%s\n%s\n%s\n", rule, title, rule)
}

// TreasuryRates renders the yield curve section: one dated sub-block per
// record with each tenor on its own line. Tenors the record does not carry
// are skipped rather than padded.
func (r *Renderer) TreasuryRates(env domain.Envelope) {
	if env.Empty() {
		fmt.Fprintln(r.w, "No treasury rate data available")
		return
	}

	r.sectionHeader("DAILY TREASURY YIELD CURVE RATES")

	for _, rec := range env.Head(maxRateRecords) {
		fmt.Fprintf(r.w, "\nDate: %s\n", rec.Field(fieldRecordDate))
		fmt.Fprintln(r.w, strings.Repeat("-", recordRuleWidth))

		for _, field := range rateFields {
			if !rec.Has(field) {
				continue
			}
			fmt.Fprintf(r.w, "%-12s: %s%%\n", humanizeLabel(field), rec[field])
		}
	}
}

// DebtToPenny renders the outstanding public debt section, one dated entry
// per record.
func (r *Renderer) DebtToPenny(env domain.Envelope) {
	if env.Empty() {
		fmt.Fprintln(r.w, "No debt data available")
		return
	}

	r.sectionHeader("U.S. DEBT TO THE PENNY")

	for _, rec := range env.Head(maxDebtRecords) {
		fmt.Fprintf(r.w, "\nDate: %s\n", rec.Field(fieldRecordDate))
		fmt.Fprintf(r.w, "Total Public Debt: %s\n", FormatCurrency(rec.Field(fieldTotalDebt)))
	}
}

// ExchangeRatesHeader opens the exchange section. Quotes follow one per
// currency via ExchangeRateLine.
func (r *Renderer) ExchangeRatesHeader() {
	r.sectionHeader("TREASURY EXCHANGE RATES")
}

// ExchangeRateLine prints the newest quote for one currency. An empty
// envelope produces no output, so currencies without data are skipped
// silently.
func (r *Renderer) ExchangeRateLine(currency string, env domain.Envelope) {
	rec, ok := env.First()
	if !ok {
		return
	}
	fmt.Fprintf(r.w, "%s/USD: %s (as of %s)\n", currency, rec.Field(fieldExchangeRate), rec.Field(fieldRecordDate))
}

// MonthlyStatement renders the newest monthly statement summary line set.
func (r *Renderer) MonthlyStatement(env domain.Envelope) {
	if env.Empty() {
		fmt.Fprintln(r.w, "No treasury statement data available")
		return
	}

	r.sectionHeader("MONTHLY TREASURY STATEMENT (Latest)")

	rec, _ := env.First()
	fmt.Fprintf(r.w, "Date: %s\n", rec.Field(fieldRecordDate))
	fmt.Fprintf(r.w, "Classification: %s\n", rec.Field(fieldClassification))
	fmt.Fprintf(r.w, "Current Month: %s\n", FormatCurrency(rec.FieldOr(fieldCurrentMonth, "0")))
	fmt.Fprintf(r.w, "Fiscal YTD: %s\n", FormatCurrency(rec.FieldOr(fieldFiscalYTD, "0")))
}

// DocsFooter closes the report with the API documentation pointer.
func (r *Renderer) DocsFooter() {
	rule := strings.Repeat("=", sectionRuleWidth)
	fmt.Fprintf(r.w, "\n%s\nAPI Documentation: %s\n%s\n", rule, DocsURL, rule)
}
