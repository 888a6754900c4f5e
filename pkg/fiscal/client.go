// Package fiscal provides a client for the U.S. Treasury Fiscal Data API:
// the dataset catalog, the filter grammar, and one fetch operation per
// built-in dataset. Responses come back as domain envelopes with every
// field kept as the string the API sent.
package fiscal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bessent-hq/bessent-fiscal-reporter/internal/domain"
	"github.com/bessent-hq/bessent-fiscal-reporter/pkg/httpclient"
)

// DefaultBaseURL is the public Fiscal Data service root.
const DefaultBaseURL = "https://api.fiscaldata.treasury.gov/services/api/fiscal_service"

// DefaultUserAgent identifies the client to the API.
const DefaultUserAgent = "Treasury-API-Client/1.0"

const (
	acceptJSON     = "application/json"
	defaultTimeout = 15 * time.Second
)

// Filterable field names used by the built-in operations.
const (
	FieldRecordDate = "record_date"
	FieldCurrency   = "currency"
)

// HTTPClient is an alias for the shared HTTP client interface, for clarity
// within the fiscal package.
type HTTPClient = httpclient.Client

// DefaultHTTPClient returns the session used against the public service:
// resty with the default timeout and the fixed identification headers.
func DefaultHTTPClient() HTTPClient {
	return SessionHTTPClient(defaultTimeout, DefaultUserAgent)
}

// SessionHTTPClient builds a persistent session carrying the User-Agent and
// Accept headers on every request it issues.
func SessionHTTPClient(timeout time.Duration, userAgent string) HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}
	return httpclient.NewRestyClientWithHeaders(timeout, map[string]string{
		"User-Agent": userAgent,
		"Accept":     acceptJSON,
	})
}

// Client issues dataset requests against one Fiscal Data service.
type Client struct {
	http    HTTPClient
	baseURL string
	catalog *Catalog
	now     func() time.Time
}

// NewClient builds a client. A nil httpClient falls back to the default
// session, an empty baseURL to the public service, a nil catalog to the
// built-in datasets.
func NewClient(httpClient HTTPClient, baseURL string, catalog *Catalog) *Client {
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		catalog: catalog,
		now:     time.Now,
	}
}

// RatesQuery parameterizes DailyTreasuryRates. The zero value selects the
// dataset defaults: no date filter, the catalog limit, all fields.
type RatesQuery struct {
	// Date restricts results to one record_date, formatted YYYY-MM-DD.
	Date string
	// Limit caps the number of records; <= 0 means the dataset default.
	Limit int
	// Fields projects the response down to the named columns.
	Fields []string
}

// DebtQuery bounds DebtToPenny by record date. Either side may be empty.
type DebtQuery struct {
	StartDate string
	EndDate   string
}

// StatementQuery selects the month for MonthlyTreasuryStatement. Zero
// values default to the current year and month independently.
type StatementQuery struct {
	Year  int
	Month time.Month
}

// ExchangeQuery filters ExchangeRates. Both fields are optional; the
// currency is matched against its upper-cased ISO code.
type ExchangeQuery struct {
	Currency string
	Date     string
}

// DailyTreasuryRates fetches average interest rates on Treasury
// securities, newest first.
func (c *Client) DailyTreasuryRates(ctx context.Context, q RatesQuery) (domain.Envelope, error) {
	ds, err := c.dataset(DatasetTreasuryRates)
	if err != nil {
		return domain.Envelope{}, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = ds.Limit
	}

	var filter Filter
	filter = filter.Where(FieldRecordDate, OpEq, q.Date)

	params := queryParams(limit, ds.Sort, filter)
	if len(q.Fields) > 0 {
		params.Set("fields", strings.Join(q.Fields, ","))
	}

	return c.fetch(ctx, ds, params)
}

// DebtToPenny fetches the total public debt outstanding, newest first.
func (c *Client) DebtToPenny(ctx context.Context, q DebtQuery) (domain.Envelope, error) {
	ds, err := c.dataset(DatasetDebtToPenny)
	if err != nil {
		return domain.Envelope{}, err
	}

	var filter Filter
	filter = filter.Where(FieldRecordDate, OpGte, q.StartDate)
	filter = filter.Where(FieldRecordDate, OpLte, q.EndDate)

	return c.fetch(ctx, ds, queryParams(ds.Limit, ds.Sort, filter))
}

// MonthlyTreasuryStatement fetches Table 1 of the monthly statement for the
// selected month, matched by record_date prefix.
func (c *Client) MonthlyTreasuryStatement(ctx context.Context, q StatementQuery) (domain.Envelope, error) {
	ds, err := c.dataset(DatasetMonthlyStatement)
	if err != nil {
		return domain.Envelope{}, err
	}

	year, month := q.Year, q.Month
	if year == 0 {
		year = c.now().Year()
	}
	if month == 0 {
		month = c.now().Month()
	}

	var filter Filter
	filter = filter.Where(FieldRecordDate, OpLike, fmt.Sprintf("%04d-%02d", year, int(month)))

	return c.fetch(ctx, ds, queryParams(ds.Limit, ds.Sort, filter))
}

// ExchangeRates fetches Treasury reporting rates of exchange, newest first.
func (c *Client) ExchangeRates(ctx context.Context, q ExchangeQuery) (domain.Envelope, error) {
	ds, err := c.dataset(DatasetExchangeRates)
	if err != nil {
		return domain.Envelope{}, err
	}

	var filter Filter
	filter = filter.Where(FieldCurrency, OpEq, strings.ToUpper(strings.TrimSpace(q.Currency)))
	filter = filter.Where(FieldRecordDate, OpEq, q.Date)

	return c.fetch(ctx, ds, queryParams(ds.Limit, ds.Sort, filter))
}

// dataset resolves a catalog entry by id.
func (c *Client) dataset(id string) (Dataset, error) {
	ds, ok := c.catalog.ByID(id)
	if !ok {
		return Dataset{}, fmt.Errorf("dataset %q is not in the catalog", id)
	}
	return ds, nil
}

// queryParams assembles the wire parameters shared by every operation.
func queryParams(limit int, sort string, filter Filter) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if sort != "" {
		params.Set("sort", sort)
	}
	if !filter.Empty() {
		params.Set("filter", filter.String())
	}
	return params
}

// fetch issues the request and decodes the response envelope.
func (c *Client) fetch(ctx context.Context, ds Dataset, params url.Values) (domain.Envelope, error) {
	resp, err := c.http.Get(ctx, c.baseURL+ds.Path, params, nil)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("fetch %s: %w", ds.ID, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return domain.Envelope{}, fmt.Errorf("%s returned status %d body: %s", ds.ID, resp.StatusCode(), responseSnippet(body))
	}

	var env domain.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.Envelope{}, fmt.Errorf("decode %s response: %w", ds.ID, err)
	}
	return env, nil
}

// responseSnippet keeps error messages bounded on large response bodies.
func responseSnippet(body []byte) string {
	const maxLen = 512

	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
