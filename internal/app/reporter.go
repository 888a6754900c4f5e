package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bessent-hq/bessent-fiscal-reporter/internal/config"
	"github.com/bessent-hq/bessent-fiscal-reporter/internal/domain"
	"github.com/bessent-hq/bessent-fiscal-reporter/internal/logger"
	"github.com/bessent-hq/bessent-fiscal-reporter/internal/report"
	"github.com/bessent-hq/bessent-fiscal-reporter/pkg/fiscal"
)

const bannerTitle = "Bessent - Treasury API Client"

const dateLayout = "2006-01-02"

// Reporter wires together the dataset catalog, the fiscal client, and the
// renderer, and executes one report run.
type Reporter struct {
	cfg    *config.Config
	client *fiscal.Client
	render *report.Renderer
	log    logger.Logger
	now    func() time.Time
}

// NewReporter builds a reporter runtime from config. The rendered report is
// written to out.
func NewReporter(cfg *config.Config, out io.Writer, log logger.Logger) (*Reporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	catalog := fiscal.DefaultCatalog()
	if cfg.DatasetsFile != "" {
		loaded, err := fiscal.LoadCatalog(cfg.DatasetsFile)
		if err != nil {
			return nil, fmt.Errorf("load datasets catalog: %w", err)
		}
		catalog = loaded
	}
	datasets := catalog.All()
	ids := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		ids = append(ids, ds.ID)
	}
	log.InfoObj("datasets catalog loaded", "datasets_meta", map[string]any{
		"count": len(ids),
		"ids":   ids,
	})

	session := fiscal.SessionHTTPClient(cfg.HTTPTimeout, cfg.UserAgent)
	client := fiscal.NewClient(session, cfg.BaseURL, catalog)
	log.InfoObj("fiscal client initialized", "client_meta", map[string]any{
		"base_url":        cfg.BaseURL,
		"timeout_seconds": int(cfg.HTTPTimeout.Seconds()),
		"user_agent":      cfg.UserAgent,
	})

	return &Reporter{
		cfg:    cfg,
		client: client,
		render: report.NewRenderer(out),
		log:    log,
		now:    time.Now,
	}, nil
}

// Run executes one full report. Sections are fetched and rendered in order;
// a failed fetch renders its section as empty and the run moves on to the
// next one, so a single dataset outage never hides the rest of the report.
func (r *Reporter) Run(ctx context.Context) error {
	if r == nil || r.client == nil {
		return fmt.Errorf("reporter is not initialized")
	}

	start := time.Now()
	r.log.InfoObj("report run starting", "report_meta", map[string]any{
		"base_url":   r.cfg.BaseURL,
		"currencies": r.cfg.ExchangeCurrencies,
	})

	r.render.Banner(bannerTitle)

	var errs []error
	if err := r.ratesSection(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := r.debtSection(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := r.exchangeSection(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := r.statementSection(ctx); err != nil {
		errs = append(errs, err)
	}

	r.render.DocsFooter()

	if err := errors.Join(errs...); err != nil {
		r.log.WarnObj("report completed with failed sections", "report_meta", map[string]any{
			"failed_sections": len(errs),
			"elapsed_ms":      time.Since(start).Milliseconds(),
			"errors":          err.Error(),
		})
		return nil
	}

	r.log.InfoObj("report completed", "report_meta", map[string]any{
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// ratesSection fetches and renders the yield curve block.
func (r *Reporter) ratesSection(ctx context.Context) error {
	r.render.Step(1, "Fetching latest Treasury rates...")

	env, err := r.client.DailyTreasuryRates(ctx, fiscal.RatesQuery{Limit: r.cfg.RatesDisplayLimit})
	if err != nil {
		r.log.ErrorObj("treasury rates fetch failed", "error", err)
		env = domain.Envelope{}
	}
	r.render.TreasuryRates(env)
	return err
}

// debtSection fetches and renders the trailing debt window.
func (r *Reporter) debtSection(ctx context.Context) error {
	r.render.Step(2, "Fetching recent debt data...")

	today := r.now()
	windowStart := today.AddDate(0, 0, -r.cfg.DebtWindowDays)

	env, err := r.client.DebtToPenny(ctx, fiscal.DebtQuery{
		StartDate: windowStart.Format(dateLayout),
		EndDate:   today.Format(dateLayout),
	})
	if err != nil {
		r.log.ErrorObj("debt data fetch failed", "error", err)
		env = domain.Envelope{}
	}
	r.render.DebtToPenny(env)
	return err
}

// exchangeSection fetches the newest quote per configured currency.
// Currencies whose fetch fails or returns nothing are skipped without a
// line of their own.
func (r *Reporter) exchangeSection(ctx context.Context) error {
	r.render.Step(3, "Fetching exchange rates...")
	r.render.ExchangeRatesHeader()

	var errs []error
	for _, currency := range r.cfg.ExchangeCurrencies {
		env, err := r.client.ExchangeRates(ctx, fiscal.ExchangeQuery{Currency: currency})
		if err != nil {
			r.log.ErrorObj("exchange rate fetch failed", "exchange_meta", map[string]any{
				"currency": currency,
				"error":    err.Error(),
			})
			errs = append(errs, fmt.Errorf("exchange rates %s: %w", currency, err))
			continue
		}
		r.render.ExchangeRateLine(currency, env)
	}
	return errors.Join(errs...)
}

// statementSection fetches and renders the current month's statement. The
// client fills in the month from its clock.
func (r *Reporter) statementSection(ctx context.Context) error {
	r.render.Step(4, "Fetching Monthly Treasury Statement...")

	env, err := r.client.MonthlyTreasuryStatement(ctx, fiscal.StatementQuery{})
	if err != nil {
		r.log.ErrorObj("treasury statement fetch failed", "error", err)
		env = domain.Envelope{}
	}
	r.render.MonthlyStatement(env)
	return err
}
