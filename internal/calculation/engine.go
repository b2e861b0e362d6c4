package calculation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finadvisor/finadvisor/internal/cache"
	"github.com/finadvisor/finadvisor/internal/domain"
)

// DefaultCacheTTL is used when a cache is attached without an explicit TTL.
const DefaultCacheTTL = 24 * time.Hour

// Engine bundles the calculators with optional memoization and logging.
type Engine struct {
	Tax      *IncomeTaxCalculator
	Loan     *AmortizationCalculator
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   Logger

	now func() time.Time
}

// NewEngine creates an engine with the default regime, no cache and a no-op logger
func NewEngine() *Engine {
	return &Engine{
		Tax:    NewIncomeTaxCalculator(),
		Loan:   NewAmortizationCalculator(),
		Logger: NopLogger{},
		now:    time.Now,
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// WithCache attaches a result cache. A non-positive ttl uses DefaultCacheTTL.
func (e *Engine) WithCache(c cache.Cache, ttl time.Duration) *Engine {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	e.Cache = c
	e.CacheTTL = ttl
	return e
}

// CalculateTax runs the income tax calculator, consulting the cache first.
func (e *Engine) CalculateTax(ctx context.Context, input domain.TaxCalculationInput) domain.TaxCalculationResult {
	key := cache.Key("tax", regimeFingerprint(e.Tax.Regime),
		input.AnnualIncome.String(),
		string(input.AgeBracket.Normalize()),
		input.Deduction80C.String(),
		input.Deduction80D.String(),
		input.HomeLoanInterest.String(),
		input.OtherDeductions.String(),
	)

	var result domain.TaxCalculationResult
	if e.lookup(ctx, key, &result) {
		return result
	}
	result = e.Tax.Calculate(input)
	e.store(ctx, key, result)
	e.Logger.Debugf("tax calculated: income=%s taxable=%s liability=%s",
		result.GrossIncome, result.TaxableIncome, result.TaxLiability)
	return result
}

// CalculateLoan runs the amortization calculator. Rejected inputs are never cached.
func (e *Engine) CalculateLoan(ctx context.Context, input domain.LoanInput) (domain.LoanResult, error) {
	key := cache.Key("loan",
		string(input.LoanType),
		strconv.FormatFloat(input.Principal, 'g', -1, 64),
		strconv.FormatFloat(input.AnnualRatePercent, 'g', -1, 64),
		strconv.FormatFloat(input.TenureYears, 'g', -1, 64),
	)

	var result domain.LoanResult
	if e.lookup(ctx, key, &result) {
		return result, nil
	}
	result, err := e.Loan.Calculate(input)
	if err != nil {
		e.Logger.Debugf("loan rejected: %v", err)
		return domain.LoanResult{}, err
	}
	e.store(ctx, key, result)
	return result, nil
}

// LoanSchedule returns the full amortization table for a loan.
func (e *Engine) LoanSchedule(input domain.LoanInput) (domain.AmortizationSchedule, error) {
	return e.Loan.Schedule(input)
}

// RunWorksheet calculates every case of a worksheet. Rejected loan cases are
// reported with their error instead of aborting the run.
func (e *Engine) RunWorksheet(ctx context.Context, ws *domain.Worksheet) (*domain.WorksheetReport, error) {
	if ws == nil {
		return nil, errors.New("worksheet is nil")
	}

	report := &domain.WorksheetReport{
		Name:          ws.Name,
		Regime:        e.Tax.Regime.Name,
		RegimeFigures: e.Tax.Regime,
		GeneratedAt:   e.now().UTC(),
		Tax:           make([]domain.TaxCaseReport, 0, len(ws.TaxCases)),
		Loans:         make([]domain.LoanCaseReport, 0, len(ws.LoanCases)),
	}

	for _, tc := range ws.TaxCases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("worksheet %q interrupted: %w", ws.Name, err)
		}
		report.Tax = append(report.Tax, domain.TaxCaseReport{
			Name:   tc.Name,
			Input:  tc.Input,
			Result: e.CalculateTax(ctx, tc.Input),
		})
	}

	for _, lc := range ws.LoanCases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("worksheet %q interrupted: %w", ws.Name, err)
		}
		entry := domain.LoanCaseReport{Name: lc.Name, Input: lc.Input}
		result, err := e.CalculateLoan(ctx, lc.Input)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Result = &result
		}
		report.Loans = append(report.Loans, entry)
	}

	e.Logger.Infof("worksheet %q: %d tax cases, %d loan cases", ws.Name, len(report.Tax), len(report.Loans))
	return report, nil
}

func (e *Engine) lookup(ctx context.Context, key string, out any) bool {
	if e.Cache == nil {
		return false
	}
	data, ok, err := e.Cache.Get(ctx, key)
	if err != nil {
		e.Logger.Warnf("cache get failed: %v", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		e.Logger.Warnf("cache entry %s unreadable: %v", key, err)
		return false
	}
	return true
}

func (e *Engine) store(ctx context.Context, key string, v any) {
	if e.Cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		e.Logger.Warnf("cache encode failed: %v", err)
		return
	}
	if err := e.Cache.Set(ctx, key, data, e.CacheTTL); err != nil {
		e.Logger.Warnf("cache set failed: %v", err)
	}
}

func regimeFingerprint(r domain.TaxRegime) string {
	data, err := json.Marshal(r)
	if err != nil {
		return r.Name
	}
	return string(data)
}
