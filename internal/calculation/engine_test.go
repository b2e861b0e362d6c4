package calculation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finadvisor/finadvisor/internal/cache"
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	*cache.MemoryCache
	gets, sets int
	failGet    bool
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	if c.failGet {
		return nil, false, errors.New("cache offline")
	}
	return c.MemoryCache.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.sets++
	return c.MemoryCache.Set(ctx, key, value, ttl)
}

func TestEngineCachesTaxResults(t *testing.T) {
	ctx := context.Background()
	c := &countingCache{MemoryCache: cache.NewMemoryCache()}
	engine := NewEngine().WithCache(c, 0)
	assert.Equal(t, DefaultCacheTTL, engine.CacheTTL)

	in := domain.TaxCalculationInput{AnnualIncome: d(800000), AgeBracket: domain.AgeUnder60}
	first := engine.CalculateTax(ctx, in)
	second := engine.CalculateTax(ctx, in)

	assert.Equal(t, 1, c.sets)
	assert.Equal(t, 2, c.gets)
	assert.True(t, first.TaxLiability.Equal(second.TaxLiability))
	assert.True(t, first.NetIncome.Equal(second.NetIncome))
	assert.Len(t, second.Slabs, 2)
}

func TestEngineSameValueDifferentScaleSharesKey(t *testing.T) {
	ctx := context.Background()
	c := &countingCache{MemoryCache: cache.NewMemoryCache()}
	engine := NewEngine().WithCache(c, time.Minute)

	engine.CalculateTax(ctx, domain.TaxCalculationInput{AnnualIncome: decimal.RequireFromString("800000.00")})
	engine.CalculateTax(ctx, domain.TaxCalculationInput{AnnualIncome: d(800000), AgeBracket: domain.AgeUnder60})
	assert.Equal(t, 1, c.sets)
}

func TestEngineCacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	c := &countingCache{MemoryCache: cache.NewMemoryCache(), failGet: true}
	engine := NewEngine().WithCache(c, time.Minute)

	result := engine.CalculateTax(ctx, domain.TaxCalculationInput{AnnualIncome: d(800000)})
	assert.True(t, d(75400).Equal(result.TaxLiability))

	loan, err := engine.CalculateLoan(ctx, domain.LoanInput{Principal: 2500000, AnnualRatePercent: 8.5, TenureYears: 20})
	require.NoError(t, err)
	assert.Equal(t, 21696.0, loan.Installment)
}

func TestEngineDoesNotCacheRejectedLoans(t *testing.T) {
	ctx := context.Background()
	c := &countingCache{MemoryCache: cache.NewMemoryCache()}
	engine := NewEngine().WithCache(c, time.Minute)

	_, err := engine.CalculateLoan(ctx, domain.LoanInput{Principal: 0, AnnualRatePercent: 8.5, TenureYears: 20})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, c.sets)

	in := domain.LoanInput{Principal: 2500000, AnnualRatePercent: 8.5, TenureYears: 20}
	first, err := engine.CalculateLoan(ctx, in)
	require.NoError(t, err)
	second, err := engine.CalculateLoan(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.sets)
}

func TestRunWorksheet(t *testing.T) {
	engine := NewEngine()
	engine.now = func() time.Time { return time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC) }

	ws := &domain.Worksheet{
		Name: "household",
		TaxCases: []domain.TaxCase{
			{Name: "salary", Input: domain.TaxCalculationInput{AnnualIncome: d(800000), AgeBracket: domain.AgeUnder60}},
			{Name: "pension", Input: domain.TaxCalculationInput{AnnualIncome: d(800000), AgeBracket: domain.Age60To80}},
		},
		LoanCases: []domain.LoanCase{
			{Name: "house", Input: domain.LoanInput{LoanType: domain.LoanHome, Principal: 2500000, AnnualRatePercent: 8.5, TenureYears: 20}},
			{Name: "broken", Input: domain.LoanInput{LoanType: domain.LoanCar, Principal: 500000, AnnualRatePercent: 0, TenureYears: 5}},
		},
	}

	report, err := engine.RunWorksheet(context.Background(), ws)
	require.NoError(t, err)

	assert.Equal(t, "household", report.Name)
	assert.Equal(t, "FY2023-24 old regime", report.Regime)
	assert.Equal(t, time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC), report.GeneratedAt)
	require.Len(t, report.Tax, 2)
	assert.True(t, d(75400).Equal(report.Tax[0].Result.TaxLiability))
	assert.True(t, d(72800).Equal(report.Tax[1].Result.TaxLiability))

	require.Len(t, report.Loans, 2)
	require.NotNil(t, report.Loans[0].Result)
	assert.Equal(t, 21696.0, report.Loans[0].Result.Installment)
	assert.Nil(t, report.Loans[1].Result)
	assert.Contains(t, report.Loans[1].Error, "interest rate must be positive")
}

func TestRunWorksheetHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().RunWorksheet(ctx, &domain.Worksheet{
		Name:     "cancelled",
		TaxCases: []domain.TaxCase{{Name: "x"}},
	})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewEngine().RunWorksheet(context.Background(), nil)
	assert.Error(t, err)
}

type recordingLogger struct {
	NopLogger
	warnings int
}

func (r *recordingLogger) Warnf(string, ...any) { r.warnings++ }

func TestEngineLogsCacheFailures(t *testing.T) {
	logger := &recordingLogger{}
	engine := NewEngine().WithCache(&countingCache{MemoryCache: cache.NewMemoryCache(), failGet: true}, 0)
	engine.SetLogger(logger)

	engine.CalculateTax(context.Background(), domain.TaxCalculationInput{})
	assert.Equal(t, 1, logger.warnings)

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
