package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanInstallment(t *testing.T) {
	calculator := NewAmortizationCalculator()

	tests := []struct {
		name          string
		input         domain.LoanInput
		installment   float64
		totalPayable  float64
		totalInterest float64
	}{
		{
			name:          "Home loan worked example",
			input:         domain.LoanInput{LoanType: domain.LoanHome, Principal: 2500000, AnnualRatePercent: 8.5, TenureYears: 20},
			installment:   21696,
			totalPayable:  5206939, // unrounded installment times 240 months
			totalInterest: 2706939,
		},
		{
			name:          "Personal loan two years",
			input:         domain.LoanInput{LoanType: domain.LoanPersonal, Principal: 10000, AnnualRatePercent: 12, TenureYears: 2},
			installment:   471,
			totalPayable:  11298,
			totalInterest: 1298,
		},
		{
			name:          "One year at ten percent",
			input:         domain.LoanInput{LoanType: domain.LoanCar, Principal: 100000, AnnualRatePercent: 10, TenureYears: 1},
			installment:   8792,
			totalPayable:  105499,
			totalInterest: 5499,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calculator.Calculate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.installment, result.Installment)
			assert.Equal(t, tt.totalPayable, result.TotalPayable)
			assert.Equal(t, tt.totalInterest, result.TotalInterest)
			assert.Equal(t, tt.input.Principal, result.Principal)
			assert.Equal(t, tt.input.LoanType, result.LoanType)
		})
	}
}

func TestLoanWorkedExampleExactFigures(t *testing.T) {
	result, err := NewAmortizationCalculator().Calculate(domain.LoanInput{
		Principal: 2500000, AnnualRatePercent: 8.5, TenureYears: 20,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.0070833, result.MonthlyRate, 1e-7)
	assert.Equal(t, 240.0, result.Periods)
	assert.InDelta(t, 21695.580834138353, result.ExactInstallment, 1e-6)
	assert.Equal(t, math.Round(result.ExactInstallment*result.Periods), result.TotalPayable)
	assert.Equal(t, math.Round(result.ExactInstallment*result.Periods-result.Principal), result.TotalInterest)
}

func TestLoanPrincipalEchoIsUnrounded(t *testing.T) {
	result, err := NewAmortizationCalculator().Calculate(domain.LoanInput{
		Principal: 123456.78, AnnualRatePercent: 9.1, TenureYears: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 123456.78, result.Principal)
	assert.Equal(t, math.Round(result.Installment), result.Installment)
}

func TestLoanRejectsDegenerateInput(t *testing.T) {
	calculator := NewAmortizationCalculator()

	tests := []struct {
		name  string
		input domain.LoanInput
	}{
		{"Zero principal", domain.LoanInput{Principal: 0, AnnualRatePercent: 8.5, TenureYears: 20}},
		{"Zero rate", domain.LoanInput{Principal: 2500000, AnnualRatePercent: 0, TenureYears: 20}},
		{"Zero tenure", domain.LoanInput{Principal: 2500000, AnnualRatePercent: 8.5, TenureYears: 0}},
		{"Negative principal", domain.LoanInput{Principal: -1, AnnualRatePercent: 8.5, TenureYears: 20}},
		{"Negative rate", domain.LoanInput{Principal: 1000, AnnualRatePercent: -2, TenureYears: 20}},
		{"NaN tenure", domain.LoanInput{Principal: 1000, AnnualRatePercent: 8, TenureYears: math.NaN()}},
		{"Infinite principal", domain.LoanInput{Principal: math.Inf(1), AnnualRatePercent: 8, TenureYears: 1}},
		{"Rate too small to represent", domain.LoanInput{Principal: 1000, AnnualRatePercent: 1e-18, TenureYears: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calculator.Calculate(tt.input)
			assert.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
			assert.Equal(t, domain.LoanResult{}, result)
		})
	}
}

func TestLoanIsIdempotent(t *testing.T) {
	calculator := NewAmortizationCalculator()
	in := domain.LoanInput{Principal: 750000, AnnualRatePercent: 10.75, TenureYears: 5}

	first, err := calculator.Calculate(in)
	require.NoError(t, err)
	second, err := calculator.Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoanSchedule(t *testing.T) {
	schedule, err := NewAmortizationCalculator().Schedule(domain.LoanInput{
		Principal: 100000, AnnualRatePercent: 10, TenureYears: 1,
	})
	require.NoError(t, err)
	require.Len(t, schedule.Rows, 12)

	first := schedule.Rows[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 833.33, first.Interest)
	assert.InDelta(t, 8791.59, first.Payment, 0.001)

	last := schedule.Rows[len(schedule.Rows)-1]
	assert.Equal(t, 12, last.Month)
	assert.Equal(t, 0.0, last.Balance)

	var principal float64
	for _, row := range schedule.Rows {
		principal += row.Principal
	}
	assert.InDelta(t, 100000, principal, 0.1)
}

func TestLoanScheduleRejectsInvalidInput(t *testing.T) {
	_, err := NewAmortizationCalculator().Schedule(domain.LoanInput{Principal: 1000})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
