package output

import (
	"testing"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeReport(t *testing.T) {
	report := &domain.WorksheetReport{
		Tax: []domain.TaxCaseReport{
			{Name: "a", Result: domain.TaxCalculationResult{GrossIncome: decimal.NewFromInt(800000), TaxLiability: decimal.NewFromInt(75400), NetIncome: decimal.NewFromInt(724600), EffectiveRatePercent: decimal.RequireFromString("9.425")}},
			{Name: "b", Result: domain.TaxCalculationResult{GrossIncome: decimal.NewFromInt(200000), NetIncome: decimal.NewFromInt(200000)}},
		},
		Loans: []domain.LoanCaseReport{
			{Name: "house", Result: &domain.LoanResult{Installment: 21696, TotalInterest: 2706939}},
			{Name: "small", Result: &domain.LoanResult{Installment: 471, TotalInterest: 1298}},
			{Name: "bad", Error: "invalid loan input"},
		},
	}

	s := AnalyzeReport(report)
	assert.True(t, decimal.NewFromInt(1000000).Equal(s.TotalGrossIncome))
	assert.True(t, decimal.NewFromInt(75400).Equal(s.TotalTaxLiability))
	assert.True(t, decimal.NewFromInt(924600).Equal(s.TotalNetIncome))
	assert.Equal(t, "a", s.HighestRateCase)
	assert.Equal(t, 2, s.AcceptedLoans)
	assert.Equal(t, 1, s.RejectedLoans)
	assert.Equal(t, 22167.0, s.TotalMonthlyOutgoing)
	assert.Equal(t, 2708237.0, s.TotalInterest)
	assert.Equal(t, "house", s.CostliestLoan)
}

func TestAnalyzeReportEmpty(t *testing.T) {
	s := AnalyzeReport(&domain.WorksheetReport{})
	assert.True(t, s.TotalGrossIncome.IsZero())
	assert.Empty(t, s.HighestRateCase)
	assert.Empty(t, s.CostliestLoan)
	assert.Zero(t, AnalyzeReport(nil).AcceptedLoans)
}

func TestGenerateAssumptions(t *testing.T) {
	assert.Equal(t, DefaultAssumptions, GenerateAssumptions(domain.TaxRegime{}))
	assert.Contains(t, DefaultAssumptions[0], "₹2,50,000.00 (below 60)")
	assert.Contains(t, DefaultAssumptions[2], "5% up to ₹5,00,000.00, 20% on the next ₹5,00,000.00, 30% above")
	assert.Contains(t, DefaultAssumptions[3], "4% of tax")
	assert.Contains(t, DefaultAssumptions[5], "₹5,00,000.00 less the basic exemption")
}
