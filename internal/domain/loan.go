package domain

import "strings"

// LoanType is informational; it selects bank offers but never changes the
// installment arithmetic.
type LoanType string

const (
	LoanHome     LoanType = "home"
	LoanPersonal LoanType = "personal"
	LoanCar      LoanType = "car"
	LoanOther    LoanType = "other"
)

// ParseLoanType defaults to LoanHome, matching the estimator form.
func ParseLoanType(s string) LoanType {
	switch LoanType(strings.ToLower(strings.TrimSpace(s))) {
	case LoanPersonal:
		return LoanPersonal
	case LoanCar:
		return LoanCar
	case LoanOther:
		return LoanOther
	default:
		return LoanHome
	}
}

// LoanInput is the coerced loan estimator form. Tenure is in years and the
// rate is an annual percentage.
type LoanInput struct {
	LoanType          LoanType `json:"loan_type" yaml:"loan_type"`
	Principal         float64  `json:"principal" yaml:"principal"`
	AnnualRatePercent float64  `json:"annual_rate_percent" yaml:"annual_rate_percent"`
	TenureYears       float64  `json:"tenure_years" yaml:"tenure_years"`
}

// LoanResult carries installment figures rounded to whole rupees. Principal is
// echoed back unrounded.
type LoanResult struct {
	LoanType         LoanType `json:"loan_type"`
	Principal        float64  `json:"principal"`
	MonthlyRate      float64  `json:"monthly_rate"`
	Periods          float64  `json:"periods"`
	ExactInstallment float64  `json:"exact_installment"`
	Installment      float64  `json:"installment"`
	TotalPayable     float64  `json:"total_payable"`
	TotalInterest    float64  `json:"total_interest"`
}

// AmortizationRow is one month of an amortization schedule.
type AmortizationRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// AmortizationSchedule is a loan result with its monthly rows.
type AmortizationSchedule struct {
	Loan LoanResult        `json:"loan"`
	Rows []AmortizationRow `json:"rows"`
}

// BankOffer is a lender's advertised rate band for one loan type.
type BankOffer struct {
	Bank     string   `json:"bank" yaml:"bank"`
	LoanType LoanType `json:"loan_type" yaml:"loan_type"`
	MinRate  float64  `json:"min_rate" yaml:"min_rate"`
	MaxRate  float64  `json:"max_rate" yaml:"max_rate"`
	Features []string `json:"features" yaml:"features"`
}
