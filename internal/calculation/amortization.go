package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/finadvisor/finadvisor/internal/domain"
)

// ErrInvalidInput is returned when a loan's principal, rate or tenure is not
// a positive finite number.
var ErrInvalidInput = errors.New("invalid loan input")

// InvalidInputMessage is the user-facing text shown when a loan is rejected.
const InvalidInputMessage = "Please enter valid values for all fields"

// AmortizationCalculator computes fixed monthly installments (EMI).
type AmortizationCalculator struct{}

// NewAmortizationCalculator creates a new amortization calculator
func NewAmortizationCalculator() *AmortizationCalculator {
	return &AmortizationCalculator{}
}

// Calculate returns the installment, total payable and total interest for a
// loan. Figures are computed in float64 and rounded to whole rupees; the
// principal is echoed back unrounded.
func (c *AmortizationCalculator) Calculate(input domain.LoanInput) (domain.LoanResult, error) {
	if err := validateLoan(input); err != nil {
		return domain.LoanResult{}, err
	}

	monthlyRate := input.AnnualRatePercent / 12 / 100
	periods := input.TenureYears * 12
	growth := math.Pow(1+monthlyRate, periods)
	if growth-1 <= 0 || math.IsInf(growth, 0) {
		return domain.LoanResult{}, fmt.Errorf("%w: rate %.6g over %.6g months is degenerate", ErrInvalidInput, monthlyRate, periods)
	}

	installment := input.Principal * monthlyRate * growth / (growth - 1)
	totalPayable := installment * periods
	totalInterest := totalPayable - input.Principal
	if !isFinite(installment) || !isFinite(totalPayable) {
		return domain.LoanResult{}, fmt.Errorf("%w: installment is not finite", ErrInvalidInput)
	}

	return domain.LoanResult{
		LoanType:         input.LoanType,
		Principal:        input.Principal,
		MonthlyRate:      monthlyRate,
		Periods:          periods,
		ExactInstallment: installment,
		Installment:      math.Round(installment),
		TotalPayable:     math.Round(totalPayable),
		TotalInterest:    math.Round(totalInterest),
	}, nil
}

// Schedule produces the month-by-month amortization table. A fractional
// final period is paid as one whole month.
func (c *AmortizationCalculator) Schedule(input domain.LoanInput) (domain.AmortizationSchedule, error) {
	loan, err := c.Calculate(input)
	if err != nil {
		return domain.AmortizationSchedule{}, err
	}

	months := int(math.Ceil(loan.Periods - 1e-9))
	rows := make([]domain.AmortizationRow, 0, months)
	balance := loan.Principal
	for m := 1; m <= months && balance > 0; m++ {
		interest := balance * loan.MonthlyRate
		payment := loan.ExactInstallment
		if m == months || payment > balance+interest {
			payment = balance + interest
		}
		principalPaid := payment - interest
		balance -= principalPaid
		if balance < 0.005 {
			balance = 0
		}
		rows = append(rows, domain.AmortizationRow{
			Month:     m,
			Payment:   roundTo2Decimals(payment),
			Interest:  roundTo2Decimals(interest),
			Principal: roundTo2Decimals(principalPaid),
			Balance:   roundTo2Decimals(balance),
		})
	}

	return domain.AmortizationSchedule{Loan: loan, Rows: rows}, nil
}

func validateLoan(input domain.LoanInput) error {
	switch {
	case !(input.Principal > 0) || math.IsInf(input.Principal, 0):
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, input.Principal)
	case !(input.AnnualRatePercent > 0) || math.IsInf(input.AnnualRatePercent, 0):
		return fmt.Errorf("%w: interest rate must be positive, got %v", ErrInvalidInput, input.AnnualRatePercent)
	case !(input.TenureYears > 0) || math.IsInf(input.TenureYears, 0):
		return fmt.Errorf("%w: tenure must be positive, got %v", ErrInvalidInput, input.TenureYears)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// roundTo2Decimals rounds a float64 to paise
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}
