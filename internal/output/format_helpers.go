package output

import (
	money "github.com/finadvisor/finadvisor/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatRupees formats a decimal as rupees with Indian digit grouping and 2 decimals.
func FormatRupees(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatRupeeUnits formats a whole-rupee figure such as an installment.
func FormatRupeeUnits(amount float64) string {
	return money.NewMoney(amount).FormatUnits()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }
