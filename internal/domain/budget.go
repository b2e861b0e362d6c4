package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus buckets a category's usage percentage.
type BudgetStatus string

const (
	BudgetOK       BudgetStatus = "ok"
	BudgetWatch    BudgetStatus = "watch"
	BudgetWarning  BudgetStatus = "warning"
	BudgetExceeded BudgetStatus = "exceeded"
)

// BudgetCategory is one spending limit owned by a user.
type BudgetCategory struct {
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	Icon           string          `json:"icon"`
	Limit          decimal.Decimal `json:"limit"`
	Spent          decimal.Decimal `json:"spent"`
	DurationMonths int             `json:"duration_months"`
	StartedAt      time.Time       `json:"started_at"`
}

// CategoryUsage is a category with its derived progress figures.
type CategoryUsage struct {
	BudgetCategory
	UsagePercent    decimal.Decimal `json:"usage_percent"`
	Remaining       decimal.Decimal `json:"remaining"`
	Status          BudgetStatus    `json:"status"`
	PeriodEnd       time.Time       `json:"period_end"`
	MonthsRemaining int             `json:"months_remaining"`
}

type BudgetSummary struct {
	Owner               string          `json:"owner"`
	TotalBudget         decimal.Decimal `json:"total_budget"`
	TotalSpent          decimal.Decimal `json:"total_spent"`
	OverallUsagePercent decimal.Decimal `json:"overall_usage_percent"`
	Categories          []CategoryUsage `json:"categories"`
}
