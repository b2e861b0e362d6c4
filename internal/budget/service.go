// Package budget tracks per-owner spending limits.
package budget

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/finadvisor/finadvisor/pkg/dateutil"
	money "github.com/finadvisor/finadvisor/pkg/decimal"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	DefaultIcon     = "💰"
	MinDuration     = 1
	MaxDuration     = 12
	defaultDuration = 1
)

var (
	hundred        = decimal.NewFromInt(100)
	watchAt        = decimal.NewFromInt(50)
	warningAt      = decimal.NewFromInt(75)
	exceededAt     = decimal.NewFromInt(100)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// AddRequest describes a new category. A zero duration means one month.
type AddRequest struct {
	Name           string
	Icon           string
	Limit          decimal.Decimal
	DurationMonths int
}

// UpdateRequest changes a category's limit and duration. A zero duration
// keeps the current one.
type UpdateRequest struct {
	Limit          decimal.Decimal
	DurationMonths int
}

// Service applies the budget rules on top of a Store.
type Service struct {
	store Store
	now   func() time.Time

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// SetClock replaces the time source. A nil clock restores time.Now.
func (s *Service) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// CategoryKey derives the storage key: lower case with whitespace runs replaced by "_".
func CategoryKey(name string) string {
	return whitespaceRuns.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// DefaultCategories is the starter set given to a new owner.
func DefaultCategories(startedAt time.Time) []domain.BudgetCategory {
	seed := []struct {
		key, name, icon string
		limit, spent    int64
	}{
		{"food", "Food & Dining", "🍽️", 15000, 8500},
		{"shopping", "Shopping", "🛍️", 10000, 6200},
		{"transport", "Transportation", "🚗", 8000, 4800},
		{"entertainment", "Entertainment", "🎬", 5000, 2100},
	}
	cats := make([]domain.BudgetCategory, 0, len(seed))
	for _, c := range seed {
		cats = append(cats, domain.BudgetCategory{
			Key:            c.key,
			Name:           c.name,
			Icon:           c.icon,
			Limit:          decimal.NewFromInt(c.limit),
			Spent:          decimal.NewFromInt(c.spent),
			DurationMonths: defaultDuration,
			StartedAt:      startedAt,
		})
	}
	return cats
}

// Categories returns the owner's categories, seeding the defaults on first use.
func (s *Service) Categories(ctx context.Context, owner string) ([]domain.BudgetCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, owner)
}

// Add creates a category with nothing spent.
func (s *Service) Add(ctx context.Context, owner string, req AddRequest) (domain.BudgetCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.BudgetCategory{}, ErrInvalidName
	}
	if req.Limit.IsNegative() {
		return domain.BudgetCategory{}, ErrInvalidLimit
	}
	duration := req.DurationMonths
	if duration == 0 {
		duration = defaultDuration
	}
	if err := validateDuration(duration); err != nil {
		return domain.BudgetCategory{}, err
	}
	icon := strings.TrimSpace(req.Icon)
	if icon == "" {
		icon = DefaultIcon
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cats, err := s.load(ctx, owner)
	if err != nil {
		return domain.BudgetCategory{}, err
	}
	key := CategoryKey(name)
	if _, _, ok := lo.FindIndexOf(cats, func(c domain.BudgetCategory) bool { return c.Key == key }); ok {
		return domain.BudgetCategory{}, fmt.Errorf("%w: %s", ErrDuplicate, key)
	}

	cat := domain.BudgetCategory{
		Key:            key,
		Name:           name,
		Icon:           icon,
		Limit:          req.Limit,
		Spent:          decimal.Zero,
		DurationMonths: duration,
		StartedAt:      s.now().UTC(),
	}
	if err := s.store.Save(ctx, owner, append(cats, cat)); err != nil {
		return domain.BudgetCategory{}, err
	}
	return cat, nil
}

// Update changes the limit and duration of an existing category.
func (s *Service) Update(ctx context.Context, owner, key string, req UpdateRequest) (domain.BudgetCategory, error) {
	if req.Limit.IsNegative() {
		return domain.BudgetCategory{}, ErrInvalidLimit
	}
	if req.DurationMonths != 0 {
		if err := validateDuration(req.DurationMonths); err != nil {
			return domain.BudgetCategory{}, err
		}
	}
	return s.modify(ctx, owner, key, func(c *domain.BudgetCategory) {
		c.Limit = req.Limit
		if req.DurationMonths != 0 {
			c.DurationMonths = req.DurationMonths
		}
	})
}

// RecordSpend adjusts the spent amount by delta, never going below zero.
func (s *Service) RecordSpend(ctx context.Context, owner, key string, delta decimal.Decimal) (domain.BudgetCategory, error) {
	return s.modify(ctx, owner, key, func(c *domain.BudgetCategory) {
		spent := money.NewMoneyFromDecimal(c.Spent).Add(money.NewMoneyFromDecimal(delta))
		if spent.IsNegative() {
			spent = money.Zero()
		}
		c.Spent = spent.Decimal
	})
}

// Delete removes a category. The last remaining category cannot be deleted.
func (s *Service) Delete(ctx context.Context, owner, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cats, err := s.load(ctx, owner)
	if err != nil {
		return err
	}
	_, idx, ok := lo.FindIndexOf(cats, func(c domain.BudgetCategory) bool { return c.Key == key })
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if len(cats) <= 1 {
		return ErrLastCategory
	}
	return s.store.Save(ctx, owner, append(cats[:idx:idx], cats[idx+1:]...))
}

// Summary computes totals and per-category progress.
func (s *Service) Summary(ctx context.Context, owner string) (domain.BudgetSummary, error) {
	cats, err := s.Categories(ctx, owner)
	if err != nil {
		return domain.BudgetSummary{}, err
	}
	return Summarize(owner, cats, s.now()), nil
}

// Summarize derives the summary of a category list at a point in time.
func Summarize(owner string, cats []domain.BudgetCategory, at time.Time) domain.BudgetSummary {
	totalBudget := lo.Reduce(cats, func(acc money.Money, c domain.BudgetCategory, _ int) money.Money {
		return acc.Add(money.NewMoneyFromDecimal(c.Limit))
	}, money.Zero()).Round().Decimal
	totalSpent := lo.Reduce(cats, func(acc money.Money, c domain.BudgetCategory, _ int) money.Money {
		return acc.Add(money.NewMoneyFromDecimal(c.Spent))
	}, money.Zero()).Round().Decimal

	return domain.BudgetSummary{
		Owner:               owner,
		TotalBudget:         totalBudget,
		TotalSpent:          totalSpent,
		OverallUsagePercent: percentOf(totalSpent, totalBudget),
		Categories: lo.Map(cats, func(c domain.BudgetCategory, _ int) domain.CategoryUsage {
			return Usage(c, at)
		}),
	}
}

// Usage derives the progress figures of one category.
func Usage(c domain.BudgetCategory, at time.Time) domain.CategoryUsage {
	pct := percentOf(c.Spent, c.Limit)
	end := dateutil.PeriodEnd(c.StartedAt, c.DurationMonths)
	return domain.CategoryUsage{
		BudgetCategory:  c,
		UsagePercent:    pct,
		Remaining:       money.NewMoneyFromDecimal(c.Limit).Sub(money.NewMoneyFromDecimal(c.Spent)).Round().Decimal,
		Status:          StatusFor(pct),
		PeriodEnd:       end,
		MonthsRemaining: dateutil.MonthsRemaining(at, end),
	}
}

// StatusFor buckets a usage percentage.
func StatusFor(pct decimal.Decimal) domain.BudgetStatus {
	switch {
	case pct.GreaterThanOrEqual(exceededAt):
		return domain.BudgetExceeded
	case pct.GreaterThanOrEqual(warningAt):
		return domain.BudgetWarning
	case pct.GreaterThanOrEqual(watchAt):
		return domain.BudgetWatch
	default:
		return domain.BudgetOK
	}
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func validateDuration(months int) error {
	if months < MinDuration || months > MaxDuration {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, months)
	}
	return nil
}

func (s *Service) modify(ctx context.Context, owner, key string, apply func(*domain.BudgetCategory)) (domain.BudgetCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cats, err := s.load(ctx, owner)
	if err != nil {
		return domain.BudgetCategory{}, err
	}
	_, idx, ok := lo.FindIndexOf(cats, func(c domain.BudgetCategory) bool { return c.Key == key })
	if !ok {
		return domain.BudgetCategory{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	apply(&cats[idx])
	if err := s.store.Save(ctx, owner, cats); err != nil {
		return domain.BudgetCategory{}, err
	}
	return cats[idx], nil
}

// load must be called with mu held.
func (s *Service) load(ctx context.Context, owner string) ([]domain.BudgetCategory, error) {
	cats, found, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if found {
		return cats, nil
	}
	cats = DefaultCategories(dateutil.BeginningOfMonth(s.now().UTC()))
	if err := s.store.Save(ctx, owner, cats); err != nil {
		return nil, err
	}
	return cats, nil
}
