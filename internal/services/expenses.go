package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/export"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

var expenseCategoryLabels = map[models.ExpenseCategory]string{
	models.ExpenseFood:          "Food & Dining",
	models.ExpenseTravel:        "Transportation",
	models.ExpenseStudy:         "Study Materials",
	models.ExpenseEntertainment: "Entertainment",
	models.ExpenseHealth:        "Health & Fitness",
	models.ExpenseOther:         "Other",
}

// ExpenseService tracks spending against monthly per-category budgets.
// Budget spend is always derived from the current month's expenses.
type ExpenseService struct {
	expenses *collection.Store[models.Expense, *models.Expense]
	budgets  *collection.Value[[]models.Budget]
	clock    clockwork.Clock
}

func NewExpenseService(d Deps) *ExpenseService {
	d = d.normalize()
	return &ExpenseService{
		expenses: collection.New[models.Expense](d.Backend, models.KeyExpenses, d.storeOptions()...),
		budgets:  collection.NewValue(d.Backend, models.KeyBudgets, models.DefaultBudgets, collection.WithLogger(d.Log)),
		clock:    d.Clock,
	}
}

func (s *ExpenseService) Load(ctx context.Context) error {
	return loadAll(ctx, s.expenses, s.budgets)
}

func (s *ExpenseService) Reload(ctx context.Context) error {
	return reloadAll(ctx, s.expenses, s.budgets)
}

func (s *ExpenseService) Add(ctx context.Context, e models.Expense) (models.Expense, error) {
	if e.Amount <= 0 {
		return models.Expense{}, fmt.Errorf("amount must be positive: %w", common.ErrInvalidInput)
	}
	if e.Category == "" {
		e.Category = models.ExpenseOther
	}
	if e.Date.IsZero() {
		e.Date = codec.NewTimestamp(s.clock.Now())
	}
	return s.expenses.Create(ctx, e)
}

func (s *ExpenseService) Update(ctx context.Context, id string, fn func(*models.Expense)) (bool, error) {
	return s.expenses.Update(ctx, id, fn)
}

func (s *ExpenseService) Delete(ctx context.Context, id string) (bool, error) {
	return s.expenses.Delete(ctx, id)
}

// List returns expenses newest date first.
func (s *ExpenseService) List() []models.Expense {
	items := newestFirst(s.expenses.Items())
	slices.SortStableFunc(items, func(a, b models.Expense) int {
		return b.Date.Compare(a.Date.Time)
	})
	return items
}

// UpdateBudget sets the monthly limit for category, adding the category if
// it has no budget yet.
func (s *ExpenseService) UpdateBudget(ctx context.Context, category models.ExpenseCategory, limit float64) error {
	if limit < 0 {
		return fmt.Errorf("budget limit must not be negative: %w", common.ErrInvalidInput)
	}
	return s.budgets.Update(ctx, func(bs *[]models.Budget) {
		next := slices.Clone(*bs)
		if i := slices.IndexFunc(next, func(b models.Budget) bool { return b.Category == category }); i >= 0 {
			next[i].Limit = limit
		} else {
			next = append(next, models.Budget{Category: category, Limit: limit})
		}
		*bs = next
	})
}

func (s *ExpenseService) monthly(now time.Time) []models.Expense {
	return aggregate.Filter(s.expenses.Items(), func(e models.Expense) bool {
		return aggregate.SameMonth(e.Date.Time, now)
	})
}

func expenseCategory(e models.Expense) models.ExpenseCategory { return e.Category }
func expenseAmount(e models.Expense) float64                  { return e.Amount }

// Budgets returns the budgets with Spent filled in for the current month.
func (s *ExpenseService) Budgets() []models.Budget {
	spent := aggregate.SumBy(s.monthly(s.clock.Now()), expenseCategory, expenseAmount, models.ExpenseCategories)
	out := slices.Clone(s.budgets.Get())
	for i := range out {
		out[i].Spent = spent[out[i].Category]
	}
	return out
}

// Stats covers the current calendar month, except WeeklySpending which holds
// the seven trailing weeks, oldest first.
func (s *ExpenseService) Stats() models.ExpenseStats {
	now := s.clock.Now()
	monthly := s.monthly(now)

	total := aggregate.Sum(monthly, expenseAmount)
	limits := aggregate.Sum(s.budgets.Get(), func(b models.Budget) float64 { return b.Limit })

	return models.ExpenseStats{
		TotalSpent:        total,
		BudgetRemaining:   limits - total,
		CategoryBreakdown: aggregate.SumBy(monthly, expenseCategory, expenseAmount, models.ExpenseCategories),
		WeeklySpending: aggregate.WindowSums(s.expenses.Items(), now, week, 7,
			func(e models.Expense) time.Time { return e.Date.Time }, expenseAmount),
	}
}

func (s *ExpenseService) CSV() export.Table {
	t := export.Table{Headers: []string{"Date", "Category", "Description", "Amount"}}
	for _, e := range s.List() {
		t.Rows = append(t.Rows, []string{
			e.Date.Format(time.DateOnly),
			label(expenseCategoryLabels, e.Category),
			e.Description,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
		})
	}
	return t
}
