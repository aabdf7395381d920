package services

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/export"
	"github.com/nanatgrail/prodigyspace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenses_StatsScenario(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewExpenseService)

	_, err := s.Add(f.ctx, models.Expense{Amount: 50, Category: models.ExpenseFood, Date: codec.NewTimestamp(t0.Add(-time.Hour))})
	require.NoError(t, err)
	_, err = s.Add(f.ctx, models.Expense{Amount: 30, Category: models.ExpenseFood, Date: codec.NewTimestamp(t0.AddDate(0, -1, 0))})
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 50.0, st.TotalSpent)
	assert.Equal(t, 50.0, st.CategoryBreakdown[models.ExpenseFood])
	assert.Len(t, st.CategoryBreakdown, len(models.ExpenseCategories))
	assert.Equal(t, 800.0-50, st.BudgetRemaining)
	require.Len(t, st.WeeklySpending, 7)
	assert.Equal(t, 50.0, st.WeeklySpending[6])
}

func TestExpenses_AddValidation(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewExpenseService)

	_, err := s.Add(f.ctx, models.Expense{Amount: 0})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	e, err := s.Add(f.ctx, models.Expense{Amount: 4.2})
	require.NoError(t, err)
	assert.Equal(t, models.ExpenseOther, e.Category)
	assert.Equal(t, t0, e.Date.Time)
}

func TestExpenses_BudgetsDeriveSpent(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewExpenseService)

	assert.Equal(t, models.DefaultBudgets(), s.Budgets())

	_, err := s.Add(f.ctx, models.Expense{Amount: 20, Category: models.ExpenseStudy, Date: codec.NewTimestamp(t0)})
	require.NoError(t, err)
	_, err = s.Add(f.ctx, models.Expense{Amount: 99, Category: models.ExpenseStudy, Date: codec.NewTimestamp(t0.AddDate(0, -2, 0))})
	require.NoError(t, err)

	require.NoError(t, s.UpdateBudget(f.ctx, models.ExpenseStudy, 200))
	require.NoError(t, s.UpdateBudget(f.ctx, "books", 40))
	assert.ErrorIs(t, s.UpdateBudget(f.ctx, models.ExpenseFood, -1), common.ErrInvalidInput)

	budgets := s.Budgets()
	require.Len(t, budgets, 7)
	assert.Equal(t, models.Budget{Category: models.ExpenseStudy, Limit: 200, Spent: 20}, budgets[2])
	assert.Equal(t, models.Budget{Category: "books", Limit: 40}, budgets[6])

	// spent is never stored
	var stored []map[string]any
	require.True(t, f.mgr.GetItem(f.ctx, models.KeyBudgets, &stored))
	for _, b := range stored {
		assert.NotContains(t, b, "spent")
	}

	again := load(t, f, NewExpenseService)
	assert.Equal(t, budgets, again.Budgets())
}

func TestExpenses_ListAndCSV(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewExpenseService)

	_, err := s.Add(f.ctx, models.Expense{Amount: 12.5, Category: models.ExpenseTravel, Description: "bus", Date: codec.NewTimestamp(t0.AddDate(0, 0, -1))})
	require.NoError(t, err)
	_, err = s.Add(f.ctx, models.Expense{Amount: 3, Category: models.ExpenseFood, Description: `"coffee"`, Date: codec.NewTimestamp(t0)})
	require.NoError(t, err)
	_, err = s.Add(f.ctx, models.Expense{Amount: 7, Category: models.ExpenseHealth, Description: "old", Date: codec.NewTimestamp(t0.AddDate(0, 0, -5))})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, s.CSV()))
	assert.Equal(t,
		"Date,Category,Description,Amount\n"+
			"2024-05-15,Food & Dining,\"\"\"coffee\"\"\",3\n"+
			"2024-05-14,Transportation,bus,12.5\n"+
			"2024-05-10,Health & Fitness,old,7\n",
		buf.String())
}

func TestExpenses_WeeklyWindows(t *testing.T) {
	f := newFixture(t)
	s := load(t, f, NewExpenseService)

	for _, daysAgo := range []int{1, 10, 48, 60} {
		_, err := s.Add(f.ctx, models.Expense{Amount: 1, Date: codec.NewTimestamp(t0.Add(-time.Duration(daysAgo) * 24 * time.Hour))})
		require.NoError(t, err)
	}
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 1, 1}, s.Stats().WeeklySpending)
}

func TestBudgetJSONShape(t *testing.T) {
	b, err := json.Marshal(models.Budget{Category: models.ExpenseFood, Limit: 10, Spent: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"food","limit":10}`, string(b))
}
