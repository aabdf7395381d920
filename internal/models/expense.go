package models

import (
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/collection"
)

type ExpenseCategory string

const (
	ExpenseFood          ExpenseCategory = "food"
	ExpenseTravel        ExpenseCategory = "travel"
	ExpenseStudy         ExpenseCategory = "study"
	ExpenseEntertainment ExpenseCategory = "entertainment"
	ExpenseHealth        ExpenseCategory = "health"
	ExpenseOther         ExpenseCategory = "other"
)

var ExpenseCategories = []ExpenseCategory{
	ExpenseFood, ExpenseTravel, ExpenseStudy, ExpenseEntertainment, ExpenseHealth, ExpenseOther,
}

type Expense struct {
	collection.Meta
	Amount      float64         `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Date        codec.Timestamp `json:"date"`
}

// Budget is a monthly limit for one category. Spent is derived from the
// current month's expenses and never stored.
type Budget struct {
	Category ExpenseCategory `json:"category"`
	Limit    float64         `json:"limit"`
	Spent    float64         `json:"-"`
}

// DefaultBudgets is the budget set used until the user changes one.
func DefaultBudgets() []Budget {
	return []Budget{
		{Category: ExpenseFood, Limit: 300},
		{Category: ExpenseTravel, Limit: 100},
		{Category: ExpenseStudy, Limit: 150},
		{Category: ExpenseEntertainment, Limit: 100},
		{Category: ExpenseHealth, Limit: 50},
		{Category: ExpenseOther, Limit: 100},
	}
}

type ExpenseStats struct {
	TotalSpent        float64                     `json:"totalSpent"`
	BudgetRemaining   float64                     `json:"budgetRemaining"`
	CategoryBreakdown map[ExpenseCategory]float64 `json:"categoryBreakdown"`
	WeeklySpending    []float64                   `json:"weeklySpending"`
}
