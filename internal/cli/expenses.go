package cli

import (
	"context"
	"fmt"

	"github.com/nanatgrail/prodigyspace/internal/models"
)

func expenseID(e models.Expense) string { return e.ID }

func (a *App) expenseCommands() group {
	return group{
		"add":    {usage: "expense add <amount> <description> [cat=...] [date=YYYY-MM-DD]", run: a.expenseAdd},
		"list":   {usage: "expense list", run: a.expenseList},
		"rm":     {usage: "expense rm <id>", run: a.expenseDelete},
		"budget": {usage: "expense budget [<category> <limit>]", run: a.expenseBudget},
		"stats":  {usage: "expense stats", run: a.expenseStats},
	}
}

func (a *App) expenseAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	amountArg, desc := p.first()
	if amountArg == "" {
		return usage("expense add <amount> <description> [cat=...] [date=YYYY-MM-DD]")
	}
	amount, err := atof(amountArg)
	if err != nil {
		return err
	}
	date, err := p.date("date")
	if err != nil {
		return err
	}

	e := models.Expense{
		Amount:      amount,
		Description: desc,
		Category:    models.ExpenseCategory(p.opt("cat", "category")),
	}
	if date != nil {
		e.Date = *date
	}
	e, err = a.reg.Expenses.Add(ctx, e)
	if err != nil {
		return err
	}
	a.done("Added expense %s (%.2f)", shortID(e.ID), e.Amount)
	return nil
}

func (a *App) expenseList(context.Context, []string) error {
	list := a.reg.Expenses.List()
	a.heading(fmt.Sprintf("Expenses (%d)", len(list)))
	for _, e := range list {
		a.printf("%s  %s  %-13s %9.2f  %s\n", shortID(e.ID), dayOf(&e.Date), e.Category, e.Amount, e.Description)
	}
	return nil
}

func (a *App) expenseDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("expense rm <id>")
	}
	id, err := matchID(a.reg.Expenses.List(), expenseID, args[0])
	if err != nil {
		return err
	}
	ok, err := a.reg.Expenses.Delete(ctx, id)
	if err := found(ok, err, "expense", args[0]); err != nil {
		return err
	}
	a.done("Deleted expense %s", shortID(id))
	return nil
}

func (a *App) expenseBudget(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
	case 2:
		limit, err := atof(args[1])
		if err != nil {
			return err
		}
		if err := a.reg.Expenses.UpdateBudget(ctx, models.ExpenseCategory(args[0]), limit); err != nil {
			return err
		}
	default:
		return usage("expense budget [<category> <limit>]")
	}

	a.heading("Budgets")
	for _, b := range a.reg.Expenses.Budgets() {
		line := fmt.Sprintf("  %-13s %9.2f / %9.2f", b.Category, b.Spent, b.Limit)
		if b.Spent > b.Limit {
			line = a.st.warn.Render(line)
		}
		a.printf("%s\n", line)
	}
	return nil
}

func (a *App) expenseStats(context.Context, []string) error {
	s := a.reg.Expenses.Stats()
	a.heading("Expense stats (this month)")
	a.printf("spent %.2f  remaining %.2f\n", s.TotalSpent, s.BudgetRemaining)
	for _, c := range models.ExpenseCategories {
		a.printf("  %-13s %9.2f\n", c, s.CategoryBreakdown[c])
	}
	a.printf("weekly spending (oldest first): %v\n", s.WeeklySpending)
	return nil
}
