// Package report assembles spending reports and analytics over the
// expense ledger, budget ledger and recurring registry.
package report

import (
	"time"

	"github.com/budget-buddy/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Summary is the header of a report.
type Summary struct {
	GeneratedOn   string          `json:"generatedOn"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Budget        decimal.Decimal `json:"budget"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// CategoryBreakdown is the spending of one category against its limit.
type CategoryBreakdown struct {
	Category models.Category `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
	Budget   decimal.Decimal `json:"budget"`
	Usage    string          `json:"usage"`
}

// Transaction is a single ledger entry in a report.
type Transaction struct {
	Date        string          `json:"date"`
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Recurring is a recurring obligation as listed in a report.
type Recurring struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	Status      string          `json:"status"`
}

// Report is the exportable report shape. It is returned as data by the
// export endpoint and rendered and emailed by the monthly cron.
type Report struct {
	Summary           Summary             `json:"summary"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	Transactions      []Transaction       `json:"transactions"`
	RecurringExpenses []Recurring         `json:"recurringExpenses"`
}

// Build assembles the report for the user over [start, end], filtering
// the ledger by creation timestamp. The recurring rows are passed in by
// the caller: the export endpoint lists everything the user has, the
// monthly cron only the active rows overlapping the period.
func Build(db *gorm.DB, user models.User, start, end time.Time, recurring []models.RecurringExpense) (Report, error) {
	expenses, err := models.ExpensesCreatedBetween(db, user.ID, start, end)
	if err != nil {
		return Report{}, err
	}

	budgets, err := models.CategoryBudgetsForUser(db, user.ID)
	if err != nil {
		return Report{}, err
	}

	totalBudget := user.MonthlyBudget
	if totalBudget.IsZero() {
		for _, b := range budgets {
			totalBudget = totalBudget.Add(b.Limit)
		}
	}

	totalExpenses := models.SumExpenses(expenses)

	spentByCategory := models.TotalsByCategory(expenses)
	breakdown := make([]CategoryBreakdown, 0, len(budgets))
	for _, b := range budgets {
		breakdown = append(breakdown, CategoryBreakdown{
			Category: b.Name,
			Spent:    spentByCategory[b.Name],
			Budget:   b.Limit,
			Usage:    usage(spentByCategory[b.Name], b.Limit),
		})
	}

	transactions := make([]Transaction, 0, len(expenses))
	for _, e := range expenses {
		transactions = append(transactions, Transaction{
			Date:        e.CreatedAt.Format("2006-01-02"),
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
		})
	}

	recurringFormatted := make([]Recurring, 0, len(recurring))
	for _, r := range recurring {
		recurringFormatted = append(recurringFormatted, Recurring{
			Category:    "Bills",
			Description: r.Title,
			Amount:      r.Amount,
			Frequency:   string(r.Frequency),
			Status:      string(r.Status),
		})
	}

	return Report{
		Summary: Summary{
			GeneratedOn:   time.Now().In(time.UTC).Format("2006-01-02"),
			TotalExpenses: totalExpenses,
			Budget:        totalBudget,
			Remaining:     totalBudget.Sub(totalExpenses),
		},
		CategoryBreakdown: breakdown,
		Transactions:      transactions,
		RecurringExpenses: recurringFormatted,
	}, nil
}

// usage formats spent against limit as a percentage with one decimal.
// A zero limit always reads "0.0%".
func usage(spent, limit decimal.Decimal) string {
	if limit.IsZero() {
		return "0.0%"
	}

	return spent.Div(limit).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
