package report

import (
	"errors"
	"sort"
	"time"

	"github.com/budget-buddy/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNoData is returned when no expenses fall into the requested range.
var ErrNoData = errors.New("no report data found for the given period")

// CategoryAmount is one slice of the spending-by-category breakdown.
type CategoryAmount struct {
	Category models.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// DailyAmount is the spending total of one calendar day.
type DailyAmount struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Insights are the aggregate figures of an analytics report.
type Insights struct {
	HighestExpense    decimal.Decimal `json:"highestExpense"`
	AverageDaily      decimal.Decimal `json:"averageDaily"`
	TotalTransactions int             `json:"totalTransactions"`
	RecurringTotal    decimal.Decimal `json:"recurringTotal"`
}

// Analytics is the spending analytics over a date range, across all
// users.
type Analytics struct {
	SpendingByCategory []CategoryAmount `json:"spendingByCategory"`
	DailySpendingTrend []DailyAmount    `json:"dailySpendingTrend"`
	Insights           Insights         `json:"insights"`
}

// BuildAnalytics computes the analytics over [start, end], filtered on
// the record creation timestamp (not the user-supplied expense date).
// It returns ErrNoData when the range contains no expenses.
func BuildAnalytics(db *gorm.DB, start, end time.Time) (Analytics, error) {
	expenses, err := models.ExpensesCreatedBetween(db, 0, start, end)
	if err != nil {
		return Analytics{}, err
	}

	if len(expenses) == 0 {
		return Analytics{}, ErrNoData
	}

	byCategory := models.TotalsByCategory(expenses)
	spendingByCategory := make([]CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		spendingByCategory = append(spendingByCategory, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(spendingByCategory, func(i, j int) bool {
		return spendingByCategory[i].Category < spendingByCategory[j].Category
	})

	byDay := make(map[string]decimal.Decimal)
	highest := decimal.Zero
	total := decimal.Zero
	for _, e := range expenses {
		day := e.CreatedAt.Format("2006-01-02")
		byDay[day] = byDay[day].Add(e.Amount)

		total = total.Add(e.Amount)
		if e.Amount.GreaterThan(highest) {
			highest = e.Amount
		}
	}

	dailyTrend := make([]DailyAmount, 0, len(byDay))
	for day, amount := range byDay {
		dailyTrend = append(dailyTrend, DailyAmount{Date: day, Amount: amount})
	}
	sort.Slice(dailyTrend, func(i, j int) bool {
		return dailyTrend[i].Date < dailyTrend[j].Date
	})

	// Days in range, both bounds inclusive
	days := end.Sub(start).Hours()/24 + 1
	averageDaily := total.Div(decimal.NewFromFloat(days)).Round(0)

	recurring, err := models.OverlappingActiveRecurring(db, 0, start, end)
	if err != nil {
		return Analytics{}, err
	}

	recurringTotal := decimal.Zero
	for _, r := range recurring {
		recurringTotal = recurringTotal.Add(r.Amount)
	}

	return Analytics{
		SpendingByCategory: spendingByCategory,
		DailySpendingTrend: dailyTrend,
		Insights: Insights{
			HighestExpense:    highest,
			AverageDaily:      averageDaily,
			TotalTransactions: len(expenses),
			RecurringTotal:    recurringTotal,
		},
	}, nil
}
