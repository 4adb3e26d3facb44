package services

import (
	"strings"
	"time"

	"uangsaku/internal/models"
)

// Summary aggregates the whole transaction collection.
type Summary struct {
	Balance    float64              `json:"balance"`
	Income     float64              `json:"income"`
	Expense    float64              `json:"expense"`
	Categories map[string]float64   `json:"categories"`
	Monthly    []models.Transaction `json:"monthly"`
}

// CashflowPoint is one day of net cash flow.
type CashflowPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// MonthlyPoint is one month of income versus expense.
type MonthlyPoint struct {
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// analyticsService derives read-only aggregates from transaction listings.
// It assumes well-formed records and does not validate them.
type analyticsService struct {
	transactions TransactionServicer
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(transactions TransactionServicer) AnalyticsServicer {
	return &analyticsService{transactions: transactions}
}

// Summarize computes total income, expense, balance, expense totals per
// category, and the slice of current-month records.
func (s *analyticsService) Summarize() (*Summary, error) {
	items, err := s.transactions.List(TransactionFilter{})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Categories: map[string]float64{},
		Monthly:    []models.Transaction{},
	}
	month := time.Now().UTC().Format("2006-01")

	for _, item := range items {
		switch item.Type {
		case models.TransactionTypeIncome:
			summary.Income += item.Amount
		case models.TransactionTypeExpense:
			summary.Expense += item.Amount
			summary.Categories[item.Category] += item.Amount
		}
		if strings.HasPrefix(item.Date, month) {
			summary.Monthly = append(summary.Monthly, item)
		}
	}
	summary.Balance = summary.Income - summary.Expense
	return summary, nil
}

// DailyCashflow returns net cash flow for the last days calendar dates,
// oldest first. Dates with no transactions stay at zero.
func (s *analyticsService) DailyCashflow(days int) ([]CashflowPoint, error) {
	items, err := s.transactions.List(TransactionFilter{})
	if err != nil {
		return nil, err
	}
	return dailyCashflow(items, days, time.Now().UTC()), nil
}

// MonthlyComparison returns income and expense for the last months calendar
// months, oldest first.
func (s *analyticsService) MonthlyComparison(months int) ([]MonthlyPoint, error) {
	items, err := s.transactions.List(TransactionFilter{})
	if err != nil {
		return nil, err
	}
	return monthlyComparison(items, months, time.Now().UTC()), nil
}

// CategoryTotalsCurrentMonth sums this month's expenses per category.
func (s *analyticsService) CategoryTotalsCurrentMonth() (map[string]float64, error) {
	items, err := s.transactions.List(TransactionFilter{})
	if err != nil {
		return nil, err
	}

	month := time.Now().UTC().Format("2006-01")
	totals := map[string]float64{}
	for _, item := range items {
		if item.Type == models.TransactionTypeExpense && strings.HasPrefix(item.Date, month) {
			totals[item.Category] += item.Amount
		}
	}
	return totals, nil
}

func dailyCashflow(items []models.Transaction, days int, now time.Time) []CashflowPoint {
	points := make([]CashflowPoint, 0, days)
	index := make(map[string]int, days)
	for i := days - 1; i >= 0; i-- {
		label := now.AddDate(0, 0, -i).Format("2006-01-02")
		index[label] = len(points)
		points = append(points, CashflowPoint{Label: label})
	}

	for _, item := range items {
		pos, ok := index[item.Date]
		if !ok {
			continue
		}
		if item.Type == models.TransactionTypeIncome {
			points[pos].Value += item.Amount
		} else {
			points[pos].Value -= item.Amount
		}
	}
	return points
}

func monthlyComparison(items []models.Transaction, months int, now time.Time) []MonthlyPoint {
	points := make([]MonthlyPoint, 0, months)
	index := make(map[string]int, months)
	for i := months - 1; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		label := first.Format("2006-01")
		index[label] = len(points)
		points = append(points, MonthlyPoint{Label: label})
	}

	for _, item := range items {
		if len(item.Date) < 7 {
			continue
		}
		pos, ok := index[item.Date[:7]]
		if !ok {
			continue
		}
		switch item.Type {
		case models.TransactionTypeIncome:
			points[pos].Income += item.Amount
		case models.TransactionTypeExpense:
			points[pos].Expense += item.Amount
		}
	}
	return points
}
