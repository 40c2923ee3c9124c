package services

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"homeledger/internal/config"
	"homeledger/internal/models"
	"homeledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// uncategorizedLabel names the synthetic breakdown row for transactions
// without a category.
const uncategorizedLabel = "Uncategorized"

// aggregatorService implements AggregatorServiceInterface
type aggregatorService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	budgetRepo      repositories.BudgetRepositoryInterface
	engineConfig    config.EngineConfig
	logger          *slog.Logger
}

// NewAggregatorService creates an aggregator service
func NewAggregatorService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	engineConfig config.EngineConfig,
	logger *slog.Logger,
) AggregatorServiceInterface {
	return &aggregatorService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		budgetRepo:      budgetRepo,
		engineConfig:    engineConfig,
		logger:          logger,
	}
}

// Summarize aggregates one calendar month of transactions across the selected
// accounts. A pure read; repeated calls over unchanged data return the same
// summary.
func (s *aggregatorService) Summarize(accountIDs []uuid.UUID, year int, month time.Month) (*models.CashFlowSummary, error) {
	start, end := models.MonthBounds(year, month)
	transactions, err := s.transactionRepo.GetByAccountsAndDateRange(accountIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := &models.CashFlowSummary{
		Year:         year,
		Month:        month,
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
		Net:          decimal.Zero,
		GeneratedAt:  time.Now(),
	}

	type bucket struct {
		id    *uuid.UUID
		net   decimal.Decimal
		count int
	}
	buckets := make(map[uuid.UUID]*bucket)
	uncategorized := &bucket{net: decimal.Zero}

	for i := range transactions {
		t := &transactions[i]

		if t.CategoryID == nil {
			summary.UncategorizedCount++
			if !s.engineConfig.IncludeUncategorized {
				continue
			}
			uncategorized.net = uncategorized.net.Add(t.Amount)
			uncategorized.count++
		} else {
			b, ok := buckets[*t.CategoryID]
			if !ok {
				id := *t.CategoryID
				b = &bucket{id: &id, net: decimal.Zero}
				buckets[id] = b
			}
			b.net = b.net.Add(t.Amount)
			b.count++
		}

		if t.IsIncome() {
			summary.IncomeTotal = summary.IncomeTotal.Add(t.Amount)
		} else {
			summary.ExpenseTotal = summary.ExpenseTotal.Add(t.Amount.Abs())
		}
	}

	summary.Net = summary.IncomeTotal.Sub(summary.ExpenseTotal)

	categoryIDs := make([]uuid.UUID, 0, len(buckets))
	for id := range buckets {
		categoryIDs = append(categoryIDs, id)
	}
	categories, err := s.categoryRepo.GetByIDs(categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	rows := make([]models.CategoryFlow, 0, len(buckets)+1)
	for id, b := range buckets {
		rows = append(rows, models.CategoryFlow{
			CategoryID:   b.id,
			CategoryName: categories[id].Name,
			Net:          b.net,
			Count:        b.count,
		})
	}
	if uncategorized.count > 0 {
		rows = append(rows, models.CategoryFlow{
			CategoryName: uncategorizedLabel,
			Net:          uncategorized.net,
			Count:        uncategorized.count,
		})
	}

	// Largest movements first, names as the tie-break
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := rows[i].Net.Abs(), rows[j].Net.Abs()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return rows[i].CategoryName < rows[j].CategoryName
	})
	summary.ByCategory = rows

	return summary, nil
}

// MonthlySeries returns one income/expense pair per calendar month between
// from and to inclusive.
func (s *aggregatorService) MonthlySeries(accountIDs []uuid.UUID, from, to time.Time) ([]models.MonthlyFlow, error) {
	from = models.DateOnly(from)
	to = models.DateOnly(to)
	if from.After(to) {
		return nil, fmt.Errorf("series range end precedes start")
	}

	transactions, err := s.transactionRepo.GetByAccountsAndDateRange(accountIDs,
		time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC), to)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	type monthKey struct {
		year  int
		month time.Month
	}

	var series []models.MonthlyFlow
	index := make(map[monthKey]int)
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(to) {
		index[monthKey{cursor.Year(), cursor.Month()}] = len(series)
		series = append(series, models.MonthlyFlow{
			Year:    cursor.Year(),
			Month:   cursor.Month(),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
		cursor = cursor.AddDate(0, 1, 0)
	}

	for i := range transactions {
		t := &transactions[i]
		pos, ok := index[monthKey{t.Date.Year(), t.Date.Month()}]
		if !ok {
			continue
		}
		if t.IsIncome() {
			series[pos].Income = series[pos].Income.Add(t.Amount)
		} else {
			series[pos].Expense = series[pos].Expense.Add(t.Amount.Abs())
		}
	}

	return series, nil
}

// BudgetReport compares the month's budget targets against actual expense
// totals per category. Only expenses count toward a budget; income in a
// budgeted category leaves Spent untouched.
func (s *aggregatorService) BudgetReport(accountIDs []uuid.UUID, year int, month time.Month) (*models.BudgetReport, error) {
	budgets, err := s.budgetRepo.GetForMonth(year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	report := &models.BudgetReport{
		Year:        year,
		Month:       month,
		GeneratedAt: time.Now(),
	}
	if len(budgets) == 0 {
		return report, nil
	}

	start, end := models.MonthBounds(year, month)
	transactions, err := s.transactionRepo.GetByAccountsAndDateRange(accountIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	spent := make(map[uuid.UUID]decimal.Decimal)
	for i := range transactions {
		t := &transactions[i]
		if t.CategoryID == nil || !t.IsExpense() {
			continue
		}
		spent[*t.CategoryID] = spent[*t.CategoryID].Add(t.Amount.Abs())
	}

	categoryIDs := make([]uuid.UUID, 0, len(budgets))
	for i := range budgets {
		categoryIDs = append(categoryIDs, budgets[i].CategoryID)
	}
	categories, err := s.categoryRepo.GetByIDs(categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	lines := make([]models.BudgetLine, 0, len(budgets))
	for i := range budgets {
		b := &budgets[i]
		used := spent[b.CategoryID]
		lines = append(lines, models.BudgetLine{
			BudgetID:     b.ID,
			CategoryID:   b.CategoryID,
			CategoryName: categories[b.CategoryID].Name,
			Budgeted:     b.Amount,
			Spent:        used,
			Remaining:    b.Amount.Sub(used),
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].CategoryName < lines[j].CategoryName
	})
	report.Lines = lines

	return report, nil
}
