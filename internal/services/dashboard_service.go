package services

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "famfinance/internal/errors"
	"famfinance/internal/models"
)

type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db}
}

// GetSummary aggregates one month of a user's ledger plus the per-month
// totals of the whole year. The three queries run concurrently.
func (s *dashboardService) GetSummary(userID uint, year, month int) (*DashboardSummary, error) {
	if year < 1900 || year > 9999 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "ano inválido")
	}
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "mês inválido")
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	summary := &DashboardSummary{
		Year:                   year,
		Month:                  month,
		ExpensesByCategory:     []CategoryTotal{},
		ExpensesByFamilyMember: []FamilyMemberTotal{},
	}

	var g errgroup.Group

	g.Go(func() error {
		return s.db.Model(&models.Transaction{}).
			Select("transactions.category_id AS category_id, COALESCE(categories.name, '') AS name, SUM(transactions.amount) AS total").
			Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
			Where("transactions.user_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date < ?",
				userID, models.TransactionTypeExpense, monthStart, monthEnd).
			Group("transactions.category_id, categories.name").
			Order("total DESC").
			Scan(&summary.ExpensesByCategory).Error
	})

	g.Go(func() error {
		return s.db.Model(&models.Transaction{}).
			Select("transactions.family_member_id AS family_member_id, COALESCE(family_members.name, '') AS name, SUM(transactions.amount) AS total").
			Joins("LEFT JOIN family_members ON family_members.id = transactions.family_member_id").
			Where("transactions.user_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date < ?",
				userID, models.TransactionTypeExpense, monthStart, monthEnd).
			Group("transactions.family_member_id, family_members.name").
			Order("total DESC").
			Scan(&summary.ExpensesByFamilyMember).Error
	})

	var yearRows []models.Transaction
	g.Go(func() error {
		return s.db.Select("type", "date", "amount").
			Where("user_id = ? AND date >= ? AND date < ?", userID, yearStart, yearEnd).
			Find(&yearRows).Error
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary.Monthly = monthlyTotals(yearRows)
	current := summary.Monthly[month-1]
	summary.TotalExpenses = current.Expenses
	summary.TotalIncomes = current.Incomes
	summary.Balance = current.Incomes.Sub(current.Expenses)

	return summary, nil
}

// monthlyTotals buckets rows into twelve months. Summing in Go keeps the
// month extraction independent of the SQL dialect.
func monthlyTotals(rows []models.Transaction) []MonthlyTotal {
	out := make([]MonthlyTotal, 12)
	for i := range out {
		out[i] = MonthlyTotal{Month: i + 1, Expenses: decimal.Zero, Incomes: decimal.Zero}
	}
	for _, r := range rows {
		m := &out[int(r.Date.Month())-1]
		switch r.Type {
		case models.TransactionTypeExpense:
			m.Expenses = m.Expenses.Add(r.Amount)
		case models.TransactionTypeIncome:
			m.Incomes = m.Incomes.Add(r.Amount)
		}
	}
	return out
}
