package services

import (
	"testing"

	"famfinance/internal/models"
	"famfinance/internal/testutil"
)

func TestGetSummary(t *testing.T) {
	t.Run("month_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db)
		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)
		school := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)

		link := func(tx *models.Transaction, categoryID uint) {
			t.Helper()
			if err := db.Model(tx).Update("category_id", categoryID).Error; err != nil {
				t.Fatalf("failed to link category: %v", err)
			}
		}
		link(testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "100", testutil.Date(2024, 3, 1)), food.ID)
		link(testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "50", testutil.Date(2024, 3, 31)), food.ID)
		link(testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "300", testutil.Date(2024, 3, 15)), school.ID)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "1000", testutil.Date(2024, 3, 5))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "70", testutil.Date(2024, 4, 1))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "999", testutil.Date(2023, 3, 1))

		summary, err := svc.GetSummary(user.ID, 2024, 3)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, summary.TotalExpenses, "450")
		testutil.AssertDecimal(t, summary.TotalIncomes, "1000")
		testutil.AssertDecimal(t, summary.Balance, "550")

		if len(summary.ExpensesByCategory) != 2 {
			t.Fatalf("expected 2 category buckets, got %d", len(summary.ExpensesByCategory))
		}
		top := summary.ExpensesByCategory[0]
		if top.CategoryID != school.ID || top.Name != school.Name {
			t.Errorf("expected school first, got %+v", top)
		}
		testutil.AssertDecimal(t, top.Total, "300")

		if len(summary.Monthly) != 12 {
			t.Fatalf("expected 12 months, got %d", len(summary.Monthly))
		}
		testutil.AssertDecimal(t, summary.Monthly[3].Expenses, "70")
		testutil.AssertDecimal(t, summary.Monthly[0].Expenses, "0")
	})

	t.Run("deleted_rows_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "100", testutil.Date(2024, 3, 1))
		if err := db.Delete(tx).Error; err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		summary, err := svc.GetSummary(user.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, summary.TotalExpenses, "0")
		if len(summary.ExpensesByCategory) != 0 {
			t.Errorf("expected no category buckets, got %d", len(summary.ExpensesByCategory))
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db)

		_, err := svc.GetSummary(1, 2024, 13)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
