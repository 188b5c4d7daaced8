package services

import (
	"testing"

	"famfinance/internal/models"
	"famfinance/internal/pagination"
	"famfinance/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "Mercado", models.TransactionTypeExpense, "Compras do mês", "#FF0000")
		testutil.AssertNoError(t, err)

		if cat.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if cat.Name != "Mercado" {
			t.Errorf("expected name Mercado, got %s", cat.Name)
		}
		if cat.Type != models.TransactionTypeExpense {
			t.Errorf("expected type despesa, got %s", cat.Type)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Escola", models.TransactionTypeExpense, "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "escola", models.TransactionTypeExpense, "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_other_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Aluguel", models.TransactionTypeExpense, "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Aluguel", models.TransactionTypeIncome, "", "")
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, " ", models.TransactionTypeExpense, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Outros", models.TransactionType("x"), "", "")
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})
}

func TestGetUserCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)
	testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)
	testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeIncome)
	testutil.CreateTestCategory(t, db, other.ID, models.TransactionTypeExpense)

	t.Run("all_types", func(t *testing.T) {
		res, err := svc.GetUserCategories(user.ID, nil, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if res.TotalItems != 3 {
			t.Errorf("expected 3 categories, got %d", res.TotalItems)
		}
	})

	t.Run("by_type", func(t *testing.T) {
		income := models.TransactionTypeIncome
		res, err := svc.GetUserCategories(user.ID, &income, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if res.TotalItems != 1 {
			t.Errorf("expected 1 income category, got %d", res.TotalItems)
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)

		updated, err := svc.UpdateCategory(user.ID, cat.ID, "Saúde", "", "#00FF00")
		testutil.AssertNoError(t, err)
		if updated.Name != "Saúde" || updated.Color != "#00FF00" {
			t.Errorf("unexpected category after update: %+v", updated)
		}
	})

	t.Run("rename_to_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		a := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)
		b := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)

		_, err := svc.UpdateCategory(user.ID, b.ID, a.Name, "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.UpdateCategory(1, 99999, "x", "", "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("unused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, cat.ID))

		_, err := svc.GetCategoryByID(user.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.TransactionTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10", testutil.Date(2024, 1, 1))
		if err := db.Model(tx).Update("category_id", cat.ID).Error; err != nil {
			t.Fatalf("failed to link transaction: %v", err)
		}

		err := svc.DeleteCategory(user.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, owner.ID, models.TransactionTypeExpense)

		err := svc.DeleteCategory(other.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
