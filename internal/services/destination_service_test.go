package services

import (
	"testing"

	"famfinance/internal/models"
	"famfinance/internal/pagination"
	"famfinance/internal/testutil"
)

func TestDestinationService(t *testing.T) {
	t.Run("create_get_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDestinationService(db)
		user := testutil.CreateTestUser(t, db)

		dest, err := svc.CreateDestination(user.ID, "Supermercado", "bairro")
		testutil.AssertNoError(t, err)

		got, err := svc.GetDestinationByID(user.ID, dest.ID)
		testutil.AssertNoError(t, err)
		if got.Name != "Supermercado" {
			t.Errorf("expected name Supermercado, got %s", got.Name)
		}

		updated, err := svc.UpdateDestination(user.ID, dest.ID, "Feira", "")
		testutil.AssertNoError(t, err)
		if updated.Name != "Feira" || updated.Description != "bairro" {
			t.Errorf("unexpected destination after update: %+v", updated)
		}
	})

	t.Run("list_scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDestinationService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestDestination(t, db, user.ID)
		testutil.CreateTestDestination(t, db, other.ID)

		res, err := svc.GetUserDestinations(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if res.TotalItems != 1 {
			t.Errorf("expected 1 destination, got %d", res.TotalItems)
		}
	})

	t.Run("delete_in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDestinationService(db)
		user := testutil.CreateTestUser(t, db)
		dest := testutil.CreateTestDestination(t, db, user.ID)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "10", testutil.Date(2024, 1, 1))
		if err := db.Model(tx).Update("destination_id", dest.ID).Error; err != nil {
			t.Fatalf("failed to link transaction: %v", err)
		}

		testutil.AssertAppError(t, svc.DeleteDestination(user.ID, dest.ID), "DESTINATION_IN_USE")
	})

	t.Run("delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDestinationService(db)
		user := testutil.CreateTestUser(t, db)
		dest := testutil.CreateTestDestination(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteDestination(user.ID, dest.ID))
		_, err := svc.GetDestinationByID(user.ID, dest.ID)
		testutil.AssertAppError(t, err, "DESTINATION_NOT_FOUND")
	})
}
