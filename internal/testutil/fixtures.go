package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"famfinance/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns the calendar date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestUser creates a user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	user := &models.User{
		Name:  fmt.Sprintf("User %d", n),
		Email: fmt.Sprintf("user%d@test.com", n),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, categoryType models.TransactionType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestFamilyMember creates a family member for the user.
func CreateTestFamilyMember(t *testing.T, db *gorm.DB, userID uint) *models.FamilyMember {
	t.Helper()

	member := &models.FamilyMember{
		UserID:       userID,
		Name:         fmt.Sprintf("Familiar %d", nextID()),
		Relationship: "filho(a)",
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test family member: %v", err)
	}
	return member
}

// CreateTestDestination creates a destination for the user.
func CreateTestDestination(t *testing.T, db *gorm.DB, userID uint) *models.Destination {
	t.Helper()

	dest := &models.Destination{
		UserID: userID,
		Name:   fmt.Sprintf("Destino %d", nextID()),
	}
	if err := db.Create(dest).Error; err != nil {
		t.Fatalf("failed to create test destination: %v", err)
	}
	return dest
}

// CreateTestTransaction inserts a single non-recurring row of the given type.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:        userID,
		Type:          txType,
		PaymentMethod: "pix",
		Amount:        decimal.RequireFromString(amount),
		Date:          date,
		Installments:  1,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestSeries inserts rows sharing groupID, one per date, bypassing the
// generator so deletion tests control the exact layout.
func CreateTestSeries(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, groupID string, dates ...time.Time) []models.Transaction {
	t.Helper()

	rows := make([]models.Transaction, 0, len(dates))
	for i, d := range dates {
		gid := groupID
		rows = append(rows, models.Transaction{
			UserID:        userID,
			Type:          txType,
			PaymentMethod: "boleto",
			Amount:        decimal.NewFromInt(100),
			Date:          d,
			Notes:         fmt.Sprintf("(Parcela %d de %d)", i+1, len(dates)),
			Recurring:     true,
			Installments:  len(dates),
			GroupID:       &gid,
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("failed to create test series: %v", err)
	}
	return rows
}
