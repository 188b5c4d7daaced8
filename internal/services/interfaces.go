package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"famfinance/internal/models"
	"famfinance/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name string, categoryType models.TransactionType, description, color string) (*models.Category, error)
	GetUserCategories(userID uint, categoryType *models.TransactionType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name, description, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// FamilyMemberServicer defines the contract for family member business logic.
type FamilyMemberServicer interface {
	CreateFamilyMember(userID uint, name, relationship string) (*models.FamilyMember, error)
	GetUserFamilyMembers(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error)
	GetFamilyMemberByID(userID, memberID uint) (*models.FamilyMember, error)
	UpdateFamilyMember(userID, memberID uint, name, relationship string) (*models.FamilyMember, error)
	DeleteFamilyMember(userID, memberID uint) error
}

// DestinationServicer defines the contract for destination business logic.
type DestinationServicer interface {
	CreateDestination(userID uint, name, description string) (*models.Destination, error)
	GetUserDestinations(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Destination], error)
	GetDestinationByID(userID, destinationID uint) (*models.Destination, error)
	UpdateDestination(userID, destinationID uint, name, description string) (*models.Destination, error)
	DeleteDestination(userID, destinationID uint) error
}

// SaveTransactionInput is a create-or-update submission. A non-nil ID selects
// the update path; otherwise the submission is created, and expanded into a
// monthly series when Recurring is set and Installments is not 1.
type SaveTransactionInput struct {
	ID             *uint
	UserID         uint
	FamilyMemberID uint
	DestinationID  uint
	CategoryID     uint
	PaymentMethod  string
	Amount         decimal.Decimal
	Date           time.Time
	Notes          string
	Recurring      bool
	Installments   int
}

// SaveResult reports the rows written by Save.
type SaveResult struct {
	Transactions []models.Transaction
	GroupID      *string
	Updated      bool
}

// IDs returns the ids of the saved rows in insertion order.
func (r *SaveResult) IDs() []uint {
	ids := make([]uint, len(r.Transactions))
	for i := range r.Transactions {
		ids[i] = r.Transactions[i].ID
	}
	return ids
}

// DeleteScope selects how much of a series a deletion removes.
type DeleteScope string

const (
	DeleteScopeThisOnly      DeleteScope = "apenas_esta"
	DeleteScopeThisAndFuture DeleteScope = "esta_e_futuras"
)

// Valid reports whether s is a known scope.
func (s DeleteScope) Valid() bool {
	return s == DeleteScopeThisOnly || s == DeleteScopeThisAndFuture
}

// DeleteResult reports what a scoped deletion removed.
type DeleteResult struct {
	Deleted int64
	Scope   DeleteScope
	UserID  uint
	GroupID *string
	From    *time.Time
	// NoSeries is set when esta_e_futuras was requested for a row that
	// belongs to no series, so only that row was removed.
	NoSeries bool
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate       *time.Time
	ToDate         *time.Time
	CategoryID     *uint
	FamilyMemberID *uint
	DestinationID  *uint
	GroupID        *string
	PaymentMethod  *string
	Search         *string
}

// TransactionServicer defines the contract for expense and income business logic.
type TransactionServicer interface {
	Save(txType models.TransactionType, input SaveTransactionInput) (*SaveResult, error)
	GetTransactionByID(userID uint, txType models.TransactionType, transactionID uint) (*models.Transaction, error)
	GetUserTransactions(userID uint, txType models.TransactionType, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetSeries(userID uint, txType models.TransactionType, groupID string) ([]models.Transaction, error)
	Delete(txType models.TransactionType, transactionID uint, scope DeleteScope, from *time.Time) (*DeleteResult, error)
}

// ExportServicer renders transaction lists as spreadsheets.
type ExportServicer interface {
	ExportTransactions(userID uint, txType models.TransactionType, filter TransactionFilter, w io.Writer) (int, error)
}

// CategoryTotal is the sum of one category's transactions in a period.
type CategoryTotal struct {
	CategoryID uint            `json:"categoria_id"`
	Name       string          `json:"nome"`
	Total      decimal.Decimal `json:"total"`
}

// FamilyMemberTotal is the sum of one family member's transactions in a period.
type FamilyMemberTotal struct {
	FamilyMemberID uint            `json:"familiar_id"`
	Name           string          `json:"nome"`
	Total          decimal.Decimal `json:"total"`
}

// MonthlyTotal holds expense and income sums for one month of a year.
type MonthlyTotal struct {
	Month    int             `json:"mes"`
	Expenses decimal.Decimal `json:"despesas"`
	Incomes  decimal.Decimal `json:"receitas"`
}

// DashboardSummary feeds the dashboard charts for one month.
type DashboardSummary struct {
	Year                   int                 `json:"ano"`
	Month                  int                 `json:"mes"`
	TotalExpenses          decimal.Decimal     `json:"total_despesas"`
	TotalIncomes           decimal.Decimal     `json:"total_receitas"`
	Balance                decimal.Decimal     `json:"saldo"`
	ExpensesByCategory     []CategoryTotal     `json:"despesas_por_categoria"`
	ExpensesByFamilyMember []FamilyMemberTotal `json:"despesas_por_familiar"`
	Monthly                []MonthlyTotal      `json:"mensal"`
}

// DashboardServicer defines the contract for dashboard aggregates.
type DashboardServicer interface {
	GetSummary(userID uint, year, month int) (*DashboardSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
