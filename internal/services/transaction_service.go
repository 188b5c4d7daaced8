package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "famfinance/internal/errors"
	"famfinance/internal/events"
	"famfinance/internal/logger"
	"famfinance/internal/models"
	"famfinance/internal/pagination"
	"famfinance/internal/recurrence"
	"famfinance/internal/uuid"
)

// transactionSortColumns whitelists the sortable list columns.
var transactionSortColumns = map[string]string{
	"data":       "date",
	"valor":      "amount",
	"created_at": "created_at",
}

// transactionService handles expense and income business logic, including
// recurring series generation and scoped deletion.
type transactionService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewTransactionService creates a new TransactionServicer. A nil publisher
// disables ledger events.
func NewTransactionService(db *gorm.DB, publisher events.Publisher) TransactionServicer {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &transactionService{db: db, publisher: publisher}
}

// Save creates or updates a transaction. Creation of a recurring submission
// writes every installment inside one database transaction.
func (s *transactionService) Save(txType models.TransactionType, input SaveTransactionInput) (*SaveResult, error) {
	if !txType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if err := validateSaveInput(&input); err != nil {
		return nil, err
	}

	if input.ID != nil {
		return s.update(txType, *input.ID, input)
	}
	return s.create(txType, input)
}

func validateSaveInput(in *SaveTransactionInput) error {
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	if in.PaymentMethod == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "campo obrigatório ausente: forma_pagamento")
	}
	if in.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "campo obrigatório ausente: data")
	}
	if in.Amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "valor não pode ser negativo")
	}
	if in.Installments < 0 {
		return apperrors.ErrInvalidInstallments
	}

	y, m, d := in.Date.Date()
	in.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return nil
}

func (s *transactionService) create(txType models.TransactionType, in SaveTransactionInput) (*SaveResult, error) {
	n := 1
	var groupID *string
	if recurrence.IsSeries(in.Recurring, in.Installments) {
		count, err := recurrence.Count(in.Installments)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInstallments, err.Error())
		}
		n = count
		gid := uuid.New()
		groupID = &gid
	}

	rows := make([]models.Transaction, 0, n)
	for _, inst := range recurrence.Expand(in.Date, in.Notes, n) {
		rows = append(rows, models.Transaction{
			UserID:         in.UserID,
			Type:           txType,
			FamilyMemberID: in.FamilyMemberID,
			DestinationID:  in.DestinationID,
			CategoryID:     in.CategoryID,
			PaymentMethod:  in.PaymentMethod,
			Amount:         in.Amount,
			Date:           inst.Date,
			Notes:          inst.Notes,
			Recurring:      in.Recurring,
			Installments:   inst.Total,
			GroupID:        groupID,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &SaveResult{Transactions: rows, GroupID: groupID}

	name := events.TransactionCreated
	if groupID != nil {
		name = events.SeriesCreated
	}
	e := events.New(name, string(txType))
	e.UserID = in.UserID
	e.IDs = result.IDs()
	e.Count = int64(len(rows))
	if groupID != nil {
		e.GroupID = *groupID
	}
	s.publish(e)

	return result, nil
}

// update rewrites one row's fields. It never expands or regroups a series.
func (s *transactionService) update(txType models.TransactionType, id uint, in SaveTransactionInput) (*SaveResult, error) {
	var row models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ? AND type = ?", id, in.UserID, txType).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := map[string]interface{}{
			"family_member_id": in.FamilyMemberID,
			"destination_id":   in.DestinationID,
			"category_id":      in.CategoryID,
			"payment_method":   in.PaymentMethod,
			"amount":           in.Amount,
			"date":             in.Date,
			"notes":            in.Notes,
		}
		if err := tx.Model(&row).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.First(&row, row.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e := events.New(events.TransactionUpdated, string(txType))
	e.UserID = row.UserID
	e.IDs = []uint{row.ID}
	e.Count = 1
	s.publish(e)

	return &SaveResult{Transactions: []models.Transaction{row}, GroupID: row.GroupID, Updated: true}, nil
}

// Delete removes one row, or with esta_e_futuras every row of the same series
// dated on or after from (default: the row's own date). Lookup and deletion
// share one database transaction; nothing deleted means not found.
func (s *transactionService) Delete(txType models.TransactionType, transactionID uint, scope DeleteScope, from *time.Time) (*DeleteResult, error) {
	if !txType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if scope == "" {
		scope = DeleteScopeThisOnly
	}
	if !scope.Valid() {
		return nil, apperrors.ErrInvalidDeleteScope
	}

	result := &DeleteResult{Scope: scope}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var row models.Transaction
		if err := tx.Where("id = ? AND type = ?", transactionID, txType).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result.UserID = row.UserID

		var res *gorm.DB
		if scope == DeleteScopeThisAndFuture && row.InSeries() {
			threshold := row.Date
			if from != nil {
				y, m, d := from.Date()
				threshold = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			}
			result.GroupID = row.GroupID
			result.From = &threshold

			res = tx.Where("group_id = ? AND type = ? AND date >= ?", *row.GroupID, txType, threshold).
				Delete(&models.Transaction{})
		} else {
			result.NoSeries = scope == DeleteScopeThisAndFuture
			res = tx.Delete(&models.Transaction{}, row.ID)
		}

		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTransactionNotFound
		}
		result.Deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	e := events.New(events.TransactionsDeleted, string(txType))
	e.UserID = result.UserID
	e.IDs = []uint{transactionID}
	e.Count = result.Deleted
	if result.GroupID != nil {
		e.GroupID = *result.GroupID
	}
	s.publish(e)

	return result, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID uint, txType models.TransactionType, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ? AND type = ?", transactionID, userID, txType).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of a user's expenses or incomes.
func (s *transactionService) GetUserTransactions(userID uint, txType models.TransactionType, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ? AND type = ?", userID, txType)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order(page.OrderClause(transactionSortColumns, "date DESC")).
		Order("id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSeries returns every live installment of a series in date order.
func (s *transactionService) GetSeries(userID uint, txType models.TransactionType, groupID string) ([]models.Transaction, error) {
	groupID = normalizeGroupID(groupID)

	var rows []models.Transaction
	if err := s.db.Where("user_id = ? AND type = ? AND group_id = ?", userID, txType, groupID).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	return rows, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.FamilyMemberID != nil {
		q = q.Where("family_member_id = ?", *f.FamilyMemberID)
	}
	if f.DestinationID != nil {
		q = q.Where("destination_id = ?", *f.DestinationID)
	}
	if f.GroupID != nil {
		q = q.Where("group_id = ?", normalizeGroupID(*f.GroupID))
	}
	if f.PaymentMethod != nil {
		q = q.Where("payment_method = ?", *f.PaymentMethod)
	}
	if f.Search != nil && *f.Search != "" {
		q = q.Where("LOWER(notes) LIKE ?", "%"+strings.ToLower(*f.Search)+"%")
	}
	return q
}

// normalizeGroupID lowercases well-formed UUIDs; other ids are matched verbatim.
func normalizeGroupID(id string) string {
	if norm, err := uuid.Parse(strings.TrimSpace(id)); err == nil {
		return norm
	}
	return id
}

func (s *transactionService) publish(e events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.publisher.Publish(ctx, e); err != nil {
		logger.Named("events").Warnw("failed to publish ledger event",
			"event", e.Name,
			"type", e.Kind,
			"group_id", e.GroupID,
			"error", err,
		)
	}
}
