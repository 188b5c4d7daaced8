package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes expenses from incomes. Categories share it.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "despesa"
	TransactionTypeIncome  TransactionType = "receita"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction is one ledger occurrence: a single expense or income, or one
// installment of a recurring series. Installments of a series share GroupID.
type Transaction struct {
	Base
	UserID         uint            `gorm:"not null;index" json:"usuario_id"`
	Type           TransactionType `gorm:"size:10;not null;index" json:"tipo"`
	FamilyMemberID uint            `gorm:"not null;index" json:"familiar_id"`
	DestinationID  uint            `gorm:"not null;index" json:"destino_id"`
	CategoryID     uint            `gorm:"not null;index" json:"categoria_id"`
	PaymentMethod  string          `gorm:"size:50;not null" json:"forma_pagamento"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor"`
	Date           time.Time       `gorm:"type:date;not null;index" json:"data"`
	Notes          string          `gorm:"type:text" json:"observacoes"`
	Recurring      bool            `gorm:"not null;default:false" json:"recorrente"`
	Installments   int             `gorm:"not null;default:1" json:"parcelas"`
	GroupID        *string         `gorm:"size:36;index" json:"grupo_recorrencia,omitempty"`
}

// InSeries reports whether the row belongs to a recurring group.
func (t *Transaction) InSeries() bool {
	return t.GroupID != nil && *t.GroupID != ""
}
