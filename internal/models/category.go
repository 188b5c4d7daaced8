package models

// Category groups expenses or incomes. Its Type must match the type of the
// transactions filed under it.
type Category struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"usuario_id"`
	Name        string          `gorm:"size:100;not null" json:"nome"`
	Type        TransactionType `gorm:"size:10;not null" json:"tipo"`
	Description string          `json:"descricao"`
	Color       string          `gorm:"size:7" json:"cor"`
}
