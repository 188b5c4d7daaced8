package models

// Destination ("destino") is the vendor, payee or source on the other side
// of a transaction.
type Destination struct {
	Base
	UserID      uint   `gorm:"not null;index" json:"usuario_id"`
	Name        string `gorm:"size:120;not null" json:"nome"`
	Description string `json:"descricao"`
}
