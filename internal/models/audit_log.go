package models

// AuditLog records every successful mutation made through the API.
type AuditLog struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"usuario_id"`
	Action       string `gorm:"size:50;not null" json:"acao"`
	ResourceType string `gorm:"size:50;not null" json:"recurso"`
	ResourceID   uint   `json:"recurso_id"`
	IPAddress    string `gorm:"size:64" json:"ip"`
	Changes      string `gorm:"type:text" json:"alteracoes,omitempty"`
}
