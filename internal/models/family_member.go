package models

// FamilyMember ("familiar") is the person who spent or received money.
type FamilyMember struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"usuario_id"`
	Name         string `gorm:"size:120;not null" json:"nome"`
	Relationship string `gorm:"size:50" json:"parentesco"`
}
