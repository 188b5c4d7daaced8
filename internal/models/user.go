package models

// User owns every other record. There are no credentials: the client sends
// the owner id with each request.
type User struct {
	Base
	Name  string `gorm:"size:120;not null" json:"nome"`
	Email string `gorm:"size:200;uniqueIndex;not null" json:"email"`
}
