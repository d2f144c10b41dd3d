package models

// User is an API account. Accounts are created by registration and read by
// login; nothing in this surface updates or deletes them.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:User" json:"role"`
}
