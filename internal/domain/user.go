package domain

import "time"

// User is an account that owns QR codes. Persisted codes always reference a
// user; anonymous generation only exists client-side before login.
type User struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"id"`
	Username     string    `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	QRCodes []QRCode `gorm:"foreignKey:UserID" json:"qr_codes,omitempty"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}
