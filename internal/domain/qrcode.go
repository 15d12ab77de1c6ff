package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ShortIDLength is the fixed length of public short identifiers.
const ShortIDLength = 6

// QRCode is a trackable code owned by a user. The short identifier is the
// public token embedded in the redirect URL and never changes once assigned;
// the destination URL and rendering settings may be overwritten in place.
type QRCode struct {
	ID          int64          `gorm:"primaryKey;column:id" json:"id"`
	UserID      int64          `gorm:"column:user_id;not null;index:idx_qr_codes_user_name,unique,priority:1" json:"user_id"`
	Name        string         `gorm:"column:name;not null;index:idx_qr_codes_user_name,unique,priority:2" json:"name"`
	URL         string         `gorm:"column:url;not null" json:"url"`
	ShortID     string         `gorm:"column:short_id;uniqueIndex;not null;size:16" json:"short_id"`
	QRImageData string         `gorm:"column:qr_image_data;type:text" json:"qr_image_data,omitempty"`
	Settings    datatypes.JSON `gorm:"column:settings" json:"settings,omitempty"` // opaque rendering blob
	ScanCount   int64          `gorm:"column:scan_count;not null;default:0" json:"scan_count"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ScanEvents []ScanEvent `gorm:"foreignKey:QRCodeID;constraint:OnDelete:CASCADE" json:"scan_events,omitempty"`
}

// TableName returns the table name for GORM
func (QRCode) TableName() string {
	return "qr_codes"
}
