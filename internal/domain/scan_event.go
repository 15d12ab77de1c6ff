package domain

import (
	"net"
	"time"
)

// ScanEvent is one immutable record of a redirect traversal. Rows are only
// appended, never updated; they are removed solely by the cascade when the
// owning QR code is deleted.
//
// Location and label columns are nullable on purpose: a failed geo lookup or
// an unclassifiable User-Agent is recorded as absence, never as a zero value
// that could be mistaken for real data.
type ScanEvent struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	QRCodeID  int64     `gorm:"column:qr_code_id;not null;index" json:"qr_code_id"`
	ScannedAt time.Time `gorm:"column:scanned_at;not null;index" json:"scanned_at"` // server-assigned, UTC

	IPAddress *net.IP `gorm:"column:ip_address;type:inet" json:"ip_address,omitempty"`

	// Location, present only when the geo lookup resolved the address.
	Country   *string  `gorm:"column:country;size:64" json:"country,omitempty"`
	Region    *string  `gorm:"column:region;size:64" json:"region,omitempty"`
	City      *string  `gorm:"column:city;size:100" json:"city,omitempty"`
	Latitude  *float64 `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude *float64 `gorm:"column:longitude" json:"longitude,omitempty"`

	// Device classification. The mobile and tablet flags may both be set;
	// aggregation reduces them with a fixed priority.
	Platform  *string `gorm:"column:platform;size:64" json:"platform,omitempty"`
	Browser   *string `gorm:"column:browser;size:64" json:"browser,omitempty"`
	OS        *string `gorm:"column:os;size:64" json:"os,omitempty"`
	IsMobile  bool    `gorm:"column:is_mobile;not null;default:false" json:"is_mobile"`
	IsTablet  bool    `gorm:"column:is_tablet;not null;default:false" json:"is_tablet"`
	IsDesktop bool    `gorm:"column:is_desktop;not null;default:false" json:"is_desktop"`

	Referrer *string `gorm:"column:referrer;size:500" json:"referrer,omitempty"`
}

// TableName returns the table name for GORM
func (ScanEvent) TableName() string {
	return "scan_events"
}

// HasLocation reports whether the geo lookup produced a usable result.
func (e *ScanEvent) HasLocation() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// DeviceLabel reduces the form-factor flags to a single display label using
// the fixed priority mobile > tablet > desktop.
func (e *ScanEvent) DeviceLabel() string {
	switch {
	case e.IsMobile:
		return "Mobile"
	case e.IsTablet:
		return "Tablet"
	case e.IsDesktop:
		return "Desktop"
	default:
		return "Unknown"
	}
}
