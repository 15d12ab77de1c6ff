package repository

import (
	"QRTrack-Backend/internal/domain"
	"context"
	"errors"
)

var (
	ErrCodeNotFound  = errors.New("qr code not found")
	ErrShortIDExists = errors.New("short id already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
)

// Storage is the persistence contract for the service. Implementations must
// make IncrementScanCount atomic: concurrent scans of the same code may not
// lose updates, and no application-level lock is held across storage calls.
type Storage interface {
	// User methods
	CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)

	// QR code methods
	CreateQRCode(ctx context.Context, code *domain.QRCode) error
	UpdateQRCode(ctx context.Context, code *domain.QRCode) error
	GetQRCodeByShortID(ctx context.Context, shortID string) (*domain.QRCode, error)
	GetQRCodeByOwnerAndName(ctx context.Context, userID int64, name string) (*domain.QRCode, error)
	GetQRCodeByOwnerAndID(ctx context.Context, userID, id int64) (*domain.QRCode, error)
	ListUserQRCodes(ctx context.Context, userID int64) ([]*domain.QRCode, error)
	DeleteQRCode(ctx context.Context, userID, id int64) error // cascades to scan events
	ShortIDExists(ctx context.Context, shortID string) (bool, error)
	IncrementScanCount(ctx context.Context, codeID int64) error

	// Scan event methods (append-only log)
	AppendScanEvent(ctx context.Context, event *domain.ScanEvent) error
	ListScanEvents(ctx context.Context, codeID int64) ([]*domain.ScanEvent, error)
}
