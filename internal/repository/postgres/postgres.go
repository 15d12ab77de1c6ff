package postgres

import (
	"QRTrack-Backend/internal/domain"
	"QRTrack-Backend/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresStorage implements the Storage interface on PostgreSQL via GORM.
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a new PostgreSQL storage instance.
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// --- User Methods ---

func (s *PostgresStorage) CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		s.log.Error("failed to check existing user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if count > 0 {
		return nil, repository.ErrUserExists
	}

	user := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		s.log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("created new user", zap.Int64("user_id", user.ID), zap.String("email", email))
	return &user, nil
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		s.log.Error("failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		s.log.Error("failed to get user by id", zap.Int64("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// --- QR Code Methods ---

func (s *PostgresStorage) CreateQRCode(ctx context.Context, code *domain.QRCode) error {
	exists, err := s.ShortIDExists(ctx, code.ShortID)
	if err != nil {
		return err
	}
	if exists {
		return repository.ErrShortIDExists
	}

	if err := s.db.WithContext(ctx).Create(code).Error; err != nil {
		s.log.Error("failed to create qr code", zap.String("short_id", code.ShortID), zap.Error(err))
		return fmt.Errorf("failed to create qr code: %w", err)
	}

	s.log.Info("created qr code",
		zap.Int64("qr_code_id", code.ID),
		zap.String("short_id", code.ShortID),
		zap.Int64("user_id", code.UserID))
	return nil
}

// UpdateQRCode overwrites the mutable fields of an existing record in place.
// The short identifier and scan counter are never touched here.
func (s *PostgresStorage) UpdateQRCode(ctx context.Context, code *domain.QRCode) error {
	result := s.db.WithContext(ctx).Model(&domain.QRCode{}).
		Where("id = ?", code.ID).
		Updates(map[string]interface{}{
			"url":           code.URL,
			"qr_image_data": code.QRImageData,
			"settings":      code.Settings,
		})
	if result.Error != nil {
		s.log.Error("failed to update qr code", zap.Int64("qr_code_id", code.ID), zap.Error(result.Error))
		return fmt.Errorf("failed to update qr code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCodeNotFound
	}
	return nil
}

func (s *PostgresStorage) GetQRCodeByShortID(ctx context.Context, shortID string) (*domain.QRCode, error) {
	var code domain.QRCode
	err := s.db.WithContext(ctx).Where("short_id = ?", shortID).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCodeNotFound
	}
	if err != nil {
		s.log.Error("failed to get qr code by short id", zap.String("short_id", shortID), zap.Error(err))
		return nil, fmt.Errorf("failed to get qr code: %w", err)
	}
	return &code, nil
}

func (s *PostgresStorage) GetQRCodeByOwnerAndName(ctx context.Context, userID int64, name string) (*domain.QRCode, error) {
	var code domain.QRCode
	err := s.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCodeNotFound
	}
	if err != nil {
		s.log.Error("failed to get qr code by owner and name",
			zap.Int64("user_id", userID), zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to get qr code: %w", err)
	}
	return &code, nil
}

func (s *PostgresStorage) GetQRCodeByOwnerAndID(ctx context.Context, userID, id int64) (*domain.QRCode, error) {
	var code domain.QRCode
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCodeNotFound
	}
	if err != nil {
		s.log.Error("failed to get qr code by owner and id",
			zap.Int64("user_id", userID), zap.Int64("qr_code_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get qr code: %w", err)
	}
	return &code, nil
}

func (s *PostgresStorage) ListUserQRCodes(ctx context.Context, userID int64) ([]*domain.QRCode, error) {
	var codes []*domain.QRCode
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&codes).Error
	if err != nil {
		s.log.Error("failed to list user qr codes", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}
	return codes, nil
}

// DeleteQRCode removes a code and all its scan events in one transaction.
func (s *PostgresStorage) DeleteQRCode(ctx context.Context, userID, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.QRCode{})
		if result.Error != nil {
			s.log.Error("failed to delete qr code", zap.Int64("qr_code_id", id), zap.Error(result.Error))
			return fmt.Errorf("failed to delete qr code: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrCodeNotFound
		}

		if err := tx.Where("qr_code_id = ?", id).Delete(&domain.ScanEvent{}).Error; err != nil {
			s.log.Error("failed to delete scan events", zap.Int64("qr_code_id", id), zap.Error(err))
			return fmt.Errorf("failed to delete scan events: %w", err)
		}

		s.log.Info("deleted qr code with scan events", zap.Int64("qr_code_id", id), zap.Int64("user_id", userID))
		return nil
	})
}

func (s *PostgresStorage) ShortIDExists(ctx context.Context, shortID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.QRCode{}).Where("short_id = ?", shortID).Count(&count).Error
	if err != nil {
		s.log.Error("failed to check short id existence", zap.String("short_id", shortID), zap.Error(err))
		return false, fmt.Errorf("failed to check short id: %w", err)
	}
	return count > 0, nil
}

// IncrementScanCount bumps the counter with a storage-level expression so
// concurrent scans of the same code never lose updates.
func (s *PostgresStorage) IncrementScanCount(ctx context.Context, codeID int64) error {
	result := s.db.WithContext(ctx).Model(&domain.QRCode{}).
		Where("id = ?", codeID).
		Update("scan_count", gorm.Expr("scan_count + 1"))
	if result.Error != nil {
		s.log.Error("failed to increment scan count", zap.Int64("qr_code_id", codeID), zap.Error(result.Error))
		return fmt.Errorf("failed to increment scan count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCodeNotFound
	}
	return nil
}

// --- Scan Event Methods ---

func (s *PostgresStorage) AppendScanEvent(ctx context.Context, event *domain.ScanEvent) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		s.log.Error("failed to append scan event", zap.Int64("qr_code_id", event.QRCodeID), zap.Error(err))
		return fmt.Errorf("failed to append scan event: %w", err)
	}
	return nil
}

func (s *PostgresStorage) ListScanEvents(ctx context.Context, codeID int64) ([]*domain.ScanEvent, error) {
	var events []*domain.ScanEvent
	err := s.db.WithContext(ctx).Where("qr_code_id = ?", codeID).Find(&events).Error
	if err != nil {
		s.log.Error("failed to list scan events", zap.Int64("qr_code_id", codeID), zap.Error(err))
		return nil, fmt.Errorf("failed to list scan events: %w", err)
	}
	return events, nil
}
