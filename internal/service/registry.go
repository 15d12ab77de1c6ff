package service

import (
	"QRTrack-Backend/internal/config"
	"QRTrack-Backend/internal/domain"
	"QRTrack-Backend/internal/repository"
	"QRTrack-Backend/pkg/random"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// CodeRegistry owns QR code records: creation with collision-checked short
// identifier assignment, edit-in-place updates, and owner-scoped reads.
type CodeRegistry struct {
	storage repository.Storage
	cfg     *config.QRCode
	log     *zap.Logger
}

func NewCodeRegistry(storage repository.Storage, cfg *config.QRCode, log *zap.Logger) *CodeRegistry {
	return &CodeRegistry{
		storage: storage,
		cfg:     cfg,
		log:     log,
	}
}

// UpsertInput carries the owner-editable fields of a QR code. Settings and
// image data are opaque blobs; the registry never interprets them.
type UpsertInput struct {
	Name        string
	URL         string
	QRImageData string
	Settings    datatypes.JSON
}

// Upsert saves a code for the given owner. An existing record with the same
// owner and name is overwritten in place, preserving its short identifier and
// scan counter; otherwise a new record is created under a freshly generated
// short identifier. Returns the stored record and whether it was created.
func (r *CodeRegistry) Upsert(ctx context.Context, ownerID int64, in UpsertInput) (*domain.QRCode, bool, error) {
	existing, err := r.storage.GetQRCodeByOwnerAndName(ctx, ownerID, in.Name)
	if err != nil && !errors.Is(err, repository.ErrCodeNotFound) {
		return nil, false, fmt.Errorf("failed to look up qr code: %w", err)
	}

	if existing != nil {
		existing.URL = in.URL
		existing.QRImageData = in.QRImageData
		existing.Settings = in.Settings
		if err := r.storage.UpdateQRCode(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to overwrite qr code: %w", err)
		}
		r.log.Info("overwrote qr code in place",
			zap.Int64("qr_code_id", existing.ID),
			zap.String("short_id", existing.ShortID),
			zap.Int64("user_id", ownerID))
		return existing, false, nil
	}

	code := &domain.QRCode{
		UserID:      ownerID,
		Name:        in.Name,
		URL:         in.URL,
		QRImageData: in.QRImageData,
		Settings:    in.Settings,
	}

	// Loop until an unused identifier is actually persisted. The collision
	// probability is ~count/62^6, but a concurrent create can still win the
	// race between the existence check and the insert, so the unique index
	// is the final arbiter.
	for {
		shortID, err := r.generateShortID(ctx)
		if err != nil {
			return nil, false, err
		}
		code.ShortID = shortID

		err = r.storage.CreateQRCode(ctx, code)
		if errors.Is(err, repository.ErrShortIDExists) {
			r.log.Debug("short id collision on insert, regenerating", zap.String("short_id", shortID))
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to create qr code: %w", err)
		}
		break
	}

	r.log.Info("created qr code",
		zap.Int64("qr_code_id", code.ID),
		zap.String("short_id", code.ShortID),
		zap.Int64("user_id", ownerID))
	return code, true, nil
}

// Get returns a code by id, scoped to its owner.
func (r *CodeRegistry) Get(ctx context.Context, ownerID, id int64) (*domain.QRCode, error) {
	return r.storage.GetQRCodeByOwnerAndID(ctx, ownerID, id)
}

// List returns all codes owned by the given user.
func (r *CodeRegistry) List(ctx context.Context, ownerID int64) ([]*domain.QRCode, error) {
	return r.storage.ListUserQRCodes(ctx, ownerID)
}

// Delete removes an owner's code and, by cascade, all its scan events.
func (r *CodeRegistry) Delete(ctx context.Context, ownerID, id int64) error {
	return r.storage.DeleteQRCode(ctx, ownerID, id)
}

// generateShortID draws random identifiers until one is unused.
func (r *CodeRegistry) generateShortID(ctx context.Context) (string, error) {
	length := r.cfg.ShortIDLength
	if length <= 0 {
		length = domain.ShortIDLength
	}

	for {
		shortID, err := random.NewRandomString(length)
		if err != nil {
			return "", fmt.Errorf("failed to generate short id: %w", err)
		}

		exists, err := r.storage.ShortIDExists(ctx, shortID)
		if err != nil {
			return "", fmt.Errorf("failed to check short id: %w", err)
		}
		if !exists {
			return shortID, nil
		}

		r.log.Debug("short id collision, retrying", zap.String("short_id", shortID))
	}
}
