package memory

import (
	"QRTrack-Backend/internal/domain"
	"QRTrack-Backend/internal/repository"
	"context"
	"sync"
	"time"
)

// MemStorage is an in-memory Storage implementation used by unit tests and
// database-less development runs.
type MemStorage struct {
	mu           sync.RWMutex
	usersByID    map[int64]*domain.User
	usersByEmail map[string]*domain.User
	codesByID    map[int64]*domain.QRCode
	codesByShort map[string]*domain.QRCode
	events       map[int64][]*domain.ScanEvent // keyed by qr code id
	userCounter  int64
	codeCounter  int64
	eventCounter int64
}

func New() *MemStorage {
	return &MemStorage{
		usersByID:    make(map[int64]*domain.User),
		usersByEmail: make(map[string]*domain.User),
		codesByID:    make(map[int64]*domain.QRCode),
		codesByShort: make(map[string]*domain.QRCode),
		events:       make(map[int64][]*domain.ScanEvent),
	}
}

// --- User Methods ---

func (s *MemStorage) CreateUser(_ context.Context, username, email, passwordHash string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[email]; exists {
		return nil, repository.ErrUserExists
	}
	for _, u := range s.usersByID {
		if u.Username == username {
			return nil, repository.ErrUserExists
		}
	}

	s.userCounter++
	user := &domain.User{
		ID:           s.userCounter,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.usersByID[user.ID] = user
	s.usersByEmail[email] = user
	return user, nil
}

func (s *MemStorage) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *MemStorage) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// --- QR Code Methods ---

func (s *MemStorage) CreateQRCode(_ context.Context, code *domain.QRCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.codesByShort[code.ShortID]; exists {
		return repository.ErrShortIDExists
	}

	s.codeCounter++
	code.ID = s.codeCounter
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now().UTC()
	}
	code.UpdatedAt = code.CreatedAt

	stored := *code
	s.codesByID[code.ID] = &stored
	s.codesByShort[code.ShortID] = &stored
	return nil
}

func (s *MemStorage) UpdateQRCode(_ context.Context, code *domain.QRCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.codesByID[code.ID]
	if !ok {
		return repository.ErrCodeNotFound
	}
	stored.URL = code.URL
	stored.QRImageData = code.QRImageData
	stored.Settings = code.Settings
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemStorage) GetQRCodeByShortID(_ context.Context, shortID string) (*domain.QRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.codesByShort[shortID]
	if !ok {
		return nil, repository.ErrCodeNotFound
	}
	copied := *code
	return &copied, nil
}

func (s *MemStorage) GetQRCodeByOwnerAndName(_ context.Context, userID int64, name string) (*domain.QRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, code := range s.codesByID {
		if code.UserID == userID && code.Name == name {
			copied := *code
			return &copied, nil
		}
	}
	return nil, repository.ErrCodeNotFound
}

func (s *MemStorage) GetQRCodeByOwnerAndID(_ context.Context, userID, id int64) (*domain.QRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.codesByID[id]
	if !ok || code.UserID != userID {
		return nil, repository.ErrCodeNotFound
	}
	copied := *code
	return &copied, nil
}

func (s *MemStorage) ListUserQRCodes(_ context.Context, userID int64) ([]*domain.QRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var codes []*domain.QRCode
	for _, code := range s.codesByID {
		if code.UserID == userID {
			copied := *code
			codes = append(codes, &copied)
		}
	}
	return codes, nil
}

func (s *MemStorage) DeleteQRCode(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codesByID[id]
	if !ok || code.UserID != userID {
		return repository.ErrCodeNotFound
	}

	delete(s.codesByID, id)
	delete(s.codesByShort, code.ShortID)
	delete(s.events, id) // cascade
	return nil
}

func (s *MemStorage) ShortIDExists(_ context.Context, shortID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codesByShort[shortID]
	return ok, nil
}

func (s *MemStorage) IncrementScanCount(_ context.Context, codeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codesByID[codeID]
	if !ok {
		return repository.ErrCodeNotFound
	}
	code.ScanCount++
	return nil
}

// --- Scan Event Methods ---

func (s *MemStorage) AppendScanEvent(_ context.Context, event *domain.ScanEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codesByID[event.QRCodeID]; !ok {
		return repository.ErrCodeNotFound
	}

	s.eventCounter++
	event.ID = s.eventCounter
	stored := *event
	s.events[event.QRCodeID] = append(s.events[event.QRCodeID], &stored)
	return nil
}

func (s *MemStorage) ListScanEvents(_ context.Context, codeID int64) ([]*domain.ScanEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.events[codeID]
	events := make([]*domain.ScanEvent, len(stored))
	for i, e := range stored {
		copied := *e
		events[i] = &copied
	}
	return events, nil
}
