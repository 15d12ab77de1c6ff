package postgres

import (
	"QRTrack-Backend/internal/database"
	"QRTrack-Backend/internal/domain"
	"QRTrack-Backend/internal/repository"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB spins up a throwaway PostgreSQL container and migrates the
// schema. Requires a local Docker daemon; skipped in -short runs.
func setupTestDB(t *testing.T) *PostgresStorage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed storage test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("qrtrack_test"),
		tcpostgres.WithUsername("qrtrack"),
		tcpostgres.WithPassword("qrtrack"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))

	return New(db, zap.NewNop())
}

func createTestUser(t *testing.T, storage *PostgresStorage, email string) *domain.User {
	t.Helper()
	user, err := storage.CreateUser(context.Background(), "user-"+email, email, "hash")
	require.NoError(t, err)
	return user
}

func TestPostgresStorage_QRCodeLifecycle(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, storage, "alice@example.com")

	code := &domain.QRCode{
		UserID:  user.ID,
		Name:    "Campaign A",
		URL:     "https://example.com/a",
		ShortID: "abc123",
	}
	require.NoError(t, storage.CreateQRCode(ctx, code))
	require.NotZero(t, code.ID)

	// Duplicate short id is rejected
	err := storage.CreateQRCode(ctx, &domain.QRCode{
		UserID:  user.ID,
		Name:    "Campaign B",
		URL:     "https://example.com/b",
		ShortID: "abc123",
	})
	assert.ErrorIs(t, err, repository.ErrShortIDExists)

	fetched, err := storage.GetQRCodeByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, code.ID, fetched.ID)
	assert.Equal(t, int64(0), fetched.ScanCount)

	// Update touches only the mutable fields
	code.URL = "https://example.com/updated"
	require.NoError(t, storage.UpdateQRCode(ctx, code))

	fetched, err = storage.GetQRCodeByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/updated", fetched.URL)
	assert.Equal(t, "abc123", fetched.ShortID)

	// Owner scoping
	_, err = storage.GetQRCodeByOwnerAndID(ctx, user.ID+1, code.ID)
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)

	byName, err := storage.GetQRCodeByOwnerAndName(ctx, user.ID, "Campaign A")
	require.NoError(t, err)
	assert.Equal(t, code.ID, byName.ID)
}

func TestPostgresStorage_IncrementScanCountConcurrent(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, storage, "alice@example.com")

	code := &domain.QRCode{UserID: user.ID, Name: "a", URL: "https://a", ShortID: "abc123"}
	require.NoError(t, storage.CreateQRCode(ctx, code))

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, storage.IncrementScanCount(ctx, code.ID))
		}()
	}
	wg.Wait()

	fetched, err := storage.GetQRCodeByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(n), fetched.ScanCount)
}

func TestPostgresStorage_ScanEventsAndCascade(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, storage, "alice@example.com")

	code := &domain.QRCode{UserID: user.ID, Name: "a", URL: "https://a", ShortID: "abc123"}
	require.NoError(t, storage.CreateQRCode(ctx, code))

	country := "US"
	city := "Austin"
	browser := "Chrome"
	require.NoError(t, storage.AppendScanEvent(ctx, &domain.ScanEvent{
		QRCodeID:  code.ID,
		ScannedAt: time.Now().UTC(),
		Country:   &country,
		City:      &city,
		Browser:   &browser,
		IsMobile:  true,
	}))
	require.NoError(t, storage.AppendScanEvent(ctx, &domain.ScanEvent{
		QRCodeID:  code.ID,
		ScannedAt: time.Now().UTC(),
		IsDesktop: true,
	}))

	events, err := storage.ListScanEvents(ctx, code.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)

	var located *domain.ScanEvent
	for _, e := range events {
		if e.Country != nil {
			located = e
		}
	}
	require.NotNil(t, located)
	assert.Equal(t, "US", *located.Country)
	assert.Equal(t, "Austin", *located.City)

	// Nullable fields of the unclassified event stay NULL
	for _, e := range events {
		if e.Country == nil {
			assert.Nil(t, e.Latitude)
			assert.Nil(t, e.Browser)
		}
	}

	require.NoError(t, storage.DeleteQRCode(ctx, user.ID, code.ID))

	events, err = storage.ListScanEvents(ctx, code.ID)
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = storage.GetQRCodeByShortID(ctx, "abc123")
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
}

func TestPostgresStorage_UserUniqueness(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	_, err := storage.CreateUser(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)

	_, err = storage.CreateUser(ctx, "alice2", "alice@example.com", "hash")
	assert.ErrorIs(t, err, repository.ErrUserExists)

	_, err = storage.CreateUser(ctx, "alice", "other@example.com", "hash")
	assert.ErrorIs(t, err, repository.ErrUserExists)

	_, err = storage.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
