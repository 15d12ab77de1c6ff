package service

import (
	"QRTrack-Backend/internal/domain"
	"QRTrack-Backend/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func at(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return ts
}

func locatedEvent(id int64, ts time.Time, country, city string) *domain.ScanEvent {
	return &domain.ScanEvent{
		ID:        id,
		ScannedAt: ts,
		Country:   strPtr(country),
		City:      strPtr(city),
		Latitude:  floatPtr(1),
		Longitude: floatPtr(1),
	}
}

func TestSummarize_EmptyEventSet(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, int64(0), summary.TotalScans)
	assert.NotNil(t, summary.DailyScans)
	assert.Empty(t, summary.DailyScans)
	assert.NotNil(t, summary.GeoDistribution)
	assert.NotNil(t, summary.Browsers)
	assert.NotNil(t, summary.OperatingSystems)
	assert.NotNil(t, summary.RecentScans)
	assert.Empty(t, summary.RecentScans)
	assert.Equal(t, [24]int64{}, summary.HourlyDistribution)
	assert.Equal(t, DeviceTypes{}, summary.DeviceTypes)
}

func TestSummarize_DailyBucketsAreUTCDates(t *testing.T) {
	events := []*domain.ScanEvent{
		{ID: 1, ScannedAt: at("2024-01-15T23:59:00Z")},
		{ID: 2, ScannedAt: at("2024-01-16T00:01:00Z")},
		{ID: 3, ScannedAt: at("2024-01-16T12:00:00Z")},
	}

	summary := Summarize(events)

	assert.Equal(t, int64(3), summary.TotalScans)
	assert.Equal(t, int64(1), summary.DailyScans["2024-01-15"])
	assert.Equal(t, int64(2), summary.DailyScans["2024-01-16"])
	assert.Len(t, summary.DailyScans, 2)
}

func TestSummarize_HourlyDistribution(t *testing.T) {
	events := []*domain.ScanEvent{
		{ID: 1, ScannedAt: at("2024-01-15T09:05:00Z")},
		{ID: 2, ScannedAt: at("2024-01-16T09:45:00Z")},
		{ID: 3, ScannedAt: at("2024-01-17T23:59:59Z")},
	}

	summary := Summarize(events)

	assert.Equal(t, int64(2), summary.HourlyDistribution[9])
	assert.Equal(t, int64(1), summary.HourlyDistribution[23])
	assert.Equal(t, int64(0), summary.HourlyDistribution[0])
}

func TestSummarize_GeoSkipsAbsentLocations(t *testing.T) {
	events := []*domain.ScanEvent{
		locatedEvent(1, at("2024-01-15T10:00:00Z"), "US", "Austin"),
		locatedEvent(2, at("2024-01-15T11:00:00Z"), "US", "Boston"),
		locatedEvent(3, at("2024-01-15T12:00:00Z"), "DE", "Berlin"),
		{ID: 4, ScannedAt: at("2024-01-15T13:00:00Z")}, // no location
	}

	summary := Summarize(events)

	// The absent-location event counts toward totals but not geo
	assert.Equal(t, int64(4), summary.TotalScans)
	assert.Equal(t, int64(2), summary.GeoDistribution["US"])
	assert.Equal(t, int64(1), summary.GeoDistribution["DE"])
	assert.Len(t, summary.GeoDistribution, 2)
}

func TestSummarize_DeviceTypePriority(t *testing.T) {
	events := []*domain.ScanEvent{
		{ID: 1, ScannedAt: at("2024-01-15T10:00:00Z"), IsMobile: true},
		{ID: 2, ScannedAt: at("2024-01-15T10:01:00Z"), IsMobile: true, IsTablet: true}, // ambiguous Android tablet
		{ID: 3, ScannedAt: at("2024-01-15T10:02:00Z"), IsTablet: true},
		{ID: 4, ScannedAt: at("2024-01-15T10:03:00Z"), IsDesktop: true},
		{ID: 5, ScannedAt: at("2024-01-15T10:04:00Z")}, // unclassified
	}

	summary := Summarize(events)

	assert.Equal(t, int64(2), summary.DeviceTypes.Mobile)
	assert.Equal(t, int64(1), summary.DeviceTypes.Tablet)
	assert.Equal(t, int64(1), summary.DeviceTypes.Desktop)

	total := summary.DeviceTypes.Mobile + summary.DeviceTypes.Tablet + summary.DeviceTypes.Desktop
	assert.Equal(t, int64(4), total, "each classified event counts exactly once")
}

func TestSummarize_BrowserAndOSLabels(t *testing.T) {
	events := []*domain.ScanEvent{
		{ID: 1, ScannedAt: at("2024-01-15T10:00:00Z"), Browser: strPtr("Chrome"), OS: strPtr("Windows")},
		{ID: 2, ScannedAt: at("2024-01-15T10:01:00Z"), Browser: strPtr("Chrome"), OS: strPtr("Android")},
		{ID: 3, ScannedAt: at("2024-01-15T10:02:00Z"), Browser: strPtr("Firefox")},
		{ID: 4, ScannedAt: at("2024-01-15T10:03:00Z")}, // nothing classified
	}

	summary := Summarize(events)

	assert.Equal(t, int64(2), summary.Browsers["Chrome"])
	assert.Equal(t, int64(1), summary.Browsers["Firefox"])
	assert.Len(t, summary.Browsers, 2)
	assert.Equal(t, int64(1), summary.OperatingSystems["Windows"])
	assert.Equal(t, int64(1), summary.OperatingSystems["Android"])
	assert.Len(t, summary.OperatingSystems, 2)
}

func TestSummarize_RecentScansOrderingAndCap(t *testing.T) {
	base := at("2024-01-15T00:00:00Z")
	var events []*domain.ScanEvent
	for i := 0; i < RecentScanLimit+5; i++ {
		events = append(events, &domain.ScanEvent{
			ID:        int64(i + 1),
			ScannedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	summary := Summarize(events)

	require.Len(t, summary.RecentScans, RecentScanLimit)
	// Newest first
	assert.Equal(t, base.Add(24*time.Minute), summary.RecentScans[0].Timestamp)
	for i := 1; i < len(summary.RecentScans); i++ {
		assert.False(t, summary.RecentScans[i].Timestamp.After(summary.RecentScans[i-1].Timestamp))
	}
}

func TestSummarize_RecentScanProjection(t *testing.T) {
	events := []*domain.ScanEvent{
		{
			ID:        1,
			ScannedAt: at("2024-01-15T10:00:00Z"),
			Country:   strPtr("US"),
			City:      strPtr("Austin"),
			Latitude:  floatPtr(30.26),
			Longitude: floatPtr(-97.74),
			Browser:   strPtr("Safari"),
			OS:        strPtr("iOS"),
			IsMobile:  true,
		},
		{
			ID:        2,
			ScannedAt: at("2024-01-15T11:00:00Z"),
			Country:   strPtr("DE"),
			Latitude:  floatPtr(52.52),
			Longitude: floatPtr(13.40),
			IsDesktop: true,
		},
		{
			ID:        3,
			ScannedAt: at("2024-01-15T12:00:00Z"),
		},
	}

	summary := Summarize(events)
	require.Len(t, summary.RecentScans, 3)

	assert.Equal(t, "Unknown", summary.RecentScans[0].Location)
	assert.Equal(t, "Unknown", summary.RecentScans[0].Device)
	assert.Equal(t, "Unknown", summary.RecentScans[0].Browser)

	assert.Equal(t, "DE", summary.RecentScans[1].Location)
	assert.Equal(t, "Desktop", summary.RecentScans[1].Device)

	assert.Equal(t, "Austin, US", summary.RecentScans[2].Location)
	assert.Equal(t, "Mobile", summary.RecentScans[2].Device)
	assert.Equal(t, "Safari", summary.RecentScans[2].Browser)
	assert.Equal(t, "iOS", summary.RecentScans[2].OS)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	forward := []*domain.ScanEvent{
		locatedEvent(1, at("2024-01-15T10:00:00Z"), "US", "Austin"),
		locatedEvent(2, at("2024-01-16T11:00:00Z"), "DE", "Berlin"),
		{ID: 3, ScannedAt: at("2024-01-17T12:00:00Z"), IsMobile: true},
	}
	reversed := []*domain.ScanEvent{forward[2], forward[1], forward[0]}

	assert.Equal(t, Summarize(forward), Summarize(reversed))
}

func TestAggregator_EmptyCodeYieldsEmptySummary(t *testing.T) {
	storage := memory.New()
	code := seedCode(t, storage, "abc123")
	aggregator := NewAggregator(storage, zap.NewNop())

	summary, err := aggregator.Aggregate(context.Background(), code.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalScans)
	assert.Empty(t, summary.RecentScans)
}
