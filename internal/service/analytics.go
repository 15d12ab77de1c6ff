package service

import (
	"QRTrack-Backend/internal/domain"
	"QRTrack-Backend/internal/repository"
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// RecentScanLimit caps the recent-scan feed in a summary.
const RecentScanLimit = 20

// Summary is the read-only aggregation over the full scan-event set of one
// code. Maps and slices are always non-nil; a code with zero events yields
// zero counts and empty collections.
type Summary struct {
	TotalScans         int64            `json:"totalScans"`
	DailyScans         map[string]int64 `json:"dailyScans"`         // UTC calendar date "YYYY-MM-DD" -> count
	HourlyDistribution [24]int64        `json:"hourlyDistribution"` // indexed by UTC hour of day
	GeoDistribution    map[string]int64 `json:"geoDistribution"`    // country code -> count, absent locations omitted
	DeviceTypes        DeviceTypes      `json:"deviceTypes"`
	Browsers           map[string]int64 `json:"browsers"`
	OperatingSystems   map[string]int64 `json:"operatingSystems"`
	RecentScans        []RecentScan     `json:"recentScans"`
}

// DeviceTypes is the three-way form-factor breakdown. Each event counts
// toward exactly one bucket, priority mobile > tablet > desktop.
type DeviceTypes struct {
	Mobile  int64 `json:"mobile"`
	Tablet  int64 `json:"tablet"`
	Desktop int64 `json:"desktop"`
}

// RecentScan is the display-safe projection of one event.
type RecentScan struct {
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"` // "City, Country", "Country" or "Unknown"
	Device    string    `json:"device"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
}

// Aggregator derives summaries from the persisted event log. It performs no
// mutation and keeps no cache; every call recomputes from the full set.
type Aggregator struct {
	storage repository.Storage
	log     *zap.Logger
}

func NewAggregator(storage repository.Storage, log *zap.Logger) *Aggregator {
	return &Aggregator{
		storage: storage,
		log:     log,
	}
}

// Aggregate loads all events for a code and summarizes them. Callers resolve
// the code (and its ownership) first; an existing code with no events is a
// valid empty summary, not an error.
func (a *Aggregator) Aggregate(ctx context.Context, codeID int64) (*Summary, error) {
	events, err := a.storage.ListScanEvents(ctx, codeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan events: %w", err)
	}

	summary := Summarize(events)
	a.log.Debug("aggregated scan events",
		zap.Int64("qr_code_id", codeID),
		zap.Int64("total_scans", summary.TotalScans))
	return summary, nil
}

// Summarize is the pure aggregation over an event set. The result does not
// depend on input order; recentScans ordering is strictly by timestamp
// descending with event id as a stable tie-break.
func Summarize(events []*domain.ScanEvent) *Summary {
	summary := &Summary{
		TotalScans:       int64(len(events)),
		DailyScans:       make(map[string]int64),
		GeoDistribution:  make(map[string]int64),
		Browsers:         make(map[string]int64),
		OperatingSystems: make(map[string]int64),
		RecentScans:      []RecentScan{},
	}

	for _, e := range events {
		ts := e.ScannedAt.UTC()
		summary.DailyScans[ts.Format("2006-01-02")]++
		summary.HourlyDistribution[ts.Hour()]++

		if e.HasLocation() && e.Country != nil {
			summary.GeoDistribution[*e.Country]++
		}

		// Fixed priority: a classifier may flag mobile and tablet at once,
		// the event still counts toward a single bucket.
		switch {
		case e.IsMobile:
			summary.DeviceTypes.Mobile++
		case e.IsTablet:
			summary.DeviceTypes.Tablet++
		case e.IsDesktop:
			summary.DeviceTypes.Desktop++
		}

		if e.Browser != nil && *e.Browser != "" {
			summary.Browsers[*e.Browser]++
		}
		if e.OS != nil && *e.OS != "" {
			summary.OperatingSystems[*e.OS]++
		}
	}

	summary.RecentScans = recentScans(events)
	return summary
}

func recentScans(events []*domain.ScanEvent) []RecentScan {
	sorted := make([]*domain.ScanEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ScannedAt.Equal(sorted[j].ScannedAt) {
			return sorted[i].ScannedAt.After(sorted[j].ScannedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	if len(sorted) > RecentScanLimit {
		sorted = sorted[:RecentScanLimit]
	}

	recent := make([]RecentScan, len(sorted))
	for i, e := range sorted {
		recent[i] = RecentScan{
			Timestamp: e.ScannedAt,
			Location:  formatLocation(e),
			Device:    e.DeviceLabel(),
			Browser:   orUnknown(e.Browser),
			OS:        orUnknown(e.OS),
		}
	}
	return recent
}

func formatLocation(e *domain.ScanEvent) string {
	if !e.HasLocation() || e.Country == nil {
		return "Unknown"
	}
	if e.City != nil && *e.City != "" {
		return *e.City + ", " + *e.Country
	}
	return *e.Country
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return "Unknown"
	}
	return *s
}
