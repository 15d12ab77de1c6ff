package service

import (
	"QRTrack-Backend/internal/domain"
	"QRTrack-Backend/internal/geoip"
	"QRTrack-Backend/internal/metrics"
	"QRTrack-Backend/internal/repository"
	"QRTrack-Backend/pkg/useragent"
	"context"
	"net"
	"time"

	"go.uber.org/zap"
)

// DeviceClassifier turns a raw User-Agent string into structured device
// information. Satisfied by *useragent.Parser.
type DeviceClassifier interface {
	Classify(userAgent string) useragent.Classification
}

// ScanContext is the raw request context captured by the redirect gateway.
type ScanContext struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

// ScanRecorder turns one inbound redirect request into an incremented scan
// counter plus one durable scan event, and returns the destination URL.
//
// Failure policy: once the short identifier resolves, the user's redirect is
// the primary guarantee. Counter and event writes are best-effort; a failed
// write is logged for reconciliation and counted in metrics, never surfaced
// to the visitor.
type ScanRecorder struct {
	storage repository.Storage
	geo     geoip.Resolver
	devices DeviceClassifier
	log     *zap.Logger
}

func NewScanRecorder(storage repository.Storage, geo geoip.Resolver, devices DeviceClassifier, log *zap.Logger) *ScanRecorder {
	return &ScanRecorder{
		storage: storage,
		geo:     geo,
		devices: devices,
		log:     log,
	}
}

// RecordScan resolves shortID, classifies the request, records the scan and
// returns the destination URL. Returns repository.ErrCodeNotFound when the
// identifier is unknown; in that case nothing is written anywhere.
func (s *ScanRecorder) RecordScan(ctx context.Context, shortID string, scan ScanContext) (string, error) {
	code, err := s.storage.GetQRCodeByShortID(ctx, shortID)
	if err != nil {
		return "", err
	}

	ip := net.ParseIP(scan.IPAddress)

	location, err := s.geo.Lookup(ip)
	if err != nil {
		// Degraded classification is recorded as absence, not as an error.
		s.log.Warn("geo lookup degraded, recording scan without location",
			zap.String("short_id", shortID),
			zap.String("ip", scan.IPAddress),
			zap.Error(err))
		location = nil
	}

	device := s.devices.Classify(scan.UserAgent)

	// A client disconnect must not abort a scan already being recorded: the
	// scan happened once these writes complete server-side.
	writeCtx := context.WithoutCancel(ctx)

	if err := s.storage.IncrementScanCount(writeCtx, code.ID); err != nil {
		s.log.Warn("scan counter increment failed, redirect proceeds (needs reconciliation)",
			zap.Int64("qr_code_id", code.ID),
			zap.String("short_id", shortID),
			zap.Error(err))
		metrics.ScanRecordingFailures.WithLabelValues("counter").Inc()
	}

	event := buildScanEvent(code.ID, ip, location, device, scan.Referrer)
	if err := s.storage.AppendScanEvent(writeCtx, event); err != nil {
		s.log.Warn("scan event append failed, counter and event log may diverge (needs reconciliation)",
			zap.Int64("qr_code_id", code.ID),
			zap.String("short_id", shortID),
			zap.Error(err))
		metrics.ScanRecordingFailures.WithLabelValues("event").Inc()
	}

	metrics.ScansTotal.Inc()
	s.log.Info("recorded scan",
		zap.String("short_id", shortID),
		zap.Int64("qr_code_id", code.ID),
		zap.Bool("has_location", event.HasLocation()),
		zap.String("device", event.DeviceLabel()))

	return code.URL, nil
}

// buildScanEvent assembles the immutable event row with a server-assigned
// timestamp. Absent classification results stay nil.
func buildScanEvent(codeID int64, ip net.IP, location *geoip.Location, device useragent.Classification, referrer string) *domain.ScanEvent {
	event := &domain.ScanEvent{
		QRCodeID:  codeID,
		ScannedAt: time.Now().UTC(),
		IsMobile:  device.IsMobile,
		IsTablet:  device.IsTablet,
		IsDesktop: device.IsDesktop,
	}

	if ip != nil {
		event.IPAddress = &ip
	}
	if location != nil {
		event.Country = &location.Country
		event.Latitude = &location.Latitude
		event.Longitude = &location.Longitude
		if location.Region != "" {
			event.Region = &location.Region
		}
		if location.City != "" {
			event.City = &location.City
		}
	}

	event.Platform = optional(device.Platform)
	event.Browser = optional(device.Browser)
	event.OS = optional(device.OS)
	event.Referrer = optional(referrer)

	return event
}

// optional maps an empty string to nil so it persists as NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
