package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"
)

// Location is a resolved approximate position for an IP address.
type Location struct {
	Country   string // ISO 3166-1 code, e.g. "US"
	Region    string
	City      string
	Latitude  float64
	Longitude float64
}

// Resolver maps an IP address to an approximate location. A (nil, nil)
// result means the address could not be resolved; callers record that as
// absence, never as a zero location.
type Resolver interface {
	Lookup(ip net.IP) (*Location, error)
}

// MaxMindResolver resolves addresses against a local MaxMind GeoLite2/GeoIP2
// City database.
type MaxMindResolver struct {
	reader *geoip2.Reader
	log    *zap.Logger
}

func New(dbPath string, log *zap.Logger) (*MaxMindResolver, error) {
	reader, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open GeoIP database %s: %w", dbPath, err)
	}

	log.Info("GeoIP database loaded", zap.String("path", dbPath))
	return &MaxMindResolver{reader: reader, log: log}, nil
}

func (r *MaxMindResolver) Lookup(ip net.IP) (*Location, error) {
	// Private, loopback and unspecified ranges are never in the database;
	// treat them as unresolvable instead of asking and logging errors.
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return nil, nil
	}

	record, err := r.reader.City(ip)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup failed for %s: %w", ip, err)
	}

	// The database returns an empty record for unknown addresses. Without a
	// country there is nothing useful to report.
	if record.Country.IsoCode == "" {
		return nil, nil
	}

	loc := &Location{
		Country:   record.Country.IsoCode,
		City:      record.City.Names["en"],
		Latitude:  record.Location.Latitude,
		Longitude: record.Location.Longitude,
	}
	if len(record.Subdivisions) > 0 {
		loc.Region = record.Subdivisions[0].IsoCode
	}

	return loc, nil
}

func (r *MaxMindResolver) Close() error {
	return r.reader.Close()
}

// NoopResolver reports every address as unresolvable. Used when no GeoIP
// database is configured so scans still record with absent location.
type NoopResolver struct{}

func (NoopResolver) Lookup(net.IP) (*Location, error) {
	return nil, nil
}
