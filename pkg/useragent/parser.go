package useragent

import (
	"fmt"
	"os"
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// Parser wraps the uap-go User-Agent parser with form-factor detection.
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

// Classification represents parsed device information for one request.
// Browser, OS and Platform are empty when the parser could not determine
// them; callers must treat empty labels as absent, not as real values.
// IsMobile and IsTablet may both be set for ambiguous devices (Android
// tablets in particular); consumers decide the priority.
type Classification struct {
	Platform  string // device family: iPhone, Samsung SM-..., Mac, ...
	Browser   string // Chrome, Firefox, Mobile Safari, ...
	OS        string // Windows, iOS, Android, ...
	IsMobile  bool
	IsTablet  bool
	IsDesktop bool
}

// New creates a parser from a uap-core regexes.yaml file. When path is empty,
// the regex set embedded in the library is used so classification works
// without external assets.
func New(regexFilePath string, log *zap.Logger) (*Parser, error) {
	if regexFilePath == "" {
		log.Info("no User-Agent regexes file configured, using embedded regex set")
		return &Parser{parser: uaparser.NewFromSaved(), log: log}, nil
	}

	regexBytes, err := os.ReadFile(regexFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read regexes file %s: %w", regexFilePath, err)
	}

	parser, err := uaparser.NewFromBytes(regexBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create User-Agent parser: %w", err)
	}

	log.Info("User-Agent parser initialized", zap.String("regexes_file", regexFilePath))
	return &Parser{parser: parser, log: log}, nil
}

// NewDefault creates a parser backed by the library's embedded regex set.
func NewDefault(log *zap.Logger) *Parser {
	return &Parser{parser: uaparser.NewFromSaved(), log: log}
}

// Classify parses a raw User-Agent string into a Classification. An empty
// input yields an all-empty, all-false classification.
func (p *Parser) Classify(userAgent string) Classification {
	if userAgent == "" {
		return Classification{}
	}

	client := p.parser.Parse(userAgent)

	c := Classification{
		Platform: normalizeFamily(client.Device.Family),
		Browser:  normalizeFamily(client.UserAgent.Family),
		OS:       normalizeFamily(client.Os.Family),
	}

	osFamily := client.Os.Family
	deviceFamily := client.Device.Family

	c.IsTablet = isTabletDevice(deviceFamily) || isTabletOS(osFamily, userAgent)
	c.IsMobile = isMobileOS(osFamily) || isMobileDevice(deviceFamily)
	c.IsDesktop = !c.IsMobile && !c.IsTablet && isDesktopOS(osFamily)

	p.log.Debug("classified User-Agent",
		zap.String("browser", c.Browser),
		zap.String("os", c.OS),
		zap.Bool("mobile", c.IsMobile),
		zap.Bool("tablet", c.IsTablet),
		zap.Bool("desktop", c.IsDesktop),
	)

	return c
}

// normalizeFamily maps uap-go's "Other" placeholder to an empty label.
func normalizeFamily(family string) string {
	if family == "" || family == "Other" {
		return ""
	}
	return family
}

func isMobileDevice(deviceFamily string) bool {
	for _, indicator := range []string{"iPhone", "iPod", "Phone", "BlackBerry", "Lumia"} {
		if containsIgnoreCase(deviceFamily, indicator) {
			return true
		}
	}
	return false
}

func isTabletDevice(deviceFamily string) bool {
	for _, indicator := range []string{"iPad", "Tablet", "Kindle", "Tab"} {
		if containsIgnoreCase(deviceFamily, indicator) {
			return true
		}
	}
	return false
}

func isMobileOS(osFamily string) bool {
	for _, indicator := range []string{"iOS", "Android", "Windows Phone", "BlackBerry OS", "Firefox OS", "KaiOS"} {
		if containsIgnoreCase(osFamily, indicator) {
			return true
		}
	}
	return false
}

// isTabletOS catches tablets that only reveal themselves through the raw
// User-Agent: iPads report iOS, Android tablets omit the "Mobile" token.
func isTabletOS(osFamily, userAgent string) bool {
	if containsIgnoreCase(osFamily, "iOS") {
		return containsIgnoreCase(userAgent, "iPad")
	}
	if containsIgnoreCase(osFamily, "Android") {
		return !containsIgnoreCase(userAgent, "Mobile")
	}
	return false
}

func isDesktopOS(osFamily string) bool {
	for _, indicator := range []string{"Windows", "Mac OS X", "macOS", "Linux", "Ubuntu", "Fedora", "Chrome OS", "FreeBSD", "OpenBSD", "NetBSD"} {
		if containsIgnoreCase(osFamily, indicator) {
			return true
		}
	}
	return false
}

func containsIgnoreCase(str, substr string) bool {
	if str == "" || substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}
