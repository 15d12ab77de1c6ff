package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	uaIPhoneChrome = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) CriOS/120.0.6099.119 Mobile/15E148 Safari/604.1"
	uaIPadSafari   = "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"
	uaAndroidPhone = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.144 Mobile Safari/537.36"
	uaAndroidTab   = "Mozilla/5.0 (Linux; Android 13; SM-X910) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.144 Safari/537.36"
	uaWindows      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaMacFirefox   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0"
)

func TestClassify_FormFactors(t *testing.T) {
	parser := NewDefault(zap.NewNop())

	tests := []struct {
		name      string
		userAgent string
		isMobile  bool
		isTablet  bool
		isDesktop bool
	}{
		{"iPhone", uaIPhoneChrome, true, false, false},
		{"iPad", uaIPadSafari, true, true, false},
		{"Android phone", uaAndroidPhone, true, false, false},
		{"Android tablet", uaAndroidTab, true, true, false},
		{"Windows desktop", uaWindows, false, false, true},
		{"Mac desktop", uaMacFirefox, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parser.Classify(tt.userAgent)
			assert.Equal(t, tt.isMobile, c.IsMobile, "IsMobile")
			assert.Equal(t, tt.isTablet, c.IsTablet, "IsTablet")
			assert.Equal(t, tt.isDesktop, c.IsDesktop, "IsDesktop")
		})
	}
}

func TestClassify_BrowserAndOS(t *testing.T) {
	parser := NewDefault(zap.NewNop())

	c := parser.Classify(uaWindows)
	assert.Equal(t, "Chrome", c.Browser)
	assert.Contains(t, c.OS, "Windows")

	c = parser.Classify(uaMacFirefox)
	assert.Equal(t, "Firefox", c.Browser)
	assert.Equal(t, "Mac OS X", c.OS)
}

func TestClassify_EmptyUserAgent(t *testing.T) {
	parser := NewDefault(zap.NewNop())

	c := parser.Classify("")
	assert.Empty(t, c.Browser)
	assert.Empty(t, c.OS)
	assert.Empty(t, c.Platform)
	assert.False(t, c.IsMobile)
	assert.False(t, c.IsTablet)
	assert.False(t, c.IsDesktop)
}

func TestClassify_UnknownFamiliesNormalized(t *testing.T) {
	parser := NewDefault(zap.NewNop())

	// Garbage input parses to the "Other" placeholder families, which must
	// surface as empty labels rather than literal "Other".
	c := parser.Classify("definitely-not-a-browser/0.0")
	assert.Empty(t, c.Browser)
	assert.Empty(t, c.OS)
}

func TestNew_EmptyPathUsesEmbeddedSet(t *testing.T) {
	parser, err := New("", zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, parser)

	c := parser.Classify(uaAndroidPhone)
	assert.True(t, c.IsMobile)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New("/nonexistent/regexes.yaml", zap.NewNop())
	assert.Error(t, err)
}
