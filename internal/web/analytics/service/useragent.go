package service

import (
	"strings"

	"github.com/tech-blog-pro/blog-api/internal/web/analytics/model"
)

// browser/OS checks are ordered, first match wins; a UA mentioning both
// chrome and safari classifies as Chrome.
var (
	browserChecks = []struct{ needle, name string }{
		{"chrome", "Chrome"},
		{"firefox", "Firefox"},
		{"safari", "Safari"},
		{"edge", "Edge"},
		{"opera", "Opera"},
	}
	osChecks = []struct{ needle, name string }{
		{"windows", "Windows"},
		{"mac", "macOS"},
		{"linux", "Linux"},
		{"android", "Android"},
		{"ios", "iOS"},
	}
)

// ClassifyDevice derives the device classification from a raw user-agent.
func ClassifyDevice(userAgent string) model.Device {
	ua := strings.ToLower(userAgent)

	return model.Device{
		Type:    deviceType(ua),
		Browser: matchFirst(ua, browserChecks),
		OS:      matchFirst(ua, osChecks),
	}
}

func deviceType(ua string) model.DeviceType {
	switch {
	case strings.Contains(ua, "mobile"):
		return model.DeviceMobile
	case strings.Contains(ua, "tablet"):
		return model.DeviceTablet
	}

	return model.DeviceDesktop
}

func matchFirst(ua string, checks []struct{ needle, name string }) string {
	for _, c := range checks {
		if strings.Contains(ua, c.needle) {
			return c.name
		}
	}

	return "Unknown"
}

// locationFromIP is a documented no-op: the external geo-IP service was
// never wired in, every event carries a nil location.
func locationFromIP(_ string) *model.Location {
	return nil
}
