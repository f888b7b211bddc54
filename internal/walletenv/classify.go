package walletenv

import (
	"strings"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
)

// Mobile user-agent markers, checked case-insensitively.
var mobileMarkers = []string{
	"android",
	"iphone",
	"ipad",
	"ipod",
	"webos",
	"blackberry",
	"opera mini",
	"mobile",
}

// Classify determines the wallet environment from the probe.
// Pure function of the probe; never fails. A nil probe or unknown
// context resolves to the safe default: non-mobile with no extension,
// which routes to the extension-less desktop path.
func Classify(p Probe) domain.Environment {
	if p == nil {
		return domain.EnvDesktopExtension
	}

	// The hosting browser already speaks the wallet protocol.
	if p.IsWalletHost() {
		return domain.EnvInWalletBrowser
	}

	if isMobileUA(p.UserAgent()) && !p.HasWalletExtension() {
		return domain.EnvMobile
	}

	return domain.EnvDesktopExtension
}

// isMobileUA reports whether the user-agent looks like a mobile browser.
func isMobileUA(ua string) bool {
	if ua == "" {
		return false
	}
	lower := strings.ToLower(ua)
	for _, marker := range mobileMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
