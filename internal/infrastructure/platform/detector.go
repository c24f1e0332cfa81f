// Package platform classifies the runtime environment a wallet flow
// runs in. All queries are pure: they read an Environment snapshot and
// never touch ambient state.
package platform

import (
	"net/http"
	"strings"
)

// Platform is the detected client class.
type Platform string

const (
	DesktopWeb Platform = "desktop-web"
	MobileWeb  Platform = "mobile-web"
	MobilePWA  Platform = "mobile-pwa"
)

// Environment is a snapshot of the client's ambient signals. A nil
// Environment means no browser context exists (a non-interactive
// execution environment) and always detects as desktop-web.
type Environment struct {
	UserAgent          string
	StandaloneDisplay  bool // installed-app display mode
	HasWalletExtension bool // injected wallet global present
}

var mobileTokens = []string{
	"android",
	"iphone",
	"ipad",
	"ipod",
	"blackberry",
	"windows phone",
	"opera mini",
	"iemobile",
	"mobile",
}

// Detect classifies the environment. Mobile user agents split into
// installed-app (standalone display mode) and browser; everything else,
// including a missing environment, is desktop-web.
func Detect(env *Environment) Platform {
	if env == nil {
		return DesktopWeb
	}

	if !env.IsMobileDevice() {
		return DesktopWeb
	}

	if env.StandaloneDisplay {
		return MobilePWA
	}

	return MobileWeb
}

// IsMobileDevice reports whether the user agent matches a known mobile
// device token. Nil-safe.
func (e *Environment) IsMobileDevice() bool {
	if e == nil {
		return false
	}

	ua := strings.ToLower(e.UserAgent)
	for _, token := range mobileTokens {
		if strings.Contains(ua, token) {
			return true
		}
	}

	return false
}

// IsWalletExtensionInstalled reports whether an injected wallet global
// is available. False, never an error, when the environment is absent.
func IsWalletExtensionInstalled(env *Environment) bool {
	return env != nil && env.HasWalletExtension
}

// FromRequest builds an Environment from an HTTP request's headers.
// Standalone display mode and wallet injection are client-side signals
// a browser cannot forward, so they default to false here.
func FromRequest(r *http.Request) *Environment {
	if r == nil {
		return nil
	}

	return &Environment{UserAgent: r.UserAgent()}
}
