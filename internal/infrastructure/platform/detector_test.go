package platform_test

import (
	"net/http/httptest"
	"testing"

	"github.com/wihngo/wallet/internal/infrastructure/platform"
)

const (
	iphoneUA        = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	androidUA       = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"
	desktopChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		env  *platform.Environment
		want platform.Platform
	}{
		{
			name: "iphone standalone is installed app",
			env:  &platform.Environment{UserAgent: iphoneUA, StandaloneDisplay: true},
			want: platform.MobilePWA,
		},
		{
			name: "iphone browser is mobile web",
			env:  &platform.Environment{UserAgent: iphoneUA},
			want: platform.MobileWeb,
		},
		{
			name: "android browser is mobile web",
			env:  &platform.Environment{UserAgent: androidUA},
			want: platform.MobileWeb,
		},
		{
			name: "desktop chrome is desktop web",
			env:  &platform.Environment{UserAgent: desktopChromeUA},
			want: platform.DesktopWeb,
		},
		{
			name: "desktop with standalone flag is still desktop",
			env:  &platform.Environment{UserAgent: desktopChromeUA, StandaloneDisplay: true},
			want: platform.DesktopWeb,
		},
		{
			name: "no environment defaults to desktop",
			env:  nil,
			want: platform.DesktopWeb,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := platform.Detect(tt.env); got != tt.want {
				t.Errorf("Detect() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsMobileDevice(t *testing.T) {
	var nilEnv *platform.Environment
	if nilEnv.IsMobileDevice() {
		t.Error("nil environment should not be mobile")
	}

	env := &platform.Environment{UserAgent: iphoneUA}
	if !env.IsMobileDevice() {
		t.Error("iPhone user agent should be mobile")
	}

	env = &platform.Environment{UserAgent: desktopChromeUA}
	if env.IsMobileDevice() {
		t.Error("desktop Chrome user agent should not be mobile")
	}
}

func TestIsWalletExtensionInstalled(t *testing.T) {
	if platform.IsWalletExtensionInstalled(nil) {
		t.Error("nil environment should report no extension")
	}

	if platform.IsWalletExtensionInstalled(&platform.Environment{}) {
		t.Error("environment without injection should report no extension")
	}

	if !platform.IsWalletExtensionInstalled(&platform.Environment{HasWalletExtension: true}) {
		t.Error("environment with injection should report extension")
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("User-Agent", androidUA)

	env := platform.FromRequest(r)
	if env == nil || env.UserAgent != androidUA {
		t.Fatalf("FromRequest did not capture the user agent")
	}

	if platform.Detect(env) != platform.MobileWeb {
		t.Errorf("Detect(FromRequest) = %s, want %s", platform.Detect(env), platform.MobileWeb)
	}

	if platform.FromRequest(nil) != nil {
		t.Error("nil request should produce nil environment")
	}
}
