package handler

import (
	"net/http"

	"github.com/wihngo/wallet/internal/infrastructure/platform"
)

// PlatformHandler tells clients which connection flow to use.
type PlatformHandler struct{}

func NewPlatformHandler() *PlatformHandler {
	return &PlatformHandler{}
}

// Detect classifies the calling client from its request headers.
func (h *PlatformHandler) Detect(w http.ResponseWriter, r *http.Request) {
	env := platform.FromRequest(r)

	writeJSON(w, http.StatusOK, map[string]any{
		"platform": string(platform.Detect(env)),
		"isMobile": env.IsMobileDevice(),
	})
}
