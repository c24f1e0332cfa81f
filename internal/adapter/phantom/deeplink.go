// Package phantom builds and parses Phantom universal links: the
// transport for the wallet round-trip on platforms without an injected
// extension.
package phantom

import (
	"net/url"
	"strings"
)

const (
	// BaseURL is the Phantom universal-link prefix.
	BaseURL = "https://phantom.app/ul/v1"

	// DefaultCallbackPath is where Phantom redirects after an action.
	DefaultCallbackPath = "/phantom-callback"
)

// BuildURL produces a deep link for a wallet action with the given
// query parameters.
func BuildURL(action string, params url.Values) string {
	u := BaseURL + "/" + strings.TrimPrefix(action, "/")
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}

	return u
}

// CallbackURL is the redirect target Phantom sends the user back to.
// An empty path falls back to DefaultCallbackPath.
func CallbackURL(origin, path string) string {
	if path == "" {
		path = DefaultCallbackPath
	}

	return strings.TrimSuffix(origin, "/") + path
}

// CallbackError is the error half of a parsed wallet callback.
type CallbackError struct {
	Code    string
	Message string
}

// CallbackResult is a parsed wallet callback URL. Exactly one of Err
// or the success fields is populated; a URL that cannot be parsed at
// all yields Err with code "parse_failed" rather than a panic or a Go
// error.
type CallbackResult struct {
	Err *CallbackError

	EncryptionPublicKey string // phantom_encryption_public_key
	Signature           string
	Nonce               string
	Data                string
}

// Success reports whether the callback carried a success payload.
func (r CallbackResult) Success() bool {
	return r.Err == nil
}

// ParseCallback extracts the wallet's response from a full callback
// URL.
func ParseCallback(raw string) CallbackResult {
	u, err := url.Parse(raw)
	if err != nil {
		return CallbackResult{Err: &CallbackError{Code: "parse_failed", Message: err.Error()}}
	}

	q := u.Query()

	if code := q.Get("errorCode"); code != "" {
		return CallbackResult{Err: &CallbackError{
			Code:    code,
			Message: q.Get("errorMessage"),
		}}
	}

	return CallbackResult{
		EncryptionPublicKey: q.Get("phantom_encryption_public_key"),
		Signature:           q.Get("signature"),
		Nonce:               q.Get("nonce"),
		Data:                q.Get("data"),
	}
}
