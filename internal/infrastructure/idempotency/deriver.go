// Package idempotency derives deterministic, time-bucketed idempotency
// keys for payment-intent creation and caches them client-side so a
// retried submission maps to the backend intent it already requested.
package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// KeyLength is the hex length of a derived key: 128 bits, enough
	// uniqueness at a shorter wire format than the full digest.
	KeyLength = 32

	bucketInterval = time.Minute
)

// DeriveKey produces the idempotency key for a donation at the given
// instant. Identical inputs within the same minute bucket always yield
// the identical key; any change to identity, amounts, or bucket yields
// a different key.
func DeriveKey(userID, birdID string, birdAmount, wihngoAmount decimal.Decimal, at time.Time) string {
	bucket := at.UnixMilli() / bucketInterval.Milliseconds()

	payload := strings.Join([]string{
		userID,
		birdID,
		birdAmount.StringFixed(6),
		wihngoAmount.StringFixed(6),
		strconv.FormatInt(bucket, 10),
	}, ":")

	sum := sha256.Sum256([]byte(payload))

	return hex.EncodeToString(sum[:])[:KeyLength]
}
