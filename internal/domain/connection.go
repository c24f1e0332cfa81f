package domain

import "time"

// ConnectionTTL is how long a pending wallet connection stays decryptable.
const ConnectionTTL = 10 * time.Minute

// PendingConnection holds the dapp-side key material for one wallet
// connection handshake. SecretKey never leaves the registry process:
// it is not serialized into responses, logs, or status checks.
type PendingConnection struct {
	ConnectionID string
	SecretKey    [32]byte
	PublicKey    [32]byte
	CreatedAt    time.Time
}

// Expired reports whether the connection is past its TTL at the given time.
func (c *PendingConnection) Expired(now time.Time) bool {
	return now.Sub(c.CreatedAt) > ConnectionTTL
}
