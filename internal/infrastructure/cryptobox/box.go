// Package cryptobox implements the encrypted channel the dapp shares
// with the Phantom wallet: X25519 key agreement plus NaCl box
// (x25519-xsalsa20-poly1305) authenticated encryption, with base58
// wire encoding throughout.
package cryptobox

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/nacl/box"
)

const (
	// KeySize is the X25519 public/secret key length.
	KeySize = 32
	// NonceSize is the NaCl box nonce length.
	NonceSize = 24

	connectionIDBytes = 16
)

// ErrAuthenticationFailed means the ciphertext could not be opened:
// tampered data, wrong nonce, or a key that does not match.
var ErrAuthenticationFailed = errors.New("ciphertext authentication failed")

// GenerateKeyPair creates a fresh X25519 key pair.
func GenerateKeyPair() (publicKey, secretKey *[KeySize]byte, err error) {
	publicKey, secretKey, err = box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate key pair: %w", err)
	}

	return publicKey, secretKey, nil
}

// NewConnectionID mints an unguessable connection identifier: 16 random
// bytes, base58-encoded.
func NewConnectionID() (string, error) {
	buf := make([]byte, connectionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate connection id: %w", err)
	}

	return base58.Encode(buf), nil
}

// SharedSecret precomputes the Diffie-Hellman shared key between a peer
// public key and our secret key. Symmetric: SharedSecret(pubA, secB) ==
// SharedSecret(pubB, secA).
func SharedSecret(peerPublicKey, secretKey *[KeySize]byte) *[KeySize]byte {
	var shared [KeySize]byte
	box.Precompute(&shared, peerPublicKey, secretKey)

	return &shared
}

// Open authenticates and decrypts a box sealed by the peer.
func Open(ciphertext []byte, nonce *[NonceSize]byte, peerPublicKey, secretKey *[KeySize]byte) ([]byte, error) {
	plaintext, ok := box.Open(nil, ciphertext, nonce, peerPublicKey, secretKey)
	if !ok {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

// Seal encrypts and authenticates a message for the peer. The wallet
// side of the channel; used here by tests and the CLI flow driver.
func Seal(message []byte, nonce *[NonceSize]byte, peerPublicKey, secretKey *[KeySize]byte) []byte {
	return box.Seal(nil, message, nonce, peerPublicKey, secretKey)
}

// NewNonce creates a random NaCl box nonce.
func NewNonce() (*[NonceSize]byte, error) {
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return &nonce, nil
}

// EncodeKey returns the base58 form of a key.
func EncodeKey(key *[KeySize]byte) string {
	return base58.Encode(key[:])
}

// DecodeKey parses a base58-encoded 32-byte key.
func DecodeKey(s string) (*[KeySize]byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}

	if len(raw) != KeySize {
		return nil, fmt.Errorf("decode key: expected %d bytes, got %d", KeySize, len(raw))
	}

	var key [KeySize]byte
	copy(key[:], raw)

	return &key, nil
}

// DecodeNonce parses a base58-encoded 24-byte nonce.
func DecodeNonce(s string) (*[NonceSize]byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode nonce: %w", err)
	}

	if len(raw) != NonceSize {
		return nil, fmt.Errorf("decode nonce: expected %d bytes, got %d", NonceSize, len(raw))
	}

	var nonce [NonceSize]byte
	copy(nonce[:], raw)

	return &nonce, nil
}

// DecodeCiphertext parses base58-encoded ciphertext.
func DecodeCiphertext(s string) ([]byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}

	return raw, nil
}
