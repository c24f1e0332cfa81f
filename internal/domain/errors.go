package domain

import "errors"

var (
	// Connection errors
	ErrMissingFields      = errors.New("missing required fields")
	ErrConnectionNotFound = errors.New("connection not found or expired")
	ErrDecryptionFailed   = errors.New("decryption failed")
	ErrMissingPublicKey   = errors.New("wallet response missing public key")

	// Donation errors
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientBalance  = errors.New("insufficient USDC balance")
	ErrTransactionFailed    = errors.New("transaction failed on chain")

	// Progress errors
	ErrStepBackward = errors.New("payment step cannot move backward")
	ErrUnknownStep  = errors.New("unknown payment step")
)
