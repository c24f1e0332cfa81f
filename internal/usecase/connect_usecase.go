package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/wihngo/wallet/internal/domain"
	"github.com/wihngo/wallet/internal/infrastructure/cryptobox"
	"github.com/wihngo/wallet/internal/infrastructure/metrics"
)

// ConnectUseCase runs the server side of the Phantom connection
// handshake: mint a key pair per connection, then open the wallet's
// encrypted response exactly once.
type ConnectUseCase struct {
	registry ConnectionRegistry
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewConnectUseCase creates a new ConnectUseCase. Metrics may be nil.
func NewConnectUseCase(registry ConnectionRegistry, m *metrics.Metrics, logger zerolog.Logger) *ConnectUseCase {
	return &ConnectUseCase{
		registry: registry,
		metrics:  m,
		logger:   logger,
	}
}

// InitResult is returned to the client starting a handshake. The secret
// key stays in the registry.
type InitResult struct {
	ConnectionID  string
	DappPublicKey string
}

// Init generates a fresh key pair and connection ID, sweeps expired
// registry entries, and stores the pending connection.
func (uc *ConnectUseCase) Init(ctx context.Context) (*InitResult, error) {
	now := time.Now().UTC()

	evicted, err := uc.registry.Sweep(ctx, now.Add(-domain.ConnectionTTL))
	if err != nil {
		return nil, err
	}

	if evicted > 0 {
		uc.logger.Debug().Int("evicted", evicted).Msg("swept expired connections")
		if uc.metrics != nil {
			uc.metrics.ConnectionsExpired.Add(float64(evicted))
		}
	}

	publicKey, secretKey, err := cryptobox.GenerateKeyPair()
	if err != nil {
		return nil, err
	}

	connectionID, err := cryptobox.NewConnectionID()
	if err != nil {
		return nil, err
	}

	conn := &domain.PendingConnection{
		ConnectionID: connectionID,
		SecretKey:    *secretKey,
		PublicKey:    *publicKey,
		CreatedAt:    now,
	}

	if err := uc.registry.Put(ctx, conn); err != nil {
		return nil, err
	}

	uc.logger.Info().Str("connection_id", connectionID).Msg("wallet connection initiated")
	if uc.metrics != nil {
		uc.metrics.ConnectionsInitiated.Inc()
	}

	return &InitResult{
		ConnectionID:  connectionID,
		DappPublicKey: cryptobox.EncodeKey(publicKey),
	}, nil
}

// DecryptInput carries the wallet's encrypted connect response, all
// fields base58-encoded.
type DecryptInput struct {
	ConnectionID    string
	WalletPublicKey string // phantom_encryption_public_key
	Data            string
	Nonce           string
}

// DecryptResult is the opened wallet response.
type DecryptResult struct {
	WalletAddress string
	Session       string
}

// walletPayload is the JSON shape Phantom encrypts in its connect
// response.
type walletPayload struct {
	PublicKey string `json:"public_key"`
	Session   string `json:"session"`
}

// Decrypt opens the wallet's authenticated response for a pending
// connection and consumes the registry entry, so a connectionId can be
// decrypted at most once. Decode and authentication failures surface as
// the generic ErrDecryptionFailed to avoid an oracle on why the open
// failed; a structurally valid plaintext missing its public key is the
// distinct ErrMissingPublicKey.
func (uc *ConnectUseCase) Decrypt(ctx context.Context, input DecryptInput) (*DecryptResult, error) {
	if input.ConnectionID == "" || input.WalletPublicKey == "" || input.Data == "" || input.Nonce == "" {
		return nil, domain.ErrMissingFields
	}

	conn, err := uc.registry.Get(ctx, input.ConnectionID)
	if err != nil {
		return nil, err
	}

	walletKey, err := cryptobox.DecodeKey(input.WalletPublicKey)
	if err != nil {
		uc.failDecrypt(input.ConnectionID, "bad_encoding", err)
		return nil, domain.ErrDecryptionFailed
	}

	nonce, err := cryptobox.DecodeNonce(input.Nonce)
	if err != nil {
		uc.failDecrypt(input.ConnectionID, "bad_encoding", err)
		return nil, domain.ErrDecryptionFailed
	}

	ciphertext, err := cryptobox.DecodeCiphertext(input.Data)
	if err != nil {
		uc.failDecrypt(input.ConnectionID, "bad_encoding", err)
		return nil, domain.ErrDecryptionFailed
	}

	secretKey := conn.SecretKey
	plaintext, err := cryptobox.Open(ciphertext, nonce, walletKey, &secretKey)
	if err != nil {
		uc.failDecrypt(input.ConnectionID, "auth_failed", err)
		return nil, domain.ErrDecryptionFailed
	}

	var payload walletPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		uc.failDecrypt(input.ConnectionID, "bad_payload", err)
		return nil, domain.ErrDecryptionFailed
	}

	if payload.PublicKey == "" {
		uc.failDecrypt(input.ConnectionID, "missing_public_key", nil)
		return nil, domain.ErrMissingPublicKey
	}

	if _, err := solana.PublicKeyFromBase58(payload.PublicKey); err != nil {
		uc.failDecrypt(input.ConnectionID, "invalid_wallet_address", err)
		return nil, domain.ErrInvalidWalletAddress
	}

	// One-shot: take the entry out of the registry. A concurrent
	// decrypt that also opened the box loses this race and reports
	// NotFound.
	if _, err := uc.registry.Consume(ctx, input.ConnectionID); err != nil {
		return nil, domain.ErrConnectionNotFound
	}

	uc.logger.Info().
		Str("connection_id", input.ConnectionID).
		Str("wallet_address", payload.PublicKey).
		Msg("wallet connection completed")
	if uc.metrics != nil {
		uc.metrics.ConnectionsCompleted.Inc()
	}

	return &DecryptResult{
		WalletAddress: payload.PublicKey,
		Session:       payload.Session,
	}, nil
}

// StatusResult reports whether a connection is still pending. PublicKey
// is the dapp's own key, for polling clients; the secret never leaves.
type StatusResult struct {
	Exists    bool
	PublicKey string
}

// Status checks a pending connection without consuming it.
func (uc *ConnectUseCase) Status(ctx context.Context, connectionID string) (*StatusResult, error) {
	if connectionID == "" {
		return nil, domain.ErrMissingFields
	}

	conn, err := uc.registry.Get(ctx, connectionID)
	if errors.Is(err, domain.ErrConnectionNotFound) {
		return &StatusResult{Exists: false}, nil
	}
	if err != nil {
		return nil, err
	}

	publicKey := conn.PublicKey

	return &StatusResult{
		Exists:    true,
		PublicKey: cryptobox.EncodeKey(&publicKey),
	}, nil
}

func (uc *ConnectUseCase) failDecrypt(connectionID, reason string, err error) {
	uc.logger.Warn().
		Err(err).
		Str("connection_id", connectionID).
		Str("reason", reason).
		Msg("connect decrypt failed")

	if uc.metrics != nil {
		uc.metrics.DecryptFailures.WithLabelValues(reason).Inc()
	}
}
