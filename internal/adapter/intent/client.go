// Package intent is the HTTP client for the payment intent service,
// which builds unsigned USDC transfer transactions for donations.
package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wihngo/wallet/internal/domain"
)

const intentsPath = "/api/v1/payments/intents"

// Client calls the intent service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "intent_client").Logger(),
	}
}

type createIntentRequest struct {
	UserID        string          `json:"user_id"`
	BirdID        string          `json:"bird_id"`
	BirdAmount    decimal.Decimal `json:"bird_amount"`
	WihngoAmount  decimal.Decimal `json:"wihngo_amount"`
	WalletAddress string          `json:"wallet_address"`
}

type createIntentResponse struct {
	ID               string          `json:"id"`
	RecipientAddress string          `json:"recipient_address"`
	Amount           decimal.Decimal `json:"amount"`
	UnsignedTx       string          `json:"unsigned_tx"`
	ExpiresAt        time.Time       `json:"expires_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateIntent asks the service for an unsigned transaction covering
// the donation. The idempotency key makes repeated submissions of the
// same donation within a minute return the same intent.
func (c *Client) CreateIntent(ctx context.Context, donation *domain.Donation, idempotencyKey string) (*domain.PaymentIntent, error) {
	body, err := json.Marshal(createIntentRequest{
		UserID:        donation.UserID,
		BirdID:        donation.BirdID,
		BirdAmount:    donation.BirdAmount,
		WihngoAmount:  donation.WihngoAmount,
		WalletAddress: donation.WalletAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+intentsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call intent service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read intent response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("intent service returned %d: %s", resp.StatusCode, errResp.Error)
		}

		return nil, fmt.Errorf("intent service returned %d", resp.StatusCode)
	}

	var payload createIntentResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("decode intent response: %w", err)
	}

	c.logger.Debug().
		Str("intent_id", payload.ID).
		Str("bird_id", donation.BirdID).
		Msg("payment intent created")

	return &domain.PaymentIntent{
		ID:               payload.ID,
		RecipientAddress: payload.RecipientAddress,
		Amount:           payload.Amount,
		UnsignedTx:       payload.UnsignedTx,
		ExpiresAt:        payload.ExpiresAt,
	}, nil
}
