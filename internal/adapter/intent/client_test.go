package intent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wihngo/wallet/internal/adapter/intent"
	"github.com/wihngo/wallet/internal/domain"
)

func testDonation() *domain.Donation {
	return &domain.Donation{
		UserID:        "user-1",
		BirdID:        "bird-1",
		BirdAmount:    decimal.NewFromFloat(5.50),
		WihngoAmount:  decimal.NewFromFloat(0.50),
		WalletAddress: "4Nd1mYvGo6kDxyz111111111111111111111111111",
	}
}

func TestCreateIntent(t *testing.T) {
	var gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/payments/intents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":                "intent-42",
			"recipient_address": "recipient111111111111111111111111111111111",
			"amount":            "6.00",
			"unsigned_tx":       "dW5zaWduZWQ=",
			"expires_at":        time.Now().Add(5 * time.Minute).Format(time.RFC3339),
		})
	}))
	defer srv.Close()

	client := intent.NewClient(srv.URL, 5*time.Second, zerolog.Nop())

	got, err := client.CreateIntent(context.Background(), testDonation(), "abcdef0123456789abcdef0123456789")
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}

	if gotKey != "abcdef0123456789abcdef0123456789" {
		t.Errorf("Idempotency-Key = %s", gotKey)
	}
	if gotBody["user_id"] != "user-1" || gotBody["bird_id"] != "bird-1" {
		t.Errorf("request body = %+v", gotBody)
	}
	if got.ID != "intent-42" {
		t.Errorf("intent ID = %s", got.ID)
	}
	if got.UnsignedTx != "dW5zaWduZWQ=" {
		t.Errorf("unsigned tx = %s", got.UnsignedTx)
	}
	if !got.Amount.Equal(decimal.NewFromFloat(6.00)) {
		t.Errorf("amount = %s", got.Amount)
	}
}

func TestCreateIntentServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "recipient wallet not configured"})
	}))
	defer srv.Close()

	client := intent.NewClient(srv.URL, 5*time.Second, zerolog.Nop())

	_, err := client.CreateIntent(context.Background(), testDonation(), "key")
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "recipient wallet not configured"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not mention %q", err.Error(), want)
	}
}

func TestCreateIntentMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := intent.NewClient(srv.URL, 5*time.Second, zerolog.Nop())

	if _, err := client.CreateIntent(context.Background(), testDonation(), "key"); err == nil {
		t.Fatal("expected decode error")
	}
}
