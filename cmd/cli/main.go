package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/wihngo/wallet/internal/adapter/intent"
	"github.com/wihngo/wallet/internal/adapter/phantom"
	solanaadapter "github.com/wihngo/wallet/internal/adapter/solana"
	"github.com/wihngo/wallet/internal/domain"
	"github.com/wihngo/wallet/internal/infrastructure/idempotency"
	"github.com/wihngo/wallet/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wihngo-wallet",
		Short: "Wihngo wallet CLI tool",
		Long:  `A command line interface for the Wihngo wallet connection and donation flows.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	connectCmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect a Phantom wallet through the deep-link flow",
		Run: func(cmd *cobra.Command, args []string) {
			runConnect()
		},
	}
	rootCmd.AddCommand(connectCmd)

	var (
		userID       string
		birdID       string
		wallet       string
		birdAmount   string
		wihngoAmount string
		rpcURL       string
		mint         string
		intentURL    string
	)

	donateCmd := &cobra.Command{
		Use:   "donate",
		Short: "Run a USDC donation end to end",
		Run: func(cmd *cobra.Command, args []string) {
			runDonate(donateParams{
				userID:       userID,
				birdID:       birdID,
				wallet:       wallet,
				birdAmount:   birdAmount,
				wihngoAmount: wihngoAmount,
				rpcURL:       rpcURL,
				mint:         mint,
				intentURL:    intentURL,
			})
		},
	}
	donateCmd.Flags().StringVar(&userID, "user", "", "Donating user ID")
	donateCmd.Flags().StringVar(&birdID, "bird", "", "Bird ID to donate to")
	donateCmd.Flags().StringVar(&wallet, "wallet", "", "Donor wallet address")
	donateCmd.Flags().StringVar(&birdAmount, "amount", "", "USDC amount for the bird")
	donateCmd.Flags().StringVar(&wihngoAmount, "tip", "0", "USDC amount for Wihngo")
	donateCmd.Flags().StringVar(&rpcURL, "rpc", "https://api.mainnet-beta.solana.com", "Solana RPC URL")
	donateCmd.Flags().StringVar(&mint, "mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", "USDC mint address")
	donateCmd.Flags().StringVar(&intentURL, "intent-url", "http://localhost:9090", "Payment intent service URL")
	donateCmd.MarkFlagRequired("user")
	donateCmd.MarkFlagRequired("bird")
	donateCmd.MarkFlagRequired("wallet")
	donateCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(donateCmd)

	statusCmd := &cobra.Command{
		Use:   "status [connectionID]",
		Short: "Check a pending connection",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runStatus(args[0])
		},
	}
	rootCmd.AddCommand(statusCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runConnect() {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Post(baseURL+"/api/v1/phantom/connect/init", "application/json", nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Init FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var init struct {
		ConnectionID  string `json:"connectionId"`
		DappPublicKey string `json:"dappPublicKey"`
	}
	if err := json.Unmarshal(body, &init); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	params := url.Values{}
	params.Set("dapp_encryption_public_key", init.DappPublicKey)
	params.Set("cluster", "mainnet-beta")
	params.Set("app_url", "https://wihngo.com")
	params.Set("redirect_link", phantom.CallbackURL("https://wihngo.com", ""))

	fmt.Printf("Connection ID: %s\n", init.ConnectionID)
	fmt.Printf("Open this link in Phantom:\n\n  %s\n\n", phantom.BuildURL("connect", params))

	callbackRaw := prompt("Paste the callback URL Phantom redirected to: ")
	result := phantom.ParseCallback(callbackRaw)
	if !result.Success() {
		fmt.Printf("Wallet returned error %s: %s\n", result.Err.Code, result.Err.Message)
		os.Exit(1)
	}

	decryptBody, _ := json.Marshal(map[string]string{
		"connectionId":               init.ConnectionID,
		"phantomEncryptionPublicKey": result.EncryptionPublicKey,
		"data":                       result.Data,
		"nonce":                      result.Nonce,
	})

	resp2, err := client.Post(baseURL+"/api/v1/phantom/connect/decrypt", "application/json", bytes.NewReader(decryptBody))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp2.Body.Close()

	body2, _ := io.ReadAll(resp2.Body)
	if resp2.StatusCode != http.StatusOK {
		fmt.Printf("Decrypt FAILED (Status: %d)\nResponse: %s\n", resp2.StatusCode, string(body2))
		os.Exit(1)
	}

	var decrypted map[string]any
	if err := json.Unmarshal(body2, &decrypted); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Wallet connected")
	printJSON(decrypted)
}

func runStatus(connectionID string) {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + "/api/v1/phantom/connect/" + connectionID)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var status map[string]any
	if err := json.Unmarshal(body, &status); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(status)
}

type donateParams struct {
	userID       string
	birdID       string
	wallet       string
	birdAmount   string
	wihngoAmount string
	rpcURL       string
	mint         string
	intentURL    string
}

func runDonate(p donateParams) {
	birdAmt, err := decimal.NewFromString(p.birdAmount)
	if err != nil {
		fmt.Printf("Invalid amount: %v\n", err)
		os.Exit(1)
	}
	wihngoAmt, err := decimal.NewFromString(p.wihngoAmount)
	if err != nil {
		fmt.Printf("Invalid tip: %v\n", err)
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	balances, err := solanaadapter.NewBalanceChecker(p.rpcURL, p.mint, log)
	if err != nil {
		fmt.Printf("Invalid mint: %v\n", err)
		os.Exit(1)
	}

	keyStorePath := os.Getenv("WIHNGO_KEY_CACHE")
	if keyStorePath == "" {
		keyStorePath = os.TempDir() + "/wihngo-idempotency.json"
	}

	uc := usecase.NewDonationUseCase(
		balances,
		intent.NewClient(p.intentURL, timeout, log),
		&promptSigner{},
		solanaadapter.NewSubmitter(p.rpcURL, log),
		solanaadapter.NewConfirmationWaiter(p.rpcURL, 90*time.Second, log),
		idempotency.NewCache(idempotency.NewFileStore(keyStorePath), log),
		nil,
		log,
	)

	donation := &domain.Donation{
		UserID:        p.userID,
		BirdID:        p.birdID,
		BirdAmount:    birdAmt,
		WihngoAmount:  wihngoAmt,
		WalletAddress: p.wallet,
	}

	tracker := usecase.NewProgressTracker(domain.NetworkMainnet)
	stop := tracker.Watch(context.Background(), func(s usecase.ProgressSnapshot) {
		line := fmt.Sprintf("[%3d%%] %s", s.Progress, s.Step)
		if s.Stall.Advisory {
			line += " - " + s.Stall.Message
			if s.Stall.ExplorerURL != "" {
				line += " " + s.Stall.ExplorerURL
			}
		}
		fmt.Println(line)
	})
	defer stop()

	receipt, err := uc.Submit(context.Background(), donation, tracker)
	if err != nil {
		fmt.Printf("Donation failed at %s: %v\n", tracker.Step(), err)
		os.Exit(1)
	}

	fmt.Println("Donation confirmed")
	printJSON(map[string]string{
		"referenceId": receipt.ReferenceID,
		"signature":   receipt.Signature,
		"amount":      receipt.Amount.StringFixed(6),
		"explorer":    domain.ExplorerTxURL(receipt.Signature, domain.NetworkMainnet),
	})
}

// promptSigner hands the unsigned transaction to the user's wallet by
// hand: print it, wait for the signed transaction to be pasted back.
type promptSigner struct{}

func (s *promptSigner) SignTransaction(ctx context.Context, intent *domain.PaymentIntent) (string, error) {
	fmt.Printf("\nUnsigned transaction (intent %s, expires %s):\n\n  %s\n\n",
		intent.ID, intent.ExpiresAt.Format(time.RFC3339), intent.UnsignedTx)

	signed := prompt("Paste the signed transaction (base64): ")
	if signed == "" {
		return "", domain.ErrTransactionFailed
	}

	return signed, nil
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')

	return strings.TrimSpace(line)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
