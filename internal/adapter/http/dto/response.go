package dto

import "github.com/wihngo/wallet/internal/usecase"

// ConnectInitResponse is returned when a handshake starts.
type ConnectInitResponse struct {
	ConnectionID  string `json:"connectionId"`
	DappPublicKey string `json:"dappPublicKey"`
}

// ConnectInitFromResult converts usecase output to a response.
func ConnectInitFromResult(r *usecase.InitResult) ConnectInitResponse {
	return ConnectInitResponse{
		ConnectionID:  r.ConnectionID,
		DappPublicKey: r.DappPublicKey,
	}
}

// DecryptResponse is the opened wallet response.
type DecryptResponse struct {
	Success       bool   `json:"success"`
	WalletAddress string `json:"walletAddress"`
	Session       string `json:"session,omitempty"`
}

// DecryptFromResult converts usecase output to a response.
func DecryptFromResult(r *usecase.DecryptResult) DecryptResponse {
	return DecryptResponse{
		Success:       true,
		WalletAddress: r.WalletAddress,
		Session:       r.Session,
	}
}

// StatusResponse reports whether a connection is still pending.
type StatusResponse struct {
	Exists    bool   `json:"exists"`
	PublicKey string `json:"publicKey,omitempty"`
}

// StatusFromResult converts usecase output to a response.
func StatusFromResult(r *usecase.StatusResult) StatusResponse {
	return StatusResponse{
		Exists:    r.Exists,
		PublicKey: r.PublicKey,
	}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
