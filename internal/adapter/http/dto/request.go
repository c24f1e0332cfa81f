package dto

import "github.com/wihngo/wallet/internal/usecase"

// DecryptRequest carries the wallet's encrypted connect response back
// to the server.
type DecryptRequest struct {
	ConnectionID               string `json:"connectionId"`
	PhantomEncryptionPublicKey string `json:"phantomEncryptionPublicKey"`
	Data                       string `json:"data"`
	Nonce                      string `json:"nonce"`
}

// ToUseCaseInput converts the request to usecase input.
func (r DecryptRequest) ToUseCaseInput() usecase.DecryptInput {
	return usecase.DecryptInput{
		ConnectionID:    r.ConnectionID,
		WalletPublicKey: r.PhantomEncryptionPublicKey,
		Data:            r.Data,
		Nonce:           r.Nonce,
	}
}
