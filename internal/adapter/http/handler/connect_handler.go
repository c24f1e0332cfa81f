package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wihngo/wallet/internal/adapter/http/dto"
	"github.com/wihngo/wallet/internal/usecase"
)

// ConnectService defines the behavior needed by ConnectHandler.
type ConnectService interface {
	Init(ctx context.Context) (*usecase.InitResult, error)
	Decrypt(ctx context.Context, input usecase.DecryptInput) (*usecase.DecryptResult, error)
	Status(ctx context.Context, connectionID string) (*usecase.StatusResult, error)
}

// ConnectHandler handles wallet connection HTTP requests.
type ConnectHandler struct {
	connectUC ConnectService
}

// NewConnectHandler creates a new ConnectHandler.
func NewConnectHandler(connectUC ConnectService) *ConnectHandler {
	return &ConnectHandler{connectUC: connectUC}
}

// Init starts a wallet connection handshake.
func (h *ConnectHandler) Init(w http.ResponseWriter, r *http.Request) {
	result, err := h.connectUC.Init(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to initiate connection", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ConnectInitFromResult(result))
}

// Decrypt opens the wallet's encrypted connect response.
func (h *ConnectHandler) Decrypt(w http.ResponseWriter, r *http.Request) {
	var req dto.DecryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.connectUC.Decrypt(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to decrypt wallet response", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DecryptFromResult(result))
}

// Status reports whether a connection is still pending.
func (h *ConnectHandler) Status(w http.ResponseWriter, r *http.Request) {
	connectionID := chi.URLParam(r, "connectionID")
	if connectionID == "" {
		writeError(w, http.StatusBadRequest, "missing connection ID", "")
		return
	}

	result, err := h.connectUC.Status(r.Context(), connectionID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to check connection status", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.StatusFromResult(result))
}
