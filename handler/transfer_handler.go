package handler

import (
	"encoding/json"
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
	"time"
)

// TransferHandler holds dependencies for transfer-related handlers.
type TransferHandler struct {
	service *service.TransferService
}

func NewTransferHandler(s *service.TransferService) *TransferHandler {
	return &TransferHandler{service: s}
}

// CreateTransfer handles the transfer of a specified amount from one account
// to another. The amount is rounded half-even to scale 4 before the core
// sees it.
func (h *TransferHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransferRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	req.Amount = req.Amount.RoundBank(4)
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now()
	}

	if err := h.service.Transfer(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrSenderAccountNotFound), errors.Is(err, service.ErrReceiverAccountNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case errors.Is(err, service.ErrInsufficientFunds),
			errors.Is(err, service.ErrCurrencyMismatch),
			errors.Is(err, service.ErrSameAccountTransfer),
			errors.Is(err, service.ErrInvalidAmount):
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, service.ErrLockTimeout):
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not process transfer", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "transfer completed"})
	return nil
}
