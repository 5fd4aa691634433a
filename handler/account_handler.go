package handler

import (
	"encoding/json"
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(service *service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

func parseAccountID(r *http.Request) (int64, *common.AppError) {
	accountID, err := strconv.ParseInt(r.PathValue("accountId"), 10, 64)
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}
	return accountID, nil
}

// parseAmount reads a decimal amount path segment and rounds it half-even to
// scale 4 before it reaches the core, which performs exact arithmetic only.
func parseAmount(r *http.Request) (decimal.Decimal, *common.AppError) {
	amount, err := decimal.NewFromString(r.PathValue("amount"))
	if err != nil {
		return decimal.Zero, common.NewAppError(http.StatusBadRequest, "Invalid amount in URL path", err)
	}
	return amount.RoundBank(4), nil
}

// ListAccounts handles the request to list every account.
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve accounts", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(accounts)
	return nil
}

// GetAccount handles the request to fetch one account by id.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, appErr := parseAccountID(r)
	if appErr != nil {
		return appErr
	}

	account, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve account", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

// GetBalance handles the request to fetch one account's balance.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, appErr := parseAccountID(r)
	if appErr != nil {
		return appErr
	}

	account, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve account balance", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]decimal.Decimal{"balance": account.Balance})
	return nil
}

// CreateAccount handles the request to open a new account.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateAccountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	log := logger.Log.WithFields(logrus.Fields{
		"customer_name": req.CustomerName,
		"currency_code": req.CurrencyCode,
	})
	log.Info("Create account request received")

	account, err := h.service.CreateAccount(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create account", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(account)
	return nil
}

// DeleteAccount handles the request to remove an account.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, appErr := parseAccountID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteAccount(r.Context(), accountID); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete account", err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

// Deposit handles the request to credit an account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.adjust(w, r, false)
}

// Withdraw handles the request to debit an account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.adjust(w, r, true)
}

func (h *AccountHandler) adjust(w http.ResponseWriter, r *http.Request, withdraw bool) *common.AppError {
	accountID, appErr := parseAccountID(r)
	if appErr != nil {
		return appErr
	}
	amount, appErr := parseAmount(r)
	if appErr != nil {
		return appErr
	}

	var account *model.Account
	var err error
	if withdraw {
		account, err = h.service.Withdraw(r.Context(), accountID, amount)
	} else {
		account, err = h.service.Deposit(r.Context(), accountID, amount)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case errors.Is(err, service.ErrInsufficientFunds), errors.Is(err, service.ErrInvalidAmount):
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, service.ErrLockTimeout):
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not adjust account balance", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}
