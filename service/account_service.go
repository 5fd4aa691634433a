package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/metrics"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const accountCacheTTL = 10 * time.Minute

func accountCacheKey(accountID int64) string {
	return fmt.Sprintf("account:%d", accountID)
}

// AccountService owns account lifecycle and the single-account balance
// mutation path. Reads go through a cache-aside Redis layer; every mutation
// invalidates the affected account's cache entry.
type AccountService struct {
	accountRepo repository.IAccountRepository
	cache       ICacheClient
}

func NewAccountService(accountRepo repository.IAccountRepository, cache ICacheClient) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		cache:       cache,
	}
}

// GetAccount retrieves one account, utilizing a cache-aside strategy.
func (s *AccountService) GetAccount(ctx context.Context, accountID int64) (*model.Account, error) {
	key := accountCacheKey(accountID)

	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		var acc model.Account
		if err := json.Unmarshal([]byte(cached), &acc); err == nil {
			return &acc, nil
		}
	}

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if data, err := json.Marshal(account); err == nil {
		s.cache.Set(ctx, key, data, accountCacheTTL)
	}
	return account, nil
}

// ListAccounts retrieves all accounts. Caching is not applied so the listing
// is always fresh.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	return s.accountRepo.GetAllAccounts()
}

// CreateAccount opens a new account with an optional starting balance.
func (s *AccountService) CreateAccount(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error) {
	if req.Balance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	account := &model.Account{
		CustomerName: req.CustomerName,
		Balance:      req.Balance.RoundBank(4),
		CurrencyCode: req.CurrencyCode,
	}
	if err := s.accountRepo.CreateAccount(account); err != nil {
		return nil, fmt.Errorf("could not create account: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"account_id":    account.ID,
		"customer_name": account.CustomerName,
		"currency_code": account.CurrencyCode,
	}).Info("Account created")
	return account, nil
}

// DeleteAccount removes one account and invalidates its cache entry.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID int64) error {
	rows, err := s.accountRepo.DeleteAccount(accountID)
	if err != nil {
		return fmt.Errorf("could not delete account: %w", err)
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	s.cache.Del(ctx, accountCacheKey(accountID))
	return nil
}

// Deposit credits a positive amount to one account.
func (s *AccountService) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*model.Account, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	account, err := s.AdjustBalance(ctx, accountID, amount)
	metrics.BalanceAdjustments.WithLabelValues("deposit", outcomeFor(err)).Inc()
	return account, err
}

// Withdraw debits a positive amount from one account.
func (s *AccountService) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (*model.Account, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	account, err := s.AdjustBalance(ctx, accountID, amount.Neg())
	metrics.BalanceAdjustments.WithLabelValues("withdraw", outcomeFor(err)).Inc()
	return account, err
}

// AdjustBalance applies a signed delta to one account under an exclusive row
// lock. The operation is atomic: either the balance changes exactly once or
// not at all. Every failure surfaces as a typed error, never as an ambiguous
// update count.
func (s *AccountService) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal) (account *model.Account, err error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"delta":      delta,
	})
	log.Info("Starting balance adjustment")

	tx, err := s.accountRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("Rollback failed, unit of work consistency is no longer guaranteed")
			err = fmt.Errorf("%w: %v (while handling: %v)", ErrRollbackFailed, rbErr, err)
		}
	}()

	account, err = tx.LockAccount(accountID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			err = ErrAccountNotFound
		case errors.Is(err, repository.ErrLockTimeout):
			err = ErrLockTimeout
		}
		return nil, err
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		err = ErrInsufficientFunds
		return nil, err
	}

	rows, err := tx.UpdateBalance(accountID, newBalance)
	if err != nil {
		err = fmt.Errorf("could not update account balance: %w", err)
		return nil, err
	}
	if rows == 0 {
		err = fmt.Errorf("updating balance of account %d: %w", accountID, repository.ErrNoRowsAffected)
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("could not commit balance adjustment: %w", err)
		return nil, err
	}
	committed = true

	account.Balance = newBalance
	s.cache.Del(ctx, accountCacheKey(accountID))

	log.WithField("new_balance", newBalance).Info("Balance adjustment committed")
	return account, nil
}

// outcomeFor buckets an operation result for metrics labels.
func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrCurrencyMismatch),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrSenderAccountNotFound),
		errors.Is(err, ErrReceiverAccountNotFound),
		errors.Is(err, ErrSameAccountTransfer),
		errors.Is(err, ErrInvalidAmount):
		return "rejected"
	default:
		return "error"
	}
}
