package service

import (
	"context"
	"errors"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/metrics"
	"go-ledger-api/model"
	"go-ledger-api/repository"

	"github.com/sirupsen/logrus"
)

// TransferService coordinates atomic two-account moves. Both row locks are
// acquired inside a single transaction boundary and both balance writes
// commit together or not at all.
type TransferService struct {
	accountRepo repository.IAccountRepository
	cache       ICacheClient
}

func NewTransferService(accountRepo repository.IAccountRepository, cache ICacheClient) *TransferService {
	return &TransferService{
		accountRepo: accountRepo,
		cache:       cache,
	}
}

// Transfer moves req.Amount from the source to the destination account.
// Validation failures are detected before any write and leave both balances
// untouched. Locks are taken in ascending account id order so two transfers
// racing on the same pair in opposite directions cannot deadlock.
func (s *TransferService) Transfer(ctx context.Context, req model.TransferRequest) (err error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from_account_id": req.FromAccountID,
		"to_account_id":   req.ToAccountID,
		"amount":          req.Amount,
		"currency_code":   req.CurrencyCode,
	})
	log.Info("Starting transfer")

	defer func() {
		metrics.Transfers.WithLabelValues(outcomeFor(err)).Inc()
	}()

	if !req.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if req.FromAccountID == req.ToAccountID {
		return ErrSameAccountTransfer
	}

	tx, err := s.accountRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
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

	firstID, secondID := req.FromAccountID, req.ToAccountID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	locked := make(map[int64]*model.Account, 2)
	for _, id := range []int64{firstID, secondID} {
		account, lockErr := tx.LockAccount(id)
		if lockErr != nil {
			switch {
			case errors.Is(lockErr, repository.ErrNotFound):
				if id == req.FromAccountID {
					err = ErrSenderAccountNotFound
				} else {
					err = ErrReceiverAccountNotFound
				}
			case errors.Is(lockErr, repository.ErrLockTimeout):
				err = ErrLockTimeout
			default:
				err = lockErr
			}
			return err
		}
		locked[id] = account
	}
	fromAccount := locked[req.FromAccountID]
	toAccount := locked[req.ToAccountID]

	if fromAccount.CurrencyCode != req.CurrencyCode {
		err = ErrCurrencyMismatch
		return err
	}
	if fromAccount.CurrencyCode != toAccount.CurrencyCode {
		err = ErrCurrencyMismatch
		return err
	}

	leftOver := fromAccount.Balance.Sub(req.Amount)
	if leftOver.IsNegative() {
		err = ErrInsufficientFunds
		return err
	}

	rows, err := tx.TransferBalances(req.FromAccountID, leftOver, req.ToAccountID, toAccount.Balance.Add(req.Amount))
	if err != nil {
		err = fmt.Errorf("could not update transfer balances: %w", err)
		return err
	}
	if rows != 2 {
		err = fmt.Errorf("expected 2 rows updated for transfer, got %d: %w", rows, repository.ErrNoRowsAffected)
		return err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("could not commit transfer: %w", err)
		return err
	}
	committed = true

	s.cache.Del(ctx, accountCacheKey(req.FromAccountID), accountCacheKey(req.ToAccountID))

	log.Info("Transfer committed successfully")
	return nil
}
