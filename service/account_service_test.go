package service

import (
	"context"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, repo *repository.MemoryAccountRepository, name, balance, currency string) *model.Account {
	t.Helper()
	acc := &model.Account{
		CustomerName: name,
		Balance:      decimal.RequireFromString(balance),
		CurrencyCode: currency,
	}
	require.NoError(t, repo.CreateAccount(acc))
	return acc
}

func TestAccountService_AdjustBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("deposit then withdraw returns to the original balance", func(t *testing.T) {
		repo := repository.NewMemoryAccountRepository()
		accountService := NewAccountService(repo, stubCache{})
		acc := seedAccount(t, repo, "Allen", "1000.0000", "CNY")

		updated, err := accountService.Deposit(ctx, acc.ID, decimal.RequireFromString("50.0000"))
		require.NoError(t, err)
		assert.True(t, updated.Balance.Equal(decimal.RequireFromString("1050.0000")))

		updated, err = accountService.Withdraw(ctx, acc.ID, decimal.RequireFromString("50.0000"))
		require.NoError(t, err)
		assert.True(t, updated.Balance.Equal(decimal.RequireFromString("1000.0000")))
	})

	t.Run("withdrawal beyond the balance fails and leaves the row unchanged", func(t *testing.T) {
		repo := repository.NewMemoryAccountRepository()
		accountService := NewAccountService(repo, stubCache{})
		acc := seedAccount(t, repo, "Allen", "1000.0000", "CNY")

		_, err := accountService.AdjustBalance(ctx, acc.ID, decimal.RequireFromString("-50000.0000"))
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		after, err := accountService.GetAccount(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, after.Balance.Equal(decimal.RequireFromString("1000.0000")))
	})

	t.Run("unknown account cannot be locked", func(t *testing.T) {
		repo := repository.NewMemoryAccountRepository()
		accountService := NewAccountService(repo, stubCache{})

		_, err := accountService.AdjustBalance(ctx, 42, decimal.RequireFromString("10.0000"))
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("non-positive amounts are rejected before any transaction opens", func(t *testing.T) {
		repo := repository.NewMemoryAccountRepository()
		accountService := NewAccountService(repo, stubCache{})
		acc := seedAccount(t, repo, "Allen", "1000.0000", "CNY")

		_, err := accountService.Deposit(ctx, acc.ID, decimal.RequireFromString("-5"))
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = accountService.Withdraw(ctx, acc.ID, decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestAccountService_GetAccount(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryAccountRepository()
	accountService := NewAccountService(repo, stubCache{})
	acc := seedAccount(t, repo, "Diana", "3000.0000", "EUR")

	t.Run("read is idempotent without intervening mutation", func(t *testing.T) {
		first, err := accountService.GetAccount(ctx, acc.ID)
		require.NoError(t, err)
		second, err := accountService.GetAccount(ctx, acc.ID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.CustomerName, second.CustomerName)
		assert.Equal(t, first.CurrencyCode, second.CurrencyCode)
		assert.True(t, first.Balance.Equal(second.Balance))
	})

	t.Run("absent account maps to not found", func(t *testing.T) {
		_, err := accountService.GetAccount(ctx, 999)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryAccountRepository()
	accountService := NewAccountService(repo, stubCache{})

	t.Run("success assigns an id and rounds the opening balance", func(t *testing.T) {
		account, err := accountService.CreateAccount(ctx, model.CreateAccountRequest{
			CustomerName: "Test",
			Balance:      decimal.RequireFromString("10.00005"),
			CurrencyCode: "GBP",
		})
		require.NoError(t, err)
		assert.NotZero(t, account.ID)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("10.0000")))
	})

	t.Run("negative opening balance is rejected", func(t *testing.T) {
		_, err := accountService.CreateAccount(ctx, model.CreateAccountRequest{
			CustomerName: "Test",
			Balance:      decimal.RequireFromString("-1"),
			CurrencyCode: "GBP",
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestAccountService_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryAccountRepository()
	accountService := NewAccountService(repo, stubCache{})
	acc := seedAccount(t, repo, "Carl", "2000.0000", "CNY")

	require.NoError(t, accountService.DeleteAccount(ctx, acc.ID))

	_, err := accountService.GetAccount(ctx, acc.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	assert.ErrorIs(t, accountService.DeleteAccount(ctx, acc.ID), ErrAccountNotFound)
}
