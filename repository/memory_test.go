package repository

import (
	"context"
	"go-ledger-api/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAccountRepository_CRUD(t *testing.T) {
	repo := NewMemoryAccountRepository()

	acc := &model.Account{CustomerName: "Test", Balance: decimal.RequireFromString("10.0000"), CurrencyCode: "GBP"}
	require.NoError(t, repo.CreateAccount(acc))
	assert.Equal(t, int64(1), acc.ID)

	got, err := repo.GetAccountByID(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", got.CustomerName)

	all, err := repo.GetAllAccounts()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	rows, err := repo.DeleteAccount(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.DeleteAccount(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	_, err = repo.GetAccountByID(acc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAccountRepository_TxStagesWritesUntilCommit(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	acc := &model.Account{CustomerName: "Test", Balance: decimal.RequireFromString("100.0000"), CurrencyCode: "EUR"}
	require.NoError(t, repo.CreateAccount(acc))

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	locked, err := tx.LockAccount(acc.ID)
	require.NoError(t, err)
	assert.True(t, locked.Balance.Equal(decimal.RequireFromString("100.0000")))

	rows, err := tx.UpdateBalance(acc.ID, decimal.RequireFromString("150.0000"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	require.NoError(t, tx.Commit())

	after, err := repo.GetAccountByID(acc.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.RequireFromString("150.0000")))
}

func TestMemoryAccountRepository_TxRollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	acc := &model.Account{CustomerName: "Test", Balance: decimal.RequireFromString("100.0000"), CurrencyCode: "EUR"}
	require.NoError(t, repo.CreateAccount(acc))

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	_, err = tx.LockAccount(acc.ID)
	require.NoError(t, err)
	_, err = tx.UpdateBalance(acc.ID, decimal.RequireFromString("0.0000"))
	require.NoError(t, err)

	require.NoError(t, tx.Rollback())

	after, err := repo.GetAccountByID(acc.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.RequireFromString("100.0000")))
}

func TestMemoryAccountRepository_ReadsServeCommittedValueWithoutBlocking(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	acc := &model.Account{CustomerName: "Test", Balance: decimal.RequireFromString("100.0000"), CurrencyCode: "EUR"}
	require.NoError(t, repo.CreateAccount(acc))

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.LockAccount(acc.ID)
	require.NoError(t, err)
	_, err = tx.UpdateBalance(acc.ID, decimal.RequireFromString("150.0000"))
	require.NoError(t, err)

	// while the row lock is held with a staged write, a non-locking read
	// returns the last committed value instead of waiting
	during, err := repo.GetAccountByID(acc.ID)
	require.NoError(t, err)
	assert.True(t, during.Balance.Equal(decimal.RequireFromString("100.0000")))

	all, err := repo.GetAllAccounts()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Balance.Equal(decimal.RequireFromString("100.0000")))

	require.NoError(t, tx.Commit())

	after, err := repo.GetAccountByID(acc.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.RequireFromString("150.0000")))
}

func TestMemoryAccountRepository_TxGuards(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	acc := &model.Account{CustomerName: "Test", Balance: decimal.RequireFromString("100.0000"), CurrencyCode: "EUR"}
	require.NoError(t, repo.CreateAccount(acc))

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	// writes require a held row lock
	_, err = tx.UpdateBalance(acc.ID, decimal.RequireFromString("50.0000"))
	assert.Error(t, err)

	// locking an unknown account reports absence
	_, err = tx.LockAccount(999)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, tx.Rollback())

	// a closed transaction rejects further use
	_, err = tx.LockAccount(acc.ID)
	assert.Error(t, err)
	assert.Error(t, tx.Commit())
}
