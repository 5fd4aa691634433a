package repository

import (
	"context"
	"errors"
	"go-ledger-api/model"
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryAccountRepository is an in-memory IAccountRepository used by tests.
// It reproduces the store's pessimistic locking semantics: each account row
// carries its own mutex, LockAccount blocks until the holder commits or rolls
// back, and writes are staged until Commit. Non-locking reads never wait on a
// row lock; like the production store they serve the last committed value.
type MemoryAccountRepository struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*memoryAccount
}

type memoryAccount struct {
	mu      sync.Mutex // the row lock, held for a whole transaction
	val     sync.Mutex // guards account so committed-value reads skip the row lock
	account model.Account
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[int64]*memoryAccount)}
}

func (r *MemoryAccountRepository) row(accountID int64) *memoryAccount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[accountID]
}

func (r *MemoryAccountRepository) GetAccountByID(accountID int64) (*model.Account, error) {
	row := r.row(accountID)
	if row == nil {
		return nil, ErrNotFound
	}
	row.val.Lock()
	defer row.val.Unlock()
	acc := row.account
	return &acc, nil
}

func (r *MemoryAccountRepository) GetAllAccounts() ([]*model.Account, error) {
	r.mu.Lock()
	rows := make([]*memoryAccount, 0, len(r.accounts))
	for _, row := range r.accounts {
		rows = append(rows, row)
	}
	r.mu.Unlock()

	accounts := make([]*model.Account, 0, len(rows))
	for _, row := range rows {
		row.val.Lock()
		acc := row.account
		row.val.Unlock()
		accounts = append(accounts, &acc)
	}
	return accounts, nil
}

func (r *MemoryAccountRepository) CreateAccount(account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	account.ID = r.nextID
	r.accounts[account.ID] = &memoryAccount{account: *account}
	return nil
}

func (r *MemoryAccountRepository) DeleteAccount(accountID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[accountID]; !ok {
		return 0, nil
	}
	delete(r.accounts, accountID)
	return 1, nil
}

func (r *MemoryAccountRepository) BeginTx(ctx context.Context) (AccountTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memoryTx{
		repo:   r,
		locked: make(map[int64]*memoryAccount),
		staged: make(map[int64]decimal.Decimal),
	}, nil
}

type memoryTx struct {
	repo      *MemoryAccountRepository
	locked    map[int64]*memoryAccount
	lockOrder []int64
	staged    map[int64]decimal.Decimal
	closed    bool
}

var errTxClosed = errors.New("transaction already closed")

func (t *memoryTx) LockAccount(accountID int64) (*model.Account, error) {
	if t.closed {
		return nil, errTxClosed
	}
	if row, ok := t.locked[accountID]; ok {
		acc := row.account
		return &acc, nil
	}
	row := t.repo.row(accountID)
	if row == nil {
		return nil, ErrNotFound
	}
	row.mu.Lock()
	t.locked[accountID] = row
	t.lockOrder = append(t.lockOrder, accountID)
	acc := row.account
	return &acc, nil
}

func (t *memoryTx) UpdateBalance(accountID int64, newBalance decimal.Decimal) (int64, error) {
	if t.closed {
		return 0, errTxClosed
	}
	if _, ok := t.locked[accountID]; !ok {
		return 0, errors.New("account row is not locked by this transaction")
	}
	t.staged[accountID] = newBalance
	return 1, nil
}

func (t *memoryTx) TransferBalances(fromID int64, fromBalance decimal.Decimal, toID int64, toBalance decimal.Decimal) (int64, error) {
	if _, err := t.UpdateBalance(fromID, fromBalance); err != nil {
		return 0, err
	}
	if _, err := t.UpdateBalance(toID, toBalance); err != nil {
		return 0, err
	}
	return 2, nil
}

func (t *memoryTx) Commit() error {
	if t.closed {
		return errTxClosed
	}
	for id, balance := range t.staged {
		row := t.locked[id]
		row.val.Lock()
		row.account.Balance = balance
		row.val.Unlock()
	}
	t.release()
	return nil
}

func (t *memoryTx) Rollback() error {
	if t.closed {
		return nil
	}
	t.release()
	return nil
}

// release unlocks held rows in reverse acquisition order and closes the tx.
func (t *memoryTx) release() {
	for i := len(t.lockOrder) - 1; i >= 0; i-- {
		t.locked[t.lockOrder[i]].mu.Unlock()
	}
	t.closed = true
}
