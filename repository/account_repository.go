package repository

import (
	"context"
	"database/sql"
	"errors"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for the account store. It has one
// production implementation backed by Postgres and one in-memory
// implementation used by tests.
type IAccountRepository interface {
	GetAccountByID(accountID int64) (*model.Account, error)
	GetAllAccounts() ([]*model.Account, error)
	CreateAccount(account *model.Account) error
	DeleteAccount(accountID int64) (int64, error)
	BeginTx(ctx context.Context) (AccountTx, error)
}

// AccountTx is one all-or-nothing unit of work over the account store. Row
// locks taken through LockAccount are held until Commit or Rollback, both of
// which are terminal and release all underlying resources.
type AccountTx interface {
	// LockAccount takes an exclusive row lock and returns the locked account,
	// or ErrNotFound when no row matches. Blocks while another transaction
	// holds the lock; ErrLockTimeout when the store gives up waiting.
	LockAccount(accountID int64) (*model.Account, error)
	// UpdateBalance overwrites one account's balance and reports rows affected.
	UpdateBalance(accountID int64, newBalance decimal.Decimal) (int64, error)
	// TransferBalances overwrites both balances of a transfer as a single
	// batched write and reports total rows affected (2 on success).
	TransferBalances(fromID int64, fromBalance decimal.Decimal, toID int64, toBalance decimal.Decimal) (int64, error)
	Commit() error
	Rollback() error
}

// AccountRepository is the Postgres-backed account store.
type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

// GetAccountByID retrieves one account without taking a lock.
func (r *AccountRepository) GetAccountByID(accountID int64) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)

	account := &model.Account{}
	query := `SELECT id, customer_name, balance, currency_code FROM accounts WHERE id = $1`
	err := r.DB.QueryRow(query, accountID).Scan(&account.ID, &account.CustomerName, &account.Balance, &account.CurrencyCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		log.WithError(err).Error("Failed to execute get account query")
		return nil, err
	}
	return account, nil
}

// GetAllAccounts retrieves every account. Order is not guaranteed.
func (r *AccountRepository) GetAllAccounts() ([]*model.Account, error) {
	query := `SELECT id, customer_name, balance, currency_code FROM accounts`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for all accounts")
		return nil, err
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		var acc model.Account
		if err := rows.Scan(&acc.ID, &acc.CustomerName, &acc.Balance, &acc.CurrencyCode); err != nil {
			logger.Log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		accounts = append(accounts, &acc)
	}
	return accounts, rows.Err()
}

// CreateAccount adds a new account and fills in the generated id.
func (r *AccountRepository) CreateAccount(account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_name": account.CustomerName,
		"currency_code": account.CurrencyCode,
	})
	log.Info("Executing query to create a new account")

	query := `INSERT INTO accounts (customer_name, balance, currency_code) VALUES ($1, $2, $3) RETURNING id`
	err := r.DB.QueryRow(query, account.CustomerName, account.Balance, account.CurrencyCode).Scan(&account.ID)
	if err != nil {
		// Scan fails when RETURNING yields no row, so no id means an error here
		log.WithError(err).Error("Failed to execute create account query")
		return err
	}
	return nil
}

// DeleteAccount removes one account and reports rows affected (0 or 1).
func (r *AccountRepository) DeleteAccount(accountID int64) (int64, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to delete account")

	result, err := r.DB.Exec(`DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete account query")
		return 0, err
	}
	return result.RowsAffected()
}

// BeginTx opens a transaction boundary. Auto-commit is disabled for the
// lifetime of the returned AccountTx.
func (r *AccountRepository) BeginTx(ctx context.Context) (AccountTx, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to begin transaction")
		return nil, err
	}
	return &accountTx{tx: tx}, nil
}

type accountTx struct {
	tx *sql.Tx
}

func (t *accountTx) LockAccount(accountID int64) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to lock account for update")

	account := &model.Account{}
	query := `SELECT id, customer_name, balance, currency_code FROM accounts WHERE id = $1 FOR UPDATE`
	err := t.tx.QueryRow(query, accountID).Scan(&account.ID, &account.CustomerName, &account.Balance, &account.CurrencyCode)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found for update")
			return nil, ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "55P03" {
			log.WithError(err).Warn("Lock wait timed out for account row")
			return nil, ErrLockTimeout
		}
		log.WithError(err).Error("Failed to execute lock account query")
		return nil, err
	}
	return account, nil
}

func (t *accountTx) UpdateBalance(accountID int64, newBalance decimal.Decimal) (int64, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  accountID,
		"new_balance": newBalance,
	})
	log.Info("Executing query to update account balance")

	result, err := t.tx.Exec(`UPDATE accounts SET balance = $1 WHERE id = $2`, newBalance, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update account balance query")
		return 0, err
	}
	return result.RowsAffected()
}

func (t *accountTx) TransferBalances(fromID int64, fromBalance decimal.Decimal, toID int64, toBalance decimal.Decimal) (int64, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from_account_id": fromID,
		"to_account_id":   toID,
	})
	log.Info("Executing batched query to update both transfer balances")

	query := `UPDATE accounts
		SET balance = CASE id WHEN $1 THEN $2::numeric WHEN $3 THEN $4::numeric END
		WHERE id IN ($1, $3)`
	result, err := t.tx.Exec(query, fromID, fromBalance, toID, toBalance)
	if err != nil {
		log.WithError(err).Error("Failed to execute transfer balances query")
		return 0, err
	}
	return result.RowsAffected()
}

func (t *accountTx) Commit() error {
	return t.tx.Commit()
}

func (t *accountTx) Rollback() error {
	return t.tx.Rollback()
}
