package repository

import (
	"database/sql"
	"go-ledger-api/logger"
	"go-ledger-api/model"
)

// ICustomerRepository defines the contract for customer profile storage.
type ICustomerRepository interface {
	GetCustomerByID(customerID int64) (*model.Customer, error)
	GetCustomerByName(customerName string) (*model.Customer, error)
	GetAllCustomers() ([]*model.Customer, error)
	CreateCustomer(customer *model.Customer) error
	UpdateCustomer(customerID int64, customer *model.Customer) (int64, error)
	DeleteCustomer(customerID int64) (int64, error)
}

type CustomerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) GetCustomerByID(customerID int64) (*model.Customer, error) {
	customer := &model.Customer{}
	query := `SELECT id, customer_name, email_address, phone_number FROM customers WHERE id = $1`
	err := r.DB.QueryRow(query, customerID).Scan(&customer.ID, &customer.CustomerName, &customer.EmailAddress, &customer.PhoneNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get customer query")
		return nil, err
	}
	return customer, nil
}

func (r *CustomerRepository) GetCustomerByName(customerName string) (*model.Customer, error) {
	customer := &model.Customer{}
	query := `SELECT id, customer_name, email_address, phone_number FROM customers WHERE customer_name = $1`
	err := r.DB.QueryRow(query, customerName).Scan(&customer.ID, &customer.CustomerName, &customer.EmailAddress, &customer.PhoneNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get customer by name query")
		return nil, err
	}
	return customer, nil
}

func (r *CustomerRepository) GetAllCustomers() ([]*model.Customer, error) {
	query := `SELECT id, customer_name, email_address, phone_number FROM customers`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for all customers")
		return nil, err
	}
	defer rows.Close()

	var customers []*model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.CustomerName, &c.EmailAddress, &c.PhoneNumber); err != nil {
			logger.Log.WithError(err).Error("Failed to scan customer row")
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) CreateCustomer(customer *model.Customer) error {
	log := logger.Log.WithField("customer_name", customer.CustomerName)
	log.Info("Executing query to create a new customer")

	query := `INSERT INTO customers (customer_name, email_address, phone_number) VALUES ($1, $2, $3) RETURNING id`
	err := r.DB.QueryRow(query, customer.CustomerName, customer.EmailAddress, customer.PhoneNumber).Scan(&customer.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute create customer query")
		return err
	}
	return nil
}

func (r *CustomerRepository) UpdateCustomer(customerID int64, customer *model.Customer) (int64, error) {
	query := `UPDATE customers SET customer_name = $1, email_address = $2, phone_number = $3 WHERE id = $4`
	result, err := r.DB.Exec(query, customer.CustomerName, customer.EmailAddress, customer.PhoneNumber, customerID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute update customer query")
		return 0, err
	}
	return result.RowsAffected()
}

func (r *CustomerRepository) DeleteCustomer(customerID int64) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete customer query")
		return 0, err
	}
	return result.RowsAffected()
}
