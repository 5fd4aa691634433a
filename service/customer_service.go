package service

import (
	"context"
	"errors"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"
)

// CustomerService owns customer profile CRUD. This is thin plumbing around
// the customer store; no locking is involved.
type CustomerService struct {
	customerRepo repository.ICustomerRepository
}

func NewCustomerService(customerRepo repository.ICustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// GetCustomerByName looks one customer up by their unique name.
func (s *CustomerService) GetCustomerByName(ctx context.Context, customerName string) (*model.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByName(customerName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.GetAllCustomers()
}

// CreateCustomer adds a new customer profile. Customer names are unique, so a
// profile with a name that is already registered is rejected.
func (s *CustomerService) CreateCustomer(ctx context.Context, req model.CustomerRequest) (*model.Customer, error) {
	if _, err := s.customerRepo.GetCustomerByName(req.CustomerName); err == nil {
		return nil, ErrCustomerNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("could not check customer name: %w", err)
	}

	customer := &model.Customer{
		CustomerName: req.CustomerName,
		EmailAddress: req.EmailAddress,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := s.customerRepo.CreateCustomer(customer); err != nil {
		return nil, fmt.Errorf("could not create customer: %w", err)
	}
	logger.Log.WithField("customer_id", customer.ID).Info("Customer created")
	return customer, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID int64, req model.CustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		ID:           customerID,
		CustomerName: req.CustomerName,
		EmailAddress: req.EmailAddress,
		PhoneNumber:  req.PhoneNumber,
	}
	rows, err := s.customerRepo.UpdateCustomer(customerID, customer)
	if err != nil {
		return nil, fmt.Errorf("could not update customer: %w", err)
	}
	if rows == 0 {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	rows, err := s.customerRepo.DeleteCustomer(customerID)
	if err != nil {
		return fmt.Errorf("could not delete customer: %w", err)
	}
	if rows == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
