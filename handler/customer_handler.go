package handler

import (
	"encoding/json"
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
	"strconv"
)

type CustomerHandler struct {
	service *service.CustomerService
}

func NewCustomerHandler(s *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

func parseCustomerID(r *http.Request) (int64, *common.AppError) {
	customerID, err := strconv.ParseInt(r.PathValue("customerId"), 10, 64)
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid customer ID in URL path", err)
	}
	return customerID, nil
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) *common.AppError {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve customers", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(customers)
	return nil
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, appErr := parseCustomerID(r)
	if appErr != nil {
		return appErr
	}

	customer, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve customer", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(customer)
	return nil
}

func (h *CustomerHandler) GetCustomerByName(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerName := r.PathValue("customerName")

	customer, err := h.service.GetCustomerByName(r.Context(), customerName)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve customer", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(customer)
	return nil
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CustomerRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	customer, err := h.service.CreateCustomer(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNameTaken) {
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create customer", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
	return nil
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, appErr := parseCustomerID(r)
	if appErr != nil {
		return appErr
	}

	var req model.CustomerRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	customer, err := h.service.UpdateCustomer(r.Context(), customerID, req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update customer", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(customer)
	return nil
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, appErr := parseCustomerID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete customer", err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
