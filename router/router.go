package router

import (
	"go-ledger-api/handler"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(accountHandler *handler.AccountHandler, transferHandler *handler.TransferHandler, customerHandler *handler.CustomerHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /accounts", handler.ErrorHandlingMiddleware(accountHandler.ListAccounts))
	mux.Handle("POST /accounts", handler.ErrorHandlingMiddleware(accountHandler.CreateAccount))
	mux.Handle("GET /accounts/{accountId}", handler.ErrorHandlingMiddleware(accountHandler.GetAccount))
	mux.Handle("GET /accounts/{accountId}/balance", handler.ErrorHandlingMiddleware(accountHandler.GetBalance))
	mux.Handle("DELETE /accounts/{accountId}", handler.ErrorHandlingMiddleware(accountHandler.DeleteAccount))
	mux.Handle("PUT /accounts/{accountId}/deposit/{amount}", handler.ErrorHandlingMiddleware(accountHandler.Deposit))
	mux.Handle("PUT /accounts/{accountId}/withdraw/{amount}", handler.ErrorHandlingMiddleware(accountHandler.Withdraw))

	mux.Handle("POST /transfers", handler.ErrorHandlingMiddleware(transferHandler.CreateTransfer))

	mux.Handle("GET /customers", handler.ErrorHandlingMiddleware(customerHandler.ListCustomers))
	mux.Handle("POST /customers", handler.ErrorHandlingMiddleware(customerHandler.CreateCustomer))
	mux.Handle("GET /customers/{customerId}", handler.ErrorHandlingMiddleware(customerHandler.GetCustomer))
	mux.Handle("GET /customers/name/{customerName}", handler.ErrorHandlingMiddleware(customerHandler.GetCustomerByName))
	mux.Handle("PUT /customers/{customerId}", handler.ErrorHandlingMiddleware(customerHandler.UpdateCustomer))
	mux.Handle("DELETE /customers/{customerId}", handler.ErrorHandlingMiddleware(customerHandler.DeleteCustomer))

	return mux
}
