package model

type Customer struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
}
