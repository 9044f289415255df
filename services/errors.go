package services

import "errors"

// Recoverable domain errors. Controllers map these to HTTP responses,
// nothing in the service layer terminates the process.
var (
	ErrItemNotFound        = errors.New("food item not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidStatusChange = errors.New("invalid order status change")
	ErrPaymentDeclined     = errors.New("payment was declined")
	ErrSeededUser          = errors.New("default accounts cannot be deleted")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidRole         = errors.New("unknown role")
)
