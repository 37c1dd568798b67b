package models

import "github.com/pkg/errors"

var (
	ErrEmptyCart           = errors.New("Cart is empty.")
	ErrExpired             = errors.New("is expired.")
	ErrOutOfStock          = errors.New("is out of stock.")
	ErrInsufficientStock   = errors.New("Insufficient stock.")
	ErrInsufficientBalance = errors.New("Insufficient balance.")

	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuantity = errors.New("quantity must be > 0")
	ErrInvalidAmount   = errors.New("amount must be >= 0")
)

// ProductError ties an error kind to the product that triggered it.
type ProductError struct {
	Product string
	Err     error
}

func (e *ProductError) Error() string { return e.Product + " " + e.Err.Error() }

func (e *ProductError) Unwrap() error { return e.Err }

// Expired returns the error for an expired product named name.
func Expired(name string) error { return &ProductError{Product: name, Err: ErrExpired} }

// OutOfStock returns the error for a product named name without enough stock.
func OutOfStock(name string) error { return &ProductError{Product: name, Err: ErrOutOfStock} }

// kindError carries its own message while still matching kind with errors.Is.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// ErrCustomerBalance is returned when a customer cannot afford an order total.
var ErrCustomerBalance error = &kindError{msg: "Insufficient customer balance.", kind: ErrInsufficientBalance}
