package service

import "github.com/shopspring/decimal"

type ServiceInterface interface {
	CreateProduct(in ProductInput) (int64, error)
	ListProducts() []ProductDTO
	RegisterCustomer(name string, balance decimal.Decimal) error
	AddToCart(customer string, productID int64, qty int) error
	RemoveFromCart(customer string, productID int64) error
	GetCart(customer string) (CartDTO, error)
	Checkout(customer string) (OrderDTO, error)
}
