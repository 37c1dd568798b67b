package models

import "github.com/shopspring/decimal"

type Customer struct {
	name    string
	balance decimal.Decimal
}

func NewCustomer(name string, balance decimal.Decimal) (*Customer, error) {
	if balance.IsNegative() {
		return nil, ErrInvalidAmount
	}
	return &Customer{name: name, balance: balance}, nil
}

func (c *Customer) Name() string             { return c.name }
func (c *Customer) Balance() decimal.Decimal { return c.balance }

// Debit takes amount off the balance. There is no overdraft.
func (c *Customer) Debit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(c.balance) {
		return ErrInsufficientBalance
	}
	c.balance = c.balance.Sub(amount)
	return nil
}
