package models

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Kind tags the closed family of product variants.
type Kind string

const (
	KindPerishable Kind = "perishable"
	KindShippable  Kind = "shippable"
	KindDigital    Kind = "digital"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPerishable, KindShippable, KindDigital:
		return true
	}
	return false
}

// Product is a catalog entry. ReduceStock is its only mutator.
type Product interface {
	ID() int64
	Name() string
	UnitPrice() decimal.Decimal
	Stock() int
	Kind() Kind
	IsExpired(now time.Time) bool
	IsShippable() bool
	ReduceStock(n int) error
}

// Shippable is the view of a product that physically ships.
type Shippable interface {
	Name() string
	UnitWeightKg() decimal.Decimal
}

// AsShippable returns the shipping view of p when p ships.
func AsShippable(p Product) (Shippable, bool) {
	if !p.IsShippable() {
		return nil, false
	}
	s, ok := p.(Shippable)
	return s, ok
}

// Attrs are the attributes shared by every product variant.
type Attrs struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
}

func (a Attrs) validate() error {
	if a.Name == "" {
		return errors.Wrap(ErrInvalidProduct, "name required")
	}
	if a.UnitPrice.IsNegative() {
		return errors.Wrap(ErrInvalidProduct, "price must be >= 0")
	}
	if a.Stock < 0 {
		return errors.Wrap(ErrInvalidProduct, "stock cannot be negative")
	}
	return nil
}

type base struct {
	id        int64
	name      string
	unitPrice decimal.Decimal
	stock     int
}

func newBase(a Attrs) (base, error) {
	if err := a.validate(); err != nil {
		return base{}, err
	}
	return base{id: a.ID, name: a.Name, unitPrice: a.UnitPrice, stock: a.Stock}, nil
}

func (b *base) ID() int64                  { return b.id }
func (b *base) Name() string               { return b.name }
func (b *base) UnitPrice() decimal.Decimal { return b.unitPrice }
func (b *base) Stock() int                 { return b.stock }

func (b *base) ReduceStock(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if n > b.stock {
		return ErrInsufficientStock
	}
	b.stock -= n
	return nil
}

func validateWeight(w decimal.Decimal) error {
	if !w.IsPositive() {
		return errors.Wrap(ErrInvalidProduct, "weight must be > 0")
	}
	return nil
}

// Perishable goods expire and always ship.
type Perishable struct {
	base
	weightKg  decimal.Decimal
	expiresAt time.Time
}

func NewPerishable(a Attrs, weightKg decimal.Decimal, expiresAt time.Time) (*Perishable, error) {
	b, err := newBase(a)
	if err != nil {
		return nil, err
	}
	if err := validateWeight(weightKg); err != nil {
		return nil, err
	}
	return &Perishable{base: b, weightKg: weightKg, expiresAt: expiresAt}, nil
}

func (p *Perishable) Kind() Kind                    { return KindPerishable }
func (p *Perishable) ExpiresAt() time.Time          { return p.expiresAt }
func (p *Perishable) UnitWeightKg() decimal.Decimal { return p.weightKg }
func (p *Perishable) IsShippable() bool             { return true }

// IsExpired reports whether now is strictly after the expiry instant.
func (p *Perishable) IsExpired(now time.Time) bool { return now.After(p.expiresAt) }

// ShippableProduct is a non-perishable physical good.
type ShippableProduct struct {
	base
	weightKg decimal.Decimal
}

func NewShippable(a Attrs, weightKg decimal.Decimal) (*ShippableProduct, error) {
	b, err := newBase(a)
	if err != nil {
		return nil, err
	}
	if err := validateWeight(weightKg); err != nil {
		return nil, err
	}
	return &ShippableProduct{base: b, weightKg: weightKg}, nil
}

func (p *ShippableProduct) Kind() Kind                    { return KindShippable }
func (p *ShippableProduct) UnitWeightKg() decimal.Decimal { return p.weightKg }
func (p *ShippableProduct) IsExpired(time.Time) bool      { return false }
func (p *ShippableProduct) IsShippable() bool             { return true }

// Digital goods are delivered without shipping.
type Digital struct {
	base
}

func NewDigital(a Attrs) (*Digital, error) {
	b, err := newBase(a)
	if err != nil {
		return nil, err
	}
	return &Digital{base: b}, nil
}

func (p *Digital) Kind() Kind               { return KindDigital }
func (p *Digital) IsExpired(time.Time) bool { return false }
func (p *Digital) IsShippable() bool        { return false }

// NewProduct builds the variant named by kind. weightKg is ignored for digital
// goods and expiresAt is only used by perishables.
func NewProduct(kind Kind, a Attrs, weightKg decimal.Decimal, expiresAt time.Time) (Product, error) {
	var (
		p   Product
		err error
	)
	switch kind {
	case KindPerishable:
		p, err = NewPerishable(a, weightKg, expiresAt)
	case KindShippable:
		p, err = NewShippable(a, weightKg)
	case KindDigital:
		p, err = NewDigital(a)
	default:
		return nil, errors.Wrapf(ErrInvalidProduct, "unknown kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
