package models

import "github.com/shopspring/decimal"

// ShippingRatePerKg is the shipping fee charged per kilogram.
var ShippingRatePerKg = decimal.NewFromInt(10)

type CartItem struct {
	Product  Product
	Quantity int
}

func (it CartItem) LineTotal() decimal.Decimal {
	return it.Product.UnitPrice().Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ManifestLine is one shippable cart line handed to shipping.
type ManifestLine struct {
	Item     Shippable
	Quantity int
}

func (l ManifestLine) WeightKg() decimal.Decimal {
	return l.Item.UnitWeightKg().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps line items in insertion order. Products are shared, not owned.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart { return &Cart{} }

// Add appends a line without reserving stock. Lines for the same product are
// kept separate.
func (c *Cart) Add(p Product, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if qty > p.Stock() {
		return ErrInsufficientStock
	}
	c.items = append(c.items, CartItem{Product: p, Quantity: qty})
	return nil
}

// Remove drops every line for productID and returns how many were removed.
func (c *Cart) Remove(productID int64) int {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.Product.ID() != productID {
			kept = append(kept, it)
		}
	}
	removed := len(c.items) - len(kept)
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = CartItem{}
	}
	c.items = kept
	return removed
}

func (c *Cart) Clear() { c.items = nil }

// Items returns a copy of the cart lines.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int      { return len(c.items) }
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

func (c *Cart) ShippingFee() decimal.Decimal {
	fee := decimal.Zero
	for _, l := range c.ShippableManifest() {
		fee = fee.Add(l.WeightKg().Mul(ShippingRatePerKg))
	}
	return fee
}

func (c *Cart) ShippableManifest() []ManifestLine {
	var out []ManifestLine
	for _, it := range c.items {
		if s, ok := AsShippable(it.Product); ok {
			out = append(out, ManifestLine{Item: s, Quantity: it.Quantity})
		}
	}
	return out
}
