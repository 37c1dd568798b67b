package service

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pos-checkout/metrics"
	models "pos-checkout/model"
)

// CheckoutService validates a cart, charges the customer, takes stock and
// prints the shipment notice and receipt.
type CheckoutService struct {
	out      io.Writer
	shipping *ShippingService
	now      func() time.Time
	newID    func() string
	l        *zap.Logger
	metrics  *metrics.CheckoutMetrics
}

type Option func(*CheckoutService)

// WithClock sets the clock used for expiry checks and receipt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *CheckoutService) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *CheckoutService) { s.l = l.Named("checkout") }
}

func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(s *CheckoutService) { s.metrics = m }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *CheckoutService) { s.newID = newID }
}

func NewCheckoutService(out io.Writer, opts ...Option) *CheckoutService {
	s := &CheckoutService{
		out:      out,
		shipping: NewShippingService(out),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		l:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout runs the whole protocol. Every error is returned before customer or
// stock is touched.
func (s *CheckoutService) Checkout(customer *models.Customer, cart *models.Cart) (models.Receipt, error) {
	run := newCheckoutRun()
	run.advance(StateValidating)

	if err := s.validate(cart); err != nil {
		return s.reject(run, customer, err)
	}

	subtotal := cart.Subtotal()
	shipping := cart.ShippingFee()
	total := subtotal.Add(shipping)
	run.advance(StatePriced)

	if customer.Balance().LessThan(total) {
		return s.reject(run, customer, models.ErrCustomerBalance)
	}

	run.advance(StateCommitting)
	items := cart.Items()
	for _, it := range items {
		if err := it.Product.ReduceStock(it.Quantity); err != nil {
			// unreachable once validation passed
			panic(errors.Wrapf(err, "checkout: reduce stock of %s", it.Product.Name()))
		}
	}
	if err := customer.Debit(total); err != nil {
		panic(errors.Wrap(err, "checkout: debit"))
	}

	receipt := models.Receipt{
		ID:        s.newID(),
		Customer:  customer.Name(),
		Lines:     make([]models.ReceiptLine, 0, len(items)),
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     total,
		CreatedAt: s.now(),
	}
	l := s.l.With(zap.String("receipt_id", receipt.ID), zap.String("customer", customer.Name()))

	run.advance(StateShipping)
	if manifest := cart.ShippableManifest(); len(manifest) > 0 {
		notice, err := s.shipping.Ship(manifest)
		if err != nil {
			l.Warn("Failed write shipment notice", zap.Error(err))
		}
		receipt.Shipment = &notice
	}

	run.advance(StateReporting)
	for _, it := range items {
		receipt.Lines = append(receipt.Lines, models.ReceiptLine{
			Name:      it.Product.Name(),
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		})
	}
	if err := writeReceipt(s.out, receipt); err != nil {
		l.Warn("Failed write receipt", zap.Error(err))
	}

	run.advance(StateDone)
	s.metrics.Completed(total, receipt.Shipment != nil)
	l.Info("Checkout done",
		zap.Int("lines", len(receipt.Lines)),
		zap.Stringer("subtotal", subtotal),
		zap.Stringer("shipping", shipping),
		zap.Stringer("total", total),
		zap.Stringer("balance", customer.Balance()),
	)
	return receipt, nil
}

// validate checks lines one by one in cart order (expired, then out of stock),
// then checks the summed demand of products listed on several lines. A cart
// with an expired line and over-demanded duplicates therefore reports the
// expiry.
func (s *CheckoutService) validate(cart *models.Cart) error {
	if cart.IsEmpty() {
		return models.ErrEmptyCart
	}
	now := s.now()
	items := cart.Items()
	for _, it := range items {
		p := it.Product
		if p.IsExpired(now) {
			return models.Expired(p.Name())
		}
		if it.Quantity > p.Stock() {
			return models.OutOfStock(p.Name())
		}
	}
	// duplicate lines draw on the same stock
	demand := make(map[models.Product]int, len(items))
	for _, it := range items {
		p := it.Product
		demand[p] += it.Quantity
		if demand[p] > p.Stock() {
			return models.OutOfStock(p.Name())
		}
	}
	return nil
}

func (s *CheckoutService) reject(run *checkoutRun, customer *models.Customer, err error) (models.Receipt, error) {
	run.advance(StateRejected)
	s.metrics.Rejected(rejectReason(err))
	s.l.Info("Checkout rejected",
		zap.String("customer", customer.Name()),
		zap.String("state", string(run.trace[len(run.trace)-2])),
		zap.Error(err),
	)
	return models.Receipt{}, err
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, models.ErrExpired):
		return "expired"
	case errors.Is(err, models.ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, models.ErrInsufficientBalance):
		return "insufficient_balance"
	}
	return "other"
}

func writeReceipt(w io.Writer, r models.Receipt) error {
	var buf bytes.Buffer
	buf.WriteString("\n** Checkout receipt **\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&buf, "%dx %s\t%s\n", l.Quantity, l.Name, l.LineTotal)
	}
	buf.WriteString("----------------------\n")
	fmt.Fprintf(&buf, "Subtotal\t%s\n", r.Subtotal)
	fmt.Fprintf(&buf, "Shipping\t%s\n", r.Shipping)
	fmt.Fprintf(&buf, "Amount\t%s\n", r.Total)
	_, err := w.Write(buf.Bytes())
	return err
}
