package service

import (
	"bytes"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	models "pos-checkout/model"
	"pos-checkout/store"
)

var (
	ErrUnknownCustomer = errors.New("customer not found")
	ErrUnknownProduct  = errors.New("product not found")
	ErrCustomerExists  = errors.New("customer already registered")
	ErrNameRequired    = errors.New("name required")
)

type session struct {
	customer *models.Customer
	cart     *models.Cart
}

// Service keeps the catalog and one cart per registered customer in memory.
// Every call holds one mutex, so the catalog has a single mutator at a time.
type Service struct {
	mu       sync.Mutex
	catalog  map[int64]models.Product
	nextID   int64
	sessions map[string]*session

	opts []Option
	now  func() time.Time
	l    *zap.Logger
}

// NewService loads the catalog from st. opts configure every checkout run.
func NewService(st store.Store, l *zap.Logger, opts ...Option) (*Service, error) {
	if l == nil {
		l = zap.NewNop()
	}
	products, err := store.LoadCatalog(st)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	cfg := CheckoutService{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Service{
		catalog:  make(map[int64]models.Product, len(products)),
		sessions: map[string]*session{},
		opts:     append([]Option{WithLogger(l)}, opts...),
		now:      cfg.now,
		l:        l.Named("service"),
	}
	for _, p := range products {
		if _, dup := s.catalog[p.ID()]; dup {
			return nil, errors.Errorf("duplicate product id %d", p.ID())
		}
		s.catalog[p.ID()] = p
		if p.ID() > s.nextID {
			s.nextID = p.ID()
		}
	}
	s.l.Info("Catalog loaded", zap.Int("products", len(products)))
	return s, nil
}

func (s *Service) CreateProduct(in ProductInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID + 1
	attrs := models.Attrs{ID: id, Name: in.Name, UnitPrice: in.Price, Stock: in.Stock}
	var expiresAt time.Time
	if in.ExpiresAt != nil {
		expiresAt = *in.ExpiresAt
	} else if in.Kind == models.KindPerishable {
		return 0, errors.Wrap(models.ErrInvalidProduct, "expires_at required")
	}
	p, err := models.NewProduct(in.Kind, attrs, in.WeightKg, expiresAt)
	if err != nil {
		return 0, err
	}
	s.catalog[id] = p
	s.nextID = id
	return id, nil
}

func (s *Service) ListProducts() []ProductDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]ProductDTO, 0, len(s.catalog))
	for _, p := range s.catalog {
		out = append(out, toProductDTO(p, now))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Service) RegisterCustomer(name string, balance decimal.Decimal) error {
	if name == "" {
		return ErrNameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[name]; ok {
		return ErrCustomerExists
	}
	c, err := models.NewCustomer(name, balance)
	if err != nil {
		return err
	}
	s.sessions[name] = &session{customer: c, cart: models.NewCart()}
	return nil
}

func (s *Service) AddToCart(customer string, productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(customer)
	if err != nil {
		return err
	}
	p, ok := s.catalog[productID]
	if !ok {
		return ErrUnknownProduct
	}
	return sess.cart.Add(p, qty)
}

func (s *Service) RemoveFromCart(customer string, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(customer)
	if err != nil {
		return err
	}
	if sess.cart.Remove(productID) == 0 {
		return ErrUnknownProduct
	}
	return nil
}

func (s *Service) GetCart(customer string) (CartDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(customer)
	if err != nil {
		return CartDTO{}, err
	}
	out := CartDTO{
		Customer: customer,
		Items:    make([]CartItemDTO, 0, sess.cart.Len()),
		Subtotal: sess.cart.Subtotal(),
		Shipping: sess.cart.ShippingFee(),
		Balance:  sess.customer.Balance(),
	}
	for _, it := range sess.cart.Items() {
		out.Items = append(out.Items, CartItemDTO{
			ProductID: it.Product.ID(),
			Name:      it.Product.Name(),
			Quantity:  it.Quantity,
			Price:     it.Product.UnitPrice(),
			LineTotal: it.LineTotal(),
		})
	}
	return out, nil
}

// Checkout runs a checkout for customer's cart and empties the cart on success.
func (s *Service) Checkout(customer string) (OrderDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(customer)
	if err != nil {
		return OrderDTO{}, err
	}
	var buf bytes.Buffer
	receipt, err := NewCheckoutService(&buf, s.opts...).Checkout(sess.customer, sess.cart)
	if err != nil {
		return OrderDTO{}, err
	}
	sess.cart.Clear()
	return OrderDTO{Receipt: receipt, Balance: sess.customer.Balance(), Printout: buf.String()}, nil
}

func (s *Service) session(customer string) (*session, error) {
	sess, ok := s.sessions[customer]
	if !ok {
		return nil, ErrUnknownCustomer
	}
	return sess, nil
}

// DTOs
type ProductInput struct {
	Kind      models.Kind     `json:"kind"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	WeightKg  decimal.Decimal `json:"weight_kg"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

type ProductDTO struct {
	ID        int64            `json:"id"`
	Kind      models.Kind      `json:"kind"`
	Name      string           `json:"name"`
	Price     decimal.Decimal  `json:"price"`
	Stock     int              `json:"stock"`
	WeightKg  *decimal.Decimal `json:"weight_kg,omitempty"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
	Expired   bool             `json:"expired"`
}

func toProductDTO(p models.Product, now time.Time) ProductDTO {
	d := ProductDTO{
		ID:      p.ID(),
		Kind:    p.Kind(),
		Name:    p.Name(),
		Price:   p.UnitPrice(),
		Stock:   p.Stock(),
		Expired: p.IsExpired(now),
	}
	if sh, ok := models.AsShippable(p); ok {
		w := sh.UnitWeightKg()
		d.WeightKg = &w
	}
	if pp, ok := p.(*models.Perishable); ok {
		e := pp.ExpiresAt()
		d.ExpiresAt = &e
	}
	return d
}

type CartItemDTO struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartDTO struct {
	Customer string          `json:"customer"`
	Items    []CartItemDTO   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Balance  decimal.Decimal `json:"balance"`
}

type OrderDTO struct {
	Receipt  models.Receipt  `json:"receipt"`
	Balance  decimal.Decimal `json:"balance"`
	Printout string          `json:"printout"`
}
