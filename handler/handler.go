package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	models "pos-checkout/model"
	"pos-checkout/service"
)

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc     service.ServiceInterface
	metrics http.Handler
	l       *zap.Logger
}

// NewHandler returns a Handler instance. metrics may be nil.
func NewHandler(s service.ServiceInterface, metrics http.Handler, l *zap.Logger) *Handler {
	if l == nil {
		l = zap.NewNop()
	}
	return &Handler{svc: s, metrics: metrics, l: l.Named("http")}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Products
	r.HandleFunc("/products", h.CreateProduct).Methods("POST")
	r.HandleFunc("/products/list", h.ListProducts).Methods("GET")

	// Customers
	r.HandleFunc("/customers", h.RegisterCustomer).Methods("POST")

	// Cart
	r.HandleFunc("/cart/add", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/remove", h.RemoveFromCart).Methods("POST")
	r.HandleFunc("/cart/list", h.ListCart).Methods("GET")

	// Checkout
	r.HandleFunc("/checkout/order", h.Checkout).Methods("POST")

	if h.metrics != nil {
		r.Handle("/metrics", h.metrics).Methods("GET")
	}
}

// --- request / response shapes ---
type registerCustomerReq struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type addRemoveCartReq struct {
	Customer  string `json:"customer"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity,omitempty"` // optional for remove
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeServiceErr maps service and checkout errors to HTTP codes.
func (h *Handler) writeServiceErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownCustomer), errors.Is(err, service.ErrUnknownProduct):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCustomerExists):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrExpired),
		errors.Is(err, models.ErrOutOfStock),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrInsufficientBalance):
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrInvalidProduct),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, service.ErrNameRequired):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		h.l.Error("Unexpected service error", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// --- Handler ---

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price.IsNegative() {
		writeErr(w, http.StatusBadRequest, "price must be >= 0")
		return
	}

	id, err := h.svc.CreateProduct(req)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// ListProducts handles GET /products/list
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListProducts())
}

// RegisterCustomer handles POST /customers
// body: { "name": "...", "balance": 2000 }
func (h *Handler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req registerCustomerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := h.svc.RegisterCustomer(req.Name, req.Balance); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// AddToCart handles POST /cart/add
// body: { "customer": "...", "product_id": 1, "quantity": 2 }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addRemoveCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Customer == "" {
		writeErr(w, http.StatusBadRequest, "customer is required")
		return
	}
	if req.Quantity <= 0 {
		writeErr(w, http.StatusBadRequest, "quantity must be > 0")
		return
	}
	if err := h.svc.AddToCart(req.Customer, req.ProductID, req.Quantity); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveFromCart handles POST /cart/remove
// body: { "customer": "...", "product_id": 1 }
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req addRemoveCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Customer == "" {
		writeErr(w, http.StatusBadRequest, "customer is required")
		return
	}
	if err := h.svc.RemoveFromCart(req.Customer, req.ProductID); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ListCart handles GET /cart/list?customer=...
func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request) {
	customer := r.URL.Query().Get("customer")
	if customer == "" {
		writeErr(w, http.StatusBadRequest, "customer required")
		return
	}
	cart, err := h.svc.GetCart(customer)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Checkout handles POST /checkout/order
// body: { "customer": "..." }
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Customer string `json:"customer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Customer == "" {
		writeErr(w, http.StatusBadRequest, "customer required")
		return
	}
	ord, err := h.svc.Checkout(req.Customer)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ord)
}
