package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type ShipmentLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Grams    decimal.Decimal `json:"grams"`
}

type ShipmentNotice struct {
	Lines         []ShipmentLine  `json:"lines"`
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
}

// Receipt is the outcome of a successful checkout.
type Receipt struct {
	ID        string          `json:"id"`
	Customer  string          `json:"customer"`
	Lines     []ReceiptLine   `json:"lines"`
	Shipment  *ShipmentNotice `json:"shipment,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
