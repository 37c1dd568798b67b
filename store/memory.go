package store

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	models "pos-checkout/model"
)

// MemoryStore serves a fixed set of rows.
type MemoryStore struct {
	Rows []ProductRow
}

func NewMemoryStore(rows ...ProductRow) *MemoryStore { return &MemoryStore{Rows: rows} }

func (s *MemoryStore) ListProducts() ([]ProductRow, error) {
	out := make([]ProductRow, len(s.Rows))
	copy(out, s.Rows)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

// SampleCatalog is the demo catalog. Cheese expires a day after now.
func SampleCatalog(now time.Time) *MemoryStore {
	kg := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }
	return NewMemoryStore(
		ProductRow{ID: 1, Kind: models.KindPerishable, Name: "Cheese", Price: decimal.NewFromInt(100), Stock: 10,
			WeightKg: kg("0.2"), ExpiresAt: sql.NullTime{Time: now.Add(24 * time.Hour), Valid: true}},
		ProductRow{ID: 2, Kind: models.KindShippable, Name: "Biscuits", Price: decimal.NewFromInt(150), Stock: 5, WeightKg: kg("0.7")},
		ProductRow{ID: 3, Kind: models.KindShippable, Name: "TV", Price: decimal.NewFromInt(1000), Stock: 3, WeightKg: kg("10")},
		ProductRow{ID: 4, Kind: models.KindDigital, Name: "Scratch Card", Price: decimal.NewFromInt(50), Stock: 100},
	)
}
