package store

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	models "pos-checkout/model"
)

// ProductRow is a catalog entry as stored by any source.
type ProductRow struct {
	ID        int64
	Kind      models.Kind
	Name      string
	Price     decimal.Decimal
	Stock     int
	WeightKg  decimal.NullDecimal
	ExpiresAt sql.NullTime
}

// ToProduct turns a row into its product variant.
func ToProduct(r ProductRow) (models.Product, error) {
	if !r.Kind.Valid() {
		return nil, errors.Wrapf(models.ErrInvalidProduct, "product %d: unknown kind %q", r.ID, r.Kind)
	}
	if r.Kind != models.KindDigital && !r.WeightKg.Valid {
		return nil, errors.Wrapf(models.ErrInvalidProduct, "product %d: %s product without weight", r.ID, r.Kind)
	}
	if r.Kind == models.KindPerishable && !r.ExpiresAt.Valid {
		return nil, errors.Wrapf(models.ErrInvalidProduct, "product %d: perishable product without expiry", r.ID)
	}

	var expiresAt time.Time
	if r.ExpiresAt.Valid {
		expiresAt = r.ExpiresAt.Time
	}
	attrs := models.Attrs{ID: r.ID, Name: r.Name, UnitPrice: r.Price, Stock: r.Stock}
	p, err := models.NewProduct(r.Kind, attrs, r.WeightKg.Decimal, expiresAt)
	if err != nil {
		return nil, errors.Wrapf(err, "product %d", r.ID)
	}
	return p, nil
}

// LoadCatalog reads every row of s and converts it.
func LoadCatalog(s Store) ([]models.Product, error) {
	rows, err := s.ListProducts()
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	out := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		p, err := ToProduct(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
