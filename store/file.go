package store

import (
	"database/sql"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	models "pos-checkout/model"
)

// FileStore reads the catalog from a YAML file:
//
//	products:
//	  - id: 1
//	    kind: perishable
//	    name: Cheese
//	    price: 100
//	    stock: 10
//	    weight_kg: 0.2
//	    expires_at: 2026-12-31T00:00:00Z
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

type fileCatalog struct {
	Products []fileProduct `yaml:"products"`
}

type fileProduct struct {
	ID        int64      `yaml:"id"`
	Kind      string     `yaml:"kind"`
	Name      string     `yaml:"name"`
	Price     string     `yaml:"price"`
	Stock     int        `yaml:"stock"`
	WeightKg  string     `yaml:"weight_kg"`
	ExpiresAt *time.Time `yaml:"expires_at"`
}

func (s *FileStore) ListProducts() ([]ProductRow, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	return parseCatalog(data)
}

func (s *FileStore) Close() error { return nil }

func parseCatalog(data []byte) ([]ProductRow, error) {
	var c fileCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}
	out := make([]ProductRow, 0, len(c.Products))
	for i, p := range c.Products {
		row := ProductRow{ID: p.ID, Kind: models.Kind(p.Kind), Name: p.Name, Stock: p.Stock}
		if row.ID == 0 {
			row.ID = int64(i + 1)
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "product %q: price", p.Name)
		}
		row.Price = price
		if p.WeightKg != "" {
			w, err := decimal.NewFromString(p.WeightKg)
			if err != nil {
				return nil, errors.Wrapf(err, "product %q: weight_kg", p.Name)
			}
			row.WeightKg = decimal.NewNullDecimal(w)
		}
		if p.ExpiresAt != nil {
			row.ExpiresAt = sql.NullTime{Time: *p.ExpiresAt, Valid: true}
		}
		out = append(out, row)
	}
	return out, nil
}
