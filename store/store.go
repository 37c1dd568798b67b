package store

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	models "pos-checkout/model"
)

// PostgresStore reads the catalog from a products table (see migrations.sql).
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	DB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := DB.Ping(); err != nil {
		_ = DB.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return &PostgresStore{DB: DB}, nil
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

// Migrate applies the schema in ddl.
func (s *PostgresStore) Migrate(ddl string) error {
	_, err := s.DB.Exec(ddl)
	return errors.Wrap(err, "migrate")
}

func (s *PostgresStore) ListProducts() ([]ProductRow, error) {
	rows, err := s.DB.Query(`SELECT id, kind, name, price, stock, weight_kg, expires_at FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ProductRow{}
	for rows.Next() {
		var p ProductRow
		var kind string
		if err := rows.Scan(&p.ID, &kind, &p.Name, &p.Price, &p.Stock, &p.WeightKg, &p.ExpiresAt); err != nil {
			return nil, err
		}
		p.Kind = models.Kind(kind)
		out = append(out, p)
	}
	return out, rows.Err()
}
