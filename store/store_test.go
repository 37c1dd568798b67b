package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	models "pos-checkout/model"
)

const listProductsSQL = `SELECT id, kind, name, price, stock, weight_kg, expires_at FROM products ORDER BY id`

func TestListProducts_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	s := &PostgresStore{DB: db}

	expires := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "kind", "name", "price", "stock", "weight_kg", "expires_at"}).
		AddRow(int64(1), "perishable", "Cheese", "100.00", 10, "0.200", expires).
		AddRow(int64(2), "shippable", "Biscuits", "150.00", 5, "0.700", nil).
		AddRow(int64(4), "digital", "Scratch Card", "50.00", 100, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(listProductsSQL)).WillReturnRows(rows)

	got, err := s.ListProducts()
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got[0].Kind != models.KindPerishable || !got[0].ExpiresAt.Valid || !got[0].ExpiresAt.Time.Equal(expires) {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if !got[1].WeightKg.Valid || !got[1].WeightKg.Decimal.Equal(decimal.RequireFromString("0.7")) {
		t.Fatalf("unexpected weight: %+v", got[1].WeightKg)
	}
	if got[2].WeightKg.Valid || got[2].ExpiresAt.Valid {
		t.Fatalf("expected null weight and expiry for digital row: %+v", got[2])
	}
	if !got[2].Price.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected price: %s", got[2].Price)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListProducts_QueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := &PostgresStore{DB: db}

	boom := errors.New("db down")
	mock.ExpectQuery(regexp.QuoteMeta(listProductsSQL)).WillReturnError(boom)

	if _, err := s.ListProducts(); !errors.Is(err, boom) {
		t.Fatalf("expected db error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadCatalog_FromPostgres(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := &PostgresStore{DB: db}

	rows := sqlmock.NewRows([]string{"id", "kind", "name", "price", "stock", "weight_kg", "expires_at"}).
		AddRow(int64(3), "shippable", "TV", "1000", 3, "10", nil)
	mock.ExpectQuery(regexp.QuoteMeta(listProductsSQL)).WillReturnRows(rows)

	ps, err := LoadCatalog(s)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(ps) != 1 || ps[0].Name() != "TV" || ps[0].Stock() != 3 || !ps[0].IsShippable() {
		t.Fatalf("unexpected catalog: %+v", ps)
	}
}

func TestMigrate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := &PostgresStore{DB: db}

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS products`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := s.Migrate(`CREATE TABLE IF NOT EXISTS products (id BIGSERIAL)`); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
