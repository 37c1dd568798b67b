package store

// Store is a read-only catalog source. Stock and balance changes made by a
// checkout are never written back.
type Store interface {
	ListProducts() ([]ProductRow, error)

	Close() error
}
