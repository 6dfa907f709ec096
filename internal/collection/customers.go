package collection

import (
	"context"

	"github.com/roach88/innkeep/internal/model"
)

// CustomerStore is the durable side of a Customers collection.
type CustomerStore interface {
	LoadCustomers(ctx context.Context) ([]model.Customer, error)
	InsertCustomer(ctx context.Context, c model.Customer) error
}

// Customers is the in-memory customer list. Customers are never deleted.
type Customers struct {
	*Collection[model.Customer]
}

// LoadCustomers creates a customer list holding every stored customer in
// insertion order.
func LoadCustomers(ctx context.Context, st CustomerStore) (*Customers, error) {
	rows, err := st.LoadCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return &Customers{Collection: New[model.Customer](st.InsertCustomer, rows)}, nil
}
