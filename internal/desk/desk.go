// Package desk is the front desk of innkeep: the one object a presentation
// layer talks to.
//
// A Desk owns the store connection for its lifetime and the booking and
// customer collections loaded from it. Text input is NFC-normalized before
// it reaches a collection, so a name typed decomposed still deletes the
// bookings stored under its composed form.
package desk

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/innkeep/internal/collection"
	"github.com/roach88/innkeep/internal/model"
	"github.com/roach88/innkeep/internal/store"
)

// Desk holds the open store and the in-memory collections mirroring it.
type Desk struct {
	store     *store.Store
	bookings  *collection.Bookings
	customers *collection.Customers
	logger    *slog.Logger
}

// Open opens the database at path and loads every booking and customer.
// A nil logger discards all log output.
//
// Storage that cannot be opened is reported as a *store.InitError.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Desk, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}

	d := &Desk{store: st, logger: logger}
	if err := d.Reload(ctx); err != nil {
		st.Close()
		return nil, err
	}

	logger.Debug("desk opened",
		"path", path,
		"bookings", d.bookings.Len(),
		"customers", d.customers.Len(),
	)
	return d, nil
}

// Close releases the store connection.
func (d *Desk) Close() error {
	return d.store.Close()
}

// Reload replaces both collections with fresh copies read from the store.
// Any in-memory ordering from SortBookings is lost.
func (d *Desk) Reload(ctx context.Context) error {
	bookings, err := collection.LoadBookings(ctx, d.store)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	customers, err := collection.LoadCustomers(ctx, d.store)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	d.bookings = bookings
	d.customers = customers
	return nil
}

// Bookings returns the bookings in their current in-memory order.
func (d *Desk) Bookings() []model.Booking {
	return d.bookings.All()
}

// Customers returns the customers in insertion order.
func (d *Desk) Customers() []model.Customer {
	return d.customers.All()
}

// AddBooking records a new booking in memory and in the store.
// On a store failure nothing is recorded and a *store.WriteError is returned.
func (d *Desk) AddBooking(ctx context.Context, b model.Booking) error {
	b = b.Normalized()
	if err := d.bookings.Insert(ctx, b); err != nil {
		d.logger.Error("add booking failed", "name", b.GuestName, "room", b.Room, "error", err)
		return err
	}
	d.logger.Debug("booking added", "name", b.GuestName, "room", b.Room, "cost", b.BookingCost)
	return nil
}

// AddCustomer records a new customer in memory and in the store.
func (d *Desk) AddCustomer(ctx context.Context, c model.Customer) error {
	c = c.Normalized()
	if err := d.customers.Insert(ctx, c); err != nil {
		d.logger.Error("add customer failed", "name", c.Name, "customer_id", c.CustomerID, "error", err)
		return err
	}
	d.logger.Debug("customer added", "name", c.Name, "customer_id", c.CustomerID)
	return nil
}

// CountBookingsByName returns how many stored bookings DeleteBookingsByName
// would remove for name.
func (d *Desk) CountBookingsByName(ctx context.Context, name string) (int, error) {
	return d.store.CountBookingsByName(ctx, model.NormalizeText(name))
}

// DeleteBookingsByName removes every booking whose guest name equals name
// and returns how many were removed. Matching nothing is not an error.
func (d *Desk) DeleteBookingsByName(ctx context.Context, name string) (int, error) {
	name = model.NormalizeText(name)
	removed, err := d.bookings.DeleteByName(ctx, name)
	if err != nil {
		d.logger.Error("delete bookings failed", "name", name, "error", err)
		return 0, err
	}
	d.logger.Debug("bookings deleted", "name", name, "removed", removed)
	return removed, nil
}

// SortBookings reorders the in-memory bookings by key and returns them.
// The store is not touched.
func (d *Desk) SortBookings(key collection.SortKey) []model.Booking {
	d.bookings.SortBy(key)
	d.logger.Debug("bookings sorted", "key", key.String())
	return d.bookings.All()
}
