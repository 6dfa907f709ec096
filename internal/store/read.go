package store

import (
	"context"
	"fmt"

	"github.com/roach88/innkeep/internal/model"
)

// LoadBookings returns every booking in insertion order (surrogate id ascending).
//
// Returns an empty slice (not nil) if the table is empty.
func (s *Store) LoadBookings(ctx context.Context) ([]model.Booking, error) {
	bookings := []model.Booking{}
	err := s.db.SelectContext(ctx, &bookings, `
		SELECT name, room, checkInDate, checkOutDate, housekeeper, bookingCost
		FROM bookings
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	return bookings, nil
}

// LoadCustomers returns every customer in insertion order (surrogate id ascending).
//
// Returns an empty slice (not nil) if the table is empty.
func (s *Store) LoadCustomers(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := s.db.SelectContext(ctx, &customers, `
		SELECT uname, uId, cost
		FROM customers
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}

	return customers, nil
}

// CountBookingsByName returns how many stored bookings carry the given name.
func (s *Store) CountBookingsByName(ctx context.Context, name string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE name = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}
