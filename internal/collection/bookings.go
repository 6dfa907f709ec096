package collection

import (
	"context"

	"github.com/roach88/innkeep/internal/model"
)

// BookingStore is the durable side of a Bookings collection.
// *store.Store implements it.
type BookingStore interface {
	LoadBookings(ctx context.Context) ([]model.Booking, error)
	InsertBooking(ctx context.Context, b model.Booking) error
	DeleteBookingsByName(ctx context.Context, name string) (int64, error)
}

// Bookings is the in-memory booking list.
type Bookings struct {
	*Collection[model.Booking]
	store BookingStore
}

// NewBookings creates an empty booking list backed by st.
func NewBookings(st BookingStore) *Bookings {
	return &Bookings{
		Collection: New[model.Booking](st.InsertBooking, nil),
		store:      st,
	}
}

// LoadBookings creates a booking list holding every stored booking in
// insertion order.
func LoadBookings(ctx context.Context, st BookingStore) (*Bookings, error) {
	rows, err := st.LoadBookings(ctx)
	if err != nil {
		return nil, err
	}
	return &Bookings{
		Collection: New[model.Booking](st.InsertBooking, rows),
		store:      st,
	}, nil
}

// DeleteByName removes every booking whose guest name equals name, in the
// store and in memory, and returns how many in-memory bookings were removed.
//
// The store is asked exactly once. If it fails, memory is left untouched.
// A name that matches nothing is not an error.
func (b *Bookings) DeleteByName(ctx context.Context, name string) (int, error) {
	if _, err := b.store.DeleteBookingsByName(ctx, name); err != nil {
		return 0, err
	}

	return b.removeFunc(func(bk model.Booking) bool {
		return bk.GuestName == name
	}), nil
}

// SortBy reorders bookings in place by ascending key. The sort is stable:
// bookings that compare equal keep their relative order.
func (b *Bookings) SortBy(key SortKey) {
	b.sortStableFunc(key.Compare)
}
