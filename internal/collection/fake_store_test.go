package collection

import (
	"context"
	"errors"

	"github.com/roach88/innkeep/internal/model"
)

var errFakeWrite = errors.New("fake write failure")

// fakeStore is an in-memory BookingStore and CustomerStore that records
// calls and can be told to fail writes.
type fakeStore struct {
	bookings  []model.Booking
	customers []model.Customer

	failInsert bool
	failDelete bool

	deleteCalls []string
}

func (f *fakeStore) LoadBookings(ctx context.Context) ([]model.Booking, error) {
	return append([]model.Booking{}, f.bookings...), nil
}

func (f *fakeStore) InsertBooking(ctx context.Context, b model.Booking) error {
	if f.failInsert {
		return errFakeWrite
	}
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeStore) DeleteBookingsByName(ctx context.Context, name string) (int64, error) {
	f.deleteCalls = append(f.deleteCalls, name)
	if f.failDelete {
		return 0, errFakeWrite
	}
	var kept []model.Booking
	var removed int64
	for _, b := range f.bookings {
		if b.GuestName == name {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	f.bookings = kept
	return removed, nil
}

func (f *fakeStore) LoadCustomers(ctx context.Context) ([]model.Customer, error) {
	return append([]model.Customer{}, f.customers...), nil
}

func (f *fakeStore) InsertCustomer(ctx context.Context, c model.Customer) error {
	if f.failInsert {
		return errFakeWrite
	}
	f.customers = append(f.customers, c)
	return nil
}

func booking(name, room string) model.Booking {
	return model.Booking{
		GuestName:    name,
		Room:         room,
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-02",
		BookingCost:  100,
	}
}

func names(bs []model.Booking) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.GuestName
	}
	return out
}

func rooms(bs []model.Booking) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Room
	}
	return out
}
