package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/innkeep/internal/model"
)

// createTestStore creates a new file-backed store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestBooking creates a booking with the given name and room and
// fixed values for the remaining fields.
func createTestBooking(name, room string) model.Booking {
	return model.Booking{
		GuestName:    name,
		Room:         room,
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		Housekeeper:  true,
		BookingCost:  300,
	}
}

// createTestCustomer creates the customer used across store tests.
func createTestCustomer() model.Customer {
	return model.Customer{Name: "J. Doe", CustomerID: 1001, Cost: 500}
}
