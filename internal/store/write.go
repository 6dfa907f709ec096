package store

import (
	"context"

	"github.com/roach88/innkeep/internal/model"
)

// InsertBooking appends one booking row.
// The housekeeper flag is stored as 0 or 1.
func (s *Store) InsertBooking(ctx context.Context, b model.Booking) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings
		(name, room, checkInDate, checkOutDate, housekeeper, bookingCost)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		b.GuestName,
		b.Room,
		b.CheckInDate,
		b.CheckOutDate,
		boolToInt(b.Housekeeper),
		b.BookingCost,
	)
	if err != nil {
		return &WriteError{Op: "insert booking", Err: err}
	}

	return nil
}

// InsertCustomer appends one customer row.
func (s *Store) InsertCustomer(ctx context.Context, c model.Customer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers
		(uname, uId, cost)
		VALUES (?, ?, ?)
	`,
		c.Name,
		c.CustomerID,
		c.Cost,
	)
	if err != nil {
		return &WriteError{Op: "insert customer", Err: err}
	}

	return nil
}

// DeleteBookingsByName removes every booking whose name equals name and
// returns how many rows were removed.
//
// Names are not unique: two bookings for "Lake Inn" are both removed.
// Matching nothing is not an error.
func (s *Store) DeleteBookingsByName(ctx context.Context, name string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE name = ?`, name)
	if err != nil {
		return 0, &WriteError{Op: "delete bookings", Err: err}
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, &WriteError{Op: "delete bookings: rows affected", Err: err}
	}

	return removed, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
