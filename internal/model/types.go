package model

// Booking is one hotel reservation.
// GuestName is a display field and is not unique across bookings.
// Check-in and check-out dates are free-form text.
type Booking struct {
	GuestName    string `json:"name" yaml:"name" db:"name"`
	Room         string `json:"room" yaml:"room" db:"room"`
	CheckInDate  string `json:"check_in_date" yaml:"check_in_date" db:"checkInDate"`
	CheckOutDate string `json:"check_out_date" yaml:"check_out_date" db:"checkOutDate"`
	Housekeeper  bool   `json:"housekeeper" yaml:"housekeeper" db:"housekeeper"`
	BookingCost  int64  `json:"booking_cost" yaml:"booking_cost" db:"bookingCost"`
}

// Customer is one billed customer.
// CustomerID is supplied by the operator and is not checked for uniqueness.
type Customer struct {
	Name       string `json:"name" yaml:"name" db:"uname"`
	CustomerID int64  `json:"customer_id" yaml:"customer_id" db:"uId"`
	Cost       int64  `json:"cost" yaml:"cost" db:"cost"`
}
