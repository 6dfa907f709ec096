package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/innkeep/internal/config"
	"github.com/roach88/innkeep/internal/model"
)

func TestParseBooking(t *testing.T) {
	got, err := parseBooking(bookingInput{
		Name:        "Mia Lake",
		Room:        "12",
		CheckIn:     "2024-05-01",
		CheckOut:    "2024-05-03",
		Housekeeper: true,
		Cost:        "240",
	})

	require.NoError(t, err)
	assert.Equal(t, model.Booking{
		GuestName:    "Mia Lake",
		Room:         "12",
		CheckInDate:  "2024-05-01",
		CheckOutDate: "2024-05-03",
		Housekeeper:  true,
		BookingCost:  240,
	}, got)
}

func TestParseBooking_EmptyTextAllowed(t *testing.T) {
	got, err := parseBooking(bookingInput{Name: "Mia", Cost: "0"})

	require.NoError(t, err)
	assert.Equal(t, model.Booking{GuestName: "Mia"}, got)
}

func TestParseBooking_LongTextAllowed(t *testing.T) {
	long := strings.Repeat("a", 500)

	got, err := parseBooking(bookingInput{Name: long, Room: long, CheckIn: long, CheckOut: long, Cost: "1"})

	require.NoError(t, err)
	assert.Equal(t, long, got.GuestName)
	assert.Equal(t, long, got.CheckOutDate)
}

func TestParseBooking_NameRequired(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := parseBooking(bookingInput{Name: name, Cost: "1"})

		var ie *InvalidInputError
		require.ErrorAs(t, err, &ie, "name %q", name)
		assert.Equal(t, "name", ie.Field)
		assert.Equal(t, "is required", ie.Msg)
	}
}

func TestParseBooking_SignedCost(t *testing.T) {
	tests := []struct {
		cost string
		want int64
	}{
		{"-5", -5},
		{"+7", 7},
		{"-9223372036854775808", -9223372036854775808},
	}

	for _, tt := range tests {
		t.Run(tt.cost, func(t *testing.T) {
			got, err := parseBooking(bookingInput{Name: "Mia", Cost: tt.cost})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.BookingCost)
		})
	}
}

func TestParseBooking_InvalidCost(t *testing.T) {
	tests := []struct {
		cost    string
		wantMsg string
	}{
		{"", "is required"},
		{"abc", "must be an integer"},
		{"1e3", "must be an integer"},
		{" 42", "must be an integer"},
		{"12.50", "must be an integer"},
		{"9223372036854775808", "out of range"},
		{"-9223372036854775809", "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.cost, func(t *testing.T) {
			_, err := parseBooking(bookingInput{Name: "Mia", Cost: tt.cost})

			require.Error(t, err)
			require.True(t, IsInvalidInput(err))
			var ie *InvalidInputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, "cost", ie.Field)
			assert.Equal(t, tt.cost, ie.Value)
			assert.Equal(t, tt.wantMsg, ie.Msg)
		})
	}
}

func TestParseCustomer(t *testing.T) {
	got, err := parseCustomer(customerInput{Name: "Ada", ID: "7", Cost: "450"})

	require.NoError(t, err)
	assert.Equal(t, model.Customer{Name: "Ada", CustomerID: 7, Cost: 450}, got)
}

func TestParseCustomer_InvalidID(t *testing.T) {
	_, err := parseCustomer(customerInput{Name: "Ada", ID: "x7", Cost: "450"})

	var ie *InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "id", ie.Field)
	assert.Equal(t, `invalid id "x7": must be an integer`, ie.Error())
}

func TestParseCustomer_NegativeID(t *testing.T) {
	got, err := parseCustomer(customerInput{Name: "Ada", ID: "-1", Cost: "-450"})

	require.NoError(t, err)
	assert.Equal(t, model.Customer{Name: "Ada", CustomerID: -1, Cost: -450}, got)
}

func TestParseCustomer_EmptyNameAllowed(t *testing.T) {
	got, err := parseCustomer(customerInput{ID: "7", Cost: "450"})

	require.NoError(t, err)
	assert.Equal(t, model.Customer{CustomerID: 7, Cost: 450}, got)
}

func TestCheckLogin(t *testing.T) {
	want := config.Credentials{User: "admin", Password: "password"}

	tests := []struct {
		name     string
		user     string
		password string
		wantErr  bool
	}{
		{"match", "admin", "password", false},
		{"wrong_password", "admin", "Password", true},
		{"wrong_user", "root", "password", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkLogin(want, tt.user, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, CodeInvalidInput, errorCode(WrapExitError(ExitCommandError, "x", &InvalidInputError{Field: "cost"})))
	assert.Equal(t, CodeNoSelection, errorCode(&NoSelectionError{}))
	assert.Equal(t, CodeAuth, errorCode(WrapExitError(ExitCommandError, "login failed", ErrInvalidCredentials)))
	assert.Equal(t, CodeCommand, errorCode(NewExitError(ExitCommandError, "bad")))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, exitCode(nil))
	assert.Equal(t, ExitFailure, exitCode(WrapExitError(ExitFailure, "write", ErrInvalidCredentials)))
	assert.Equal(t, ExitCommandError, exitCode(assert.AnError))
}
