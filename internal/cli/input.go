package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/innkeep/internal/model"
)

// bookingInput is the raw text of a booking as typed on the command line.
type bookingInput struct {
	Name        string `flag:"name" validate:"notblank"`
	Room        string `flag:"room"`
	CheckIn     string `flag:"check-in"`
	CheckOut    string `flag:"check-out"`
	Housekeeper bool   `flag:"housekeeper"`
	Cost        string `flag:"cost" validate:"required"`
}

// customerInput is the raw text of a customer as typed on the command line.
type customerInput struct {
	Name string `flag:"name"`
	ID   string `flag:"id" validate:"required"`
	Cost string `flag:"cost" validate:"required"`
}

var validate = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New()
	// report fields by their flag names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("flag"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})
	// a booking must carry a name that delete can select
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// parseBooking validates raw booking input and converts it to a Booking.
// Any malformed field is reported as an *InvalidInputError.
func parseBooking(in bookingInput) (model.Booking, error) {
	if err := validateInput(in); err != nil {
		return model.Booking{}, err
	}

	cost, err := parseInt("cost", in.Cost)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		GuestName:    in.Name,
		Room:         in.Room,
		CheckInDate:  in.CheckIn,
		CheckOutDate: in.CheckOut,
		Housekeeper:  in.Housekeeper,
		BookingCost:  cost,
	}, nil
}

// parseCustomer validates raw customer input and converts it to a Customer.
func parseCustomer(in customerInput) (model.Customer, error) {
	if err := validateInput(in); err != nil {
		return model.Customer{}, err
	}

	id, err := parseInt("id", in.ID)
	if err != nil {
		return model.Customer{}, err
	}
	cost, err := parseInt("cost", in.Cost)
	if err != nil {
		return model.Customer{}, err
	}

	return model.Customer{
		Name:       in.Name,
		CustomerID: id,
		Cost:       cost,
	}, nil
}

// validateInput runs struct validation and returns the first failure as an
// *InvalidInputError.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := verrs[0]
	return &InvalidInputError{
		Field: fe.Field(),
		Value: fmt.Sprint(fe.Value()),
		Msg:   describeTag(fe),
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// parseInt converts a signed base-10 integer that must fit in int64.
func parseInt(field, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return n, nil
	}
	msg := "must be an integer"
	if errors.Is(err, strconv.ErrRange) {
		msg = "out of range"
	}
	return 0, &InvalidInputError{Field: field, Value: value, Msg: msg}
}
