package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/innkeep/internal/collection"
	"github.com/roach88/innkeep/internal/model"
)

// NewBookingCommand creates the booking command group.
func NewBookingCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Add, list and delete bookings",
	}

	cmd.AddCommand(newBookingAddCommand(rootOpts))
	cmd.AddCommand(newBookingListCommand(rootOpts))
	cmd.AddCommand(newBookingDeleteCommand(rootOpts))

	return cmd
}

// BookingAddOptions holds flags for the booking add command.
type BookingAddOptions struct {
	*RootOptions
	Input bookingInput
}

func newBookingAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BookingAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new booking",
		Long: `Record a new booking.

--name must not be blank. Other text fields are stored as given. --cost must
be an integer (negative values are allowed); anything else is rejected
before the database is touched.

Example:
  innkeep booking add --name "Mia Lake" --room 12 \
    --check-in 2024-05-01 --check-out 2024-05-03 --housekeeper --cost 240`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addBooking(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input.Name, "name", "", "guest name (required)")
	cmd.Flags().StringVar(&opts.Input.Room, "room", "", "room identifier")
	cmd.Flags().StringVar(&opts.Input.CheckIn, "check-in", "", "check-in date")
	cmd.Flags().StringVar(&opts.Input.CheckOut, "check-out", "", "check-out date")
	cmd.Flags().BoolVar(&opts.Input.Housekeeper, "housekeeper", false, "housekeeping requested")
	cmd.Flags().StringVar(&opts.Input.Cost, "cost", "", "booking cost (integer, required)")

	return cmd
}

func addBooking(opts *BookingAddOptions, cmd *cobra.Command) error {
	booking, err := parseBooking(opts.Input)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid booking", err)
	}

	d, err := opts.openDesk(cmd)
	if err != nil {
		return err
	}
	defer opts.closeDesk(d)

	if err := d.AddBooking(cmd.Context(), booking); err != nil {
		return WrapExitError(ExitFailure, "failed to add booking", err)
	}

	added := d.Bookings()
	return opts.formatter(cmd).Success(bookingAdded{Booking: added[len(added)-1]})
}

// BookingListOptions holds flags for the booking list command.
type BookingListOptions struct {
	*RootOptions
	Sort string
}

func newBookingListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BookingListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		Long: `List bookings in the order they were recorded, or sorted.

Sorting is stable: bookings with equal keys keep their recorded order.
Bookings carry no rating, so --sort rating leaves the order unchanged.

Example:
  innkeep booking list --sort room
  innkeep booking list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBookings(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sort, "sort", "", fmt.Sprintf("sort key %v", collection.SortKeys()))

	return cmd
}

func listBookings(opts *BookingListOptions, cmd *cobra.Command) error {
	var key collection.SortKey
	if opts.Sort != "" {
		k, err := collection.ParseSortKey(opts.Sort)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid sort key", err)
		}
		key = k
	}

	d, err := opts.openDesk(cmd)
	if err != nil {
		return err
	}
	defer opts.closeDesk(d)

	formatter := opts.formatter(cmd)
	result := bookingList{Bookings: d.Bookings()}
	if opts.Sort != "" {
		result.Sort = key.String()
		result.Bookings = d.SortBookings(key)
	}
	formatter.VerboseLog("%d booking(s) in %s", len(result.Bookings), opts.cfg.Database)
	return formatter.Success(result)
}

// BookingDeleteOptions holds flags for the booking delete command.
type BookingDeleteOptions struct {
	*RootOptions
	Yes bool
}

func newBookingDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BookingDeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <guest-name>",
		Short: "Delete every booking for a guest",
		Long: `Delete every booking whose guest name matches exactly.

All matching bookings are removed together. Unless --yes is given the
number of matches is shown and confirmation is read from stdin.

Example:
  innkeep booking delete "Mia Lake"
  innkeep booking delete "Mia Lake" --yes`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return deleteBookings(opts, name, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "delete without asking for confirmation")

	return cmd
}

func deleteBookings(opts *BookingDeleteOptions, name string, cmd *cobra.Command) error {
	if strings.TrimSpace(name) == "" {
		return WrapExitError(ExitCommandError, "nothing to delete", &NoSelectionError{})
	}

	d, err := opts.openDesk(cmd)
	if err != nil {
		return err
	}
	defer opts.closeDesk(d)

	ctx := cmd.Context()
	formatter := opts.formatter(cmd)

	matched, err := d.CountBookingsByName(ctx, name)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to count bookings", err)
	}
	result := bookingsDeleted{Name: name, Matched: matched}
	if matched == 0 {
		return formatter.Success(result)
	}

	if !opts.Yes {
		answer := opts.prompt(cmd, fmt.Sprintf("Delete %d booking(s) for %q? [y/N]: ", matched, name))
		if !confirmed(answer) {
			result.Cancelled = true
			opts.logger.Info("deletion cancelled", "name", name)
			return formatter.Success(result)
		}
	}

	removed, err := d.DeleteBookingsByName(ctx, name)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to delete bookings", err)
	}
	result.Removed = removed
	return formatter.Success(result)
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

type bookingAdded struct {
	Booking model.Booking `json:"booking"`
}

func (r bookingAdded) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Booking added for %s (room %s)\n", r.Booking.GuestName, r.Booking.Room)
	return err
}

type bookingList struct {
	Sort     string          `json:"sort,omitempty"`
	Bookings []model.Booking `json:"bookings"`
}

func (r bookingList) RenderText(w io.Writer) error {
	if len(r.Bookings) == 0 {
		_, err := fmt.Fprintln(w, "No bookings.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tROOM\tCHECK-IN\tCHECK-OUT\tHOUSEKEEPER\tCOST")
	for _, b := range r.Bookings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			b.GuestName, b.Room, b.CheckInDate, b.CheckOutDate, yesNo(b.Housekeeper), b.BookingCost)
	}
	return tw.Flush()
}

type bookingsDeleted struct {
	Name      string `json:"name"`
	Matched   int    `json:"matched"`
	Removed   int    `json:"removed"`
	Cancelled bool   `json:"cancelled,omitempty"`
}

func (r bookingsDeleted) RenderText(w io.Writer) error {
	var err error
	switch {
	case r.Matched == 0:
		_, err = fmt.Fprintf(w, "No bookings found for %s\n", r.Name)
	case r.Cancelled:
		_, err = fmt.Fprintln(w, "Deletion cancelled.")
	default:
		_, err = fmt.Fprintf(w, "Deleted %d booking(s) for %s\n", r.Removed, r.Name)
	}
	return err
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
