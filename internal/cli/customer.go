package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/innkeep/internal/model"
)

// NewCustomerCommand creates the customer command group.
func NewCustomerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Add and list customers",
	}

	cmd.AddCommand(newCustomerAddCommand(rootOpts))
	cmd.AddCommand(newCustomerListCommand(rootOpts))

	return cmd
}

// CustomerAddOptions holds flags for the customer add command.
type CustomerAddOptions struct {
	*RootOptions
	Input customerInput
}

func newCustomerAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CustomerAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new customer",
		Long: `Record a new customer.

--id and --cost must be integers.

Example:
  innkeep customer add --name "Mia Lake" --id 7 --cost 240`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addCustomer(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&opts.Input.ID, "id", "", "customer id (integer, required)")
	cmd.Flags().StringVar(&opts.Input.Cost, "cost", "", "amount owed (integer, required)")

	return cmd
}

func addCustomer(opts *CustomerAddOptions, cmd *cobra.Command) error {
	customer, err := parseCustomer(opts.Input)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid customer", err)
	}

	d, err := opts.openDesk(cmd)
	if err != nil {
		return err
	}
	defer opts.closeDesk(d)

	if err := d.AddCustomer(cmd.Context(), customer); err != nil {
		return WrapExitError(ExitFailure, "failed to add customer", err)
	}

	added := d.Customers()
	return opts.formatter(cmd).Success(customerAdded{Customer: added[len(added)-1]})
}

func newCustomerListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List customers in the order they were recorded",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rootOpts.openDesk(cmd)
			if err != nil {
				return err
			}
			defer rootOpts.closeDesk(d)

			return rootOpts.formatter(cmd).Success(customerList{Customers: d.Customers()})
		},
	}
}

type customerAdded struct {
	Customer model.Customer `json:"customer"`
}

func (r customerAdded) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Customer added: %s (id %d)\n", r.Customer.Name, r.Customer.CustomerID)
	return err
}

type customerList struct {
	Customers []model.Customer `json:"customers"`
}

func (r customerList) RenderText(w io.Writer) error {
	if len(r.Customers) == 0 {
		_, err := fmt.Fprintln(w, "No customers.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tCOST")
	for _, c := range r.Customers {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", c.Name, c.CustomerID, c.Cost)
	}
	return tw.Flush()
}
